package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/game"
	"github.com/charmbracelet/lipgloss"
)

// GameOverState holds the data and local state for rendering the game over
// and leaderboard screens.
type GameOverState struct {
	HighScores     *game.HighScoreService
	PlayerWon      bool
	ShotsFired     int
	Hits           int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

// Styles for Game Over/Leaderboard
var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true).
				Border(lipgloss.RoundedBorder())

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the match result and buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	title := "⚓ V I C T O R Y ⚓"
	titleColor := "10"
	if !g.PlayerWon {
		title = "💀 FLEET LOST 💀"
		titleColor = "9"
	}

	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(titleColor)).
		Padding(2, 5).
		Align(lipgloss.Center).
		Width(g.ScreenWidth - 4)

	accuracy := 0.0
	if g.ShotsFired > 0 {
		accuracy = float64(g.Hits) * 100 / float64(g.ShotsFired)
	}
	stats := fmt.Sprintf("\nFinal Stats:\nShots Fired: %d\nHits: %d\nAccuracy: %.1f %%\n\n", g.ShotsFired, g.Hits, accuracy)

	exitButton := gameOverButtonStyle.Render("EXIT (Enter)")
	leaderboardButton := gameOverButtonStyle.Render("LEADERBOARD")

	if g.SelectedButton == 0 {
		exitButton = selectedButtonStyle.Render("EXIT (Enter)")
	} else {
		leaderboardButton = selectedButtonStyle.Render("LEADERBOARD")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, exitButton, leaderboardButton)

	content := lipgloss.JoinVertical(lipgloss.Center, messageStyle.Render(title), stats, buttons)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderLeaderboardScreen draws the persisted battle scores table.
func (g *GameOverState) RenderLeaderboardScreen() string {
	var tableContent strings.Builder

	var scores []game.BattleScore
	if g.HighScores != nil {
		var err error
		scores, err = g.HighScores.GetBattleScores(game.HighScorePageSize, 0)
		if err != nil {
			scores = nil
		}
	}

	nameWidth := 18
	resultWidth := 8
	shotsWidth := 7
	accuracyWidth := 10

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(3).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Captain"),
		leaderboardHeaderStyle.Width(resultWidth).Render("Result"),
		leaderboardHeaderStyle.Width(shotsWidth).Render("Shots"),
		leaderboardHeaderStyle.Width(accuracyWidth).Render("Accuracy"),
	)
	tableContent.WriteString(header + "\n")

	for i, score := range scores {
		result := "lost"
		if score.Won {
			result = "won"
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(3).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(resultWidth).Render(result),
			leaderboardRowStyle.Width(shotsWidth).Render(strconv.Itoa(score.ShotsFired)),
			leaderboardRowStyle.Width(accuracyWidth).Render(fmt.Sprintf("%.1f %%", score.Accuracy()*100)),
		)

		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	if len(scores) == 0 {
		tableContent.WriteString(leaderboardRowStyle.Render("No battles fought yet.") + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("👑 HALL OF ADMIRALS 👑")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to go back.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
