package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal states for BattleModel ---

type BattleState int

const (
	StatePlaying BattleState = iota
	StateGameOver
	StateLeaderboard
)

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	unknownStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	missStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	hitStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	sunkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	eliminatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	shipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	cursorStyle     = lipgloss.NewStyle().Background(lipgloss.Color("226")).Foreground(lipgloss.Color("0")).Bold(true)

	logLineStyle = lipgloss.NewStyle().Faint(true)
)

var beliefRunes = map[game.CellState]string{
	game.CellUnknown:    "·",
	game.CellMiss:       "○",
	game.CellHit:        "✕",
	game.CellSunk:       "█",
	game.CellEliminated: "▫",
}

var beliefStyles = map[game.CellState]lipgloss.Style{
	game.CellUnknown:    unknownStyle,
	game.CellMiss:       missStyle,
	game.CellHit:        hitStyle,
	game.CellSunk:       sunkStyle,
	game.CellEliminated: eliminatedStyle,
}

const maxBattleLogLines = 6

// BattleModel renders one running match: the enemy belief grid on the left,
// the player's own fleet on the right, plus a status panel. It doubles as
// the leaderboard view when gameManager is nil.
type BattleModel struct {
	tea.Model
	gameManager *game.GameManager
	highScores  *game.HighScoreService

	cursor      game.Cell
	battleLog   []string
	playerShots int
	playerHits  int

	ScreenWidth  int
	ScreenHeight int

	state         BattleState
	gameOverState GameOverState
}

func NewBattleModel(gm *game.GameManager, highScores *game.HighScoreService, screenWidth int, screenHeight int) BattleModel {
	return BattleModel{
		gameManager:  gm,
		highScores:   highScores,
		cursor:       game.Cell{X: 0, Y: 0},
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		state:        StatePlaying,
		gameOverState: GameOverState{
			HighScores:     highScores,
			ScreenWidth:    screenWidth,
			ScreenHeight:   screenHeight,
			SelectedButton: 0,
		},
	}
}

func (m BattleModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m BattleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowLeaderboardMsg:
		m.state = StateLeaderboard
		return m, nil

	case tea.KeyMsg:
		if m.state == StateGameOver || m.state == StateLeaderboard {
			return m.updateEndScreens(msg)
		}
		return m.updatePlaying(msg)

	case game.GameTickMsg:
		return m, m.listenForGameUpdates()

	case game.ShotResolvedMsg:
		m.recordShot(msg)
		return m, m.listenForGameUpdates()

	case game.GameOverMsg:
		log.Info("Match decided, showing Game Over screen.", "playerWon", msg.PlayerWon, "shots", msg.ShotsFired)
		m.state = StateGameOver
		m.gameOverState.PlayerWon = msg.PlayerWon
		m.gameOverState.ShotsFired = msg.ShotsFired
		m.gameOverState.Hits = msg.Hits
		m.gameOverState.SelectedButton = 0
		return m, nil
	}

	return m, nil
}

func (m *BattleModel) recordShot(msg game.ShotResolvedMsg) {
	who := "Enemy"
	if msg.ByPlayer {
		who = "You"
		m.playerShots++
		if msg.Hit {
			m.playerHits++
		}
	}

	outcome := "miss"
	if msg.Sunk {
		outcome = "HIT - ship destroyed!"
	} else if msg.Hit {
		outcome = "hit"
	}

	m.battleLog = append(m.battleLog, fmt.Sprintf("%s → (%d, %d): %s", who, msg.X, msg.Y, outcome))
	if len(m.battleLog) > maxBattleLogLines {
		m.battleLog = m.battleLog[len(m.battleLog)-maxBattleLogLines:]
	}
}

func (m BattleModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.gameManager == nil {
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.gameManager.Stop()
		return m, tea.Quit
	case "w", "up":
		m.cursor.Y = max(0, m.cursor.Y-1)
	case "s", "down":
		m.cursor.Y = min(game.BoardRowCount-1, m.cursor.Y+1)
	case "a", "left":
		m.cursor.X = max(0, m.cursor.X-1)
	case "d", "right":
		m.cursor.X = min(game.BoardColCount-1, m.cursor.X+1)
	case "t":
		// Ask the player's own tracker where it would shoot.
		x, y := m.gameManager.Hint()
		m.cursor = game.Cell{X: x, Y: y}
	case "f", " ", "enter":
		select {
		case m.gameManager.FireChannel <- m.cursor:
		default:
			// Loop busy, drop the input rather than block the UI.
		}
	}

	return m, nil
}

func (m BattleModel) updateEndScreens(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.state == StateLeaderboard {
			if m.gameManager != nil {
				m.state = StateGameOver
				return m, nil
			}
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	case "left", "h":
		if m.state == StateGameOver {
			m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
		}
	case "right", "l":
		if m.state == StateGameOver {
			m.gameOverState.SelectedButton = min(1, m.gameOverState.SelectedButton+1)
		}
	case "enter":
		switch m.state {
		case StateGameOver:
			// 0: Exit, 1: Leaderboard
			if m.gameOverState.SelectedButton == 0 {
				if m.gameManager != nil {
					m.gameManager.Stop()
				}
				return m, tea.Quit
			}
			m.state = StateLeaderboard
		case StateLeaderboard:
			if m.gameManager != nil {
				m.state = StateGameOver
				return m, nil
			}
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	}
	return m, nil
}

func (m BattleModel) View() string {
	if m.state == StateGameOver {
		return m.gameOverState.RenderGameOverScreen()
	}

	if m.state == StateLeaderboard {
		return m.gameOverState.RenderLeaderboardScreen()
	}

	if m.gameManager == nil {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game manager...")
	}

	// The match loop mutates boards and tracker concurrently; render from a
	// consistent snapshot.
	m.gameManager.StateMutex.RLock()
	enemyGrid := m.renderEnemyBoard()
	ownGrid := m.renderOwnBoard()
	statusPanel := m.renderStatusPanel()
	m.gameManager.StateMutex.RUnlock()

	enemyBoard := lipgloss.JoinVertical(lipgloss.Center,
		boardTitleStyle.Render("ENEMY WATERS"),
		boardStyle.Render(enemyGrid),
	)
	ownBoard := lipgloss.JoinVertical(lipgloss.Center,
		boardTitleStyle.Render("YOUR FLEET"),
		boardStyle.Render(ownGrid),
	)

	boards := lipgloss.JoinHorizontal(lipgloss.Top, enemyBoard, "  ", ownBoard)
	status := statusPanelStyle.Render(statusPanel)

	content := lipgloss.JoinHorizontal(lipgloss.Top, boards, " ", status)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

// renderEnemyBoard draws the belief grid of the player's tracker. The player
// never sees the enemy's ground truth, only what their shots revealed.
func (m BattleModel) renderEnemyBoard() string {
	var sb strings.Builder

	grid := m.gameManager.PlayerTracker.BeliefGrid()
	for y := range grid {
		for x := range grid[y] {
			state := grid[y][x]
			if m.cursor.X == x && m.cursor.Y == y {
				sb.WriteString(cursorStyle.Render(beliefRunes[state]))
			} else {
				sb.WriteString(beliefStyles[state].Render(beliefRunes[state]))
			}
			if x < len(grid[y])-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m BattleModel) renderOwnBoard() string {
	var sb strings.Builder

	board := m.gameManager.PlayerBoard
	for y := 0; y < board.Rows; y++ {
		for x := 0; x < board.Cols; x++ {
			var cell string
			switch {
			case board.HasShipAt(x, y) && board.IsShot(x, y):
				cell = hitStyle.Render("✕")
			case board.HasShipAt(x, y):
				cell = shipStyle.Render("█")
			case board.IsShot(x, y):
				cell = missStyle.Render("○")
			default:
				cell = unknownStyle.Render("·")
			}
			sb.WriteString(cell)
			if x < board.Cols-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// renderStatusPanel draws match stats, the remaining enemy fleet as the
// tracker believes it, and the controls.
func (m BattleModel) renderStatusPanel() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Battle Stats ---") + "\n")
	sb.WriteString(fmt.Sprintf("Captain: %s\n", m.gameManager.PlayerName))
	sb.WriteString(fmt.Sprintf("Enemy admiral: %s\n", m.gameManager.Difficulty))
	sb.WriteString(fmt.Sprintf("Shots fired: %d\n", m.playerShots))
	sb.WriteString(fmt.Sprintf("Hits: %d\n", m.playerHits))

	sb.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Enemy Fleet Afloat ---") + "\n")
	remaining := m.gameManager.PlayerTracker.FleetRemaining()
	ids := make([]int, 0, len(remaining))
	for id := range remaining {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		sb.WriteString(fmt.Sprintf("%s x%d\n", strings.Repeat("▣", id), remaining[id]))
	}

	sb.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Battle Log ---") + "\n")
	for _, line := range m.battleLog {
		sb.WriteString(logLineStyle.Render(line) + "\n")
	}

	sb.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	sb.WriteString("WASD / Arrows: Aim\n")
	sb.WriteString("F / Space / Enter: Fire\n")
	sb.WriteString("T: Targeting hint\n")
	sb.WriteString("Q / Ctrl+C: Abandon ship\n")

	return sb.String()
}

func (m BattleModel) listenForGameUpdates() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		if m.gameManager == nil {
			return game.GameTickMsg{}
		}

		select {
		case msg := <-m.gameManager.UpdateChannel:
			return msg
		default:
			return game.GameTickMsg{}
		}
	})
}
