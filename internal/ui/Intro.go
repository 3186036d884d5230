package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int // 0: Start Battle, 1: View Leaderboard
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			// Two buttons, any direction toggles
			if m.selected == 0 {
				m.selected = 1
			} else {
				m.selected = 0
			}
		case "enter":
			// Submit the selected option
			return m, func() tea.Msg { return IntroSubmitMsg(m.selected) }
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

var battleshipAscii = `
                                     |__
                                     |\/
                                     ---
                                     / | [
                              !      | |||
                            _/|     _/|-++
                        +  +--|    |--|--|_ |-
                     { /|__|  |/\__|  |--- |||__/
                    +---------------___[}-_===_._____
                ____/-'  ".___.--==/___]_---_.______}'.-------------_[_/__\
 __..._____--==/___]_|__|_____________________________[___\==--___,-------.7
|                                                                   SPS-61/
 \_______________________________________________________________________|
        B A T T L E S H I P S  --  sink the fleet before yours goes down
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("39")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(battleshipAscii))
	sb.WriteString("\n")

	start := introButtonStyle.Render("Start Battle")
	leaderboard := introButtonStyle.Render("View Leaderboard")

	// Apply selected style based on m.selected
	if m.selected == 0 {
		start = introSelectedButtonStyle.Render("Start Battle")
	} else {
		leaderboard = introSelectedButtonStyle.Render("View Leaderboard")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, start, leaderboard)

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	// Center the entire view within the terminal
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
