package ui

import (
	"strings"

	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// SetupModel collects the captain's name and the bot difficulty before a
// match starts.
type SetupModel struct {
	nameInput       textinput.Model
	difficultyIndex int
	focusIndex      int // 0: Name, 1: Difficulty, 2: Submit
	width           int
	height          int
	tea.Model
}

func NewInitialSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your Captain Name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput:       ti,
		difficultyIndex: 0,
		focusIndex:      0,
		width:           w,
		height:          h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resizes, etc.)
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "ctrl+c" {
			return m, tea.Quit
		}

		// Focus Navigation (Tab/Shift+Tab/Enter)
		if s == "enter" || s == "tab" || s == "shift+tab" {
			switch m.focusIndex {
			case 0: // Name Input
				switch s {
				case "enter", "tab":
					m.focusIndex = 1
					m.nameInput.Blur()
				case "shift+tab":
					m.focusIndex = 2
					m.nameInput.Blur()
				}

			case 1: // Difficulty Select
				switch s {
				case "enter", "tab":
					m.focusIndex = 2
				case "shift+tab":
					m.focusIndex = 0
					m.nameInput.Focus()
				}

			case 2: // Submit Button
				switch s {
				case "enter":
					name := m.nameInput.Value()
					if name == "" {
						name = "Anonymous Captain"
					}
					difficulty := game.Difficulties[m.difficultyIndex]
					return m, func() tea.Msg {
						return SetupSubmitMsg{Name: name, Difficulty: difficulty}
					}
				case "tab":
					m.focusIndex = 0
					m.nameInput.Focus()
				case "shift+tab":
					m.focusIndex = 1
				}
			}
			return m, nil
		}

		// Difficulty selection (arrows, only when focused on it)
		if m.focusIndex == 1 {
			switch s {
			case "left", "up":
				m.difficultyIndex = (m.difficultyIndex - 1 + len(game.Difficulties)) % len(game.Difficulties)
				return m, nil
			case "right", "down":
				m.difficultyIndex = (m.difficultyIndex + 1) % len(game.Difficulties)
				return m, nil
			}
		}

		// Remaining keys go to the focused text input.
		if m.focusIndex == 0 {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	// Helper to center content within the terminal width
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	// Name Input
	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	// Difficulty Prompt
	difficultyPrompt := "Select enemy admiral difficulty (use arrows)"
	if m.focusIndex == 1 {
		b.WriteString(center(focusedStyle.Render(difficultyPrompt)))
	} else {
		b.WriteString(center(blurredStyle.Render(difficultyPrompt)))
	}
	b.WriteString("\n")

	var options []string
	for i, difficulty := range game.Difficulties {
		if i == m.difficultyIndex {
			options = append(options, focusedStyle.Bold(true).Render("[ "+difficulty+" ]"))
		} else {
			options = append(options, blurredStyle.Render("  "+difficulty+"  "))
		}
	}
	b.WriteString(center(strings.Join(options, "  ")))
	b.WriteString("\n\n")

	// Submit Button
	submitText := "To Battle!"
	if m.focusIndex == 2 {
		b.WriteString(center(submitButtonStyle.Render(submitText)))
	} else {
		b.WriteString(center(blurredButtonStyle.Render(submitText)))
	}
	b.WriteString("\n\n")

	// Help Text
	b.WriteString(center(helpStyle.Render("(arrows to pick difficulty, tab/shift+tab to navigate, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
