package ui

import (
	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	BattleScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Start Battle, 1 for Leaderboard
type SetupSubmitMsg struct {
	Name       string
	Difficulty string
}

type ShowLeaderboardMsg struct{}

// QuitGameMsg is sent by the battle model to return to the intro screen.
type QuitGameMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	HighScores    *game.HighScoreService

	IntroModel  tea.Model
	SetupModel  tea.Model
	BattleModel tea.Model

	// gameManager is the match currently owned by this session, nil when no
	// battle is running. Kept here so every exit path can stop its loop.
	gameManager *game.GameManager

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(highScores *game.HighScoreService, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		HighScores:    highScores,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case BattleScreen:
		if m.BattleModel != nil {
			return m.BattleModel.View()
		}
		return "Battle Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	// --- 1. Global Key Check (Check before the main switch) ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			if m.gameManager != nil {
				m.gameManager.Stop()
			}
			return m, tea.Quit
		}
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case IntroSubmitMsg:
		if msg == 0 {
			// Start Registration
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		} else if msg == 1 {
			// View Leaderboard without a running match
			m.CurrentScreen = BattleScreen
			m.BattleModel = NewBattleModel(nil, m.HighScores, m.ScreenWidth, m.ScreenHeight)

			// Init the model, then immediately send the ShowLeaderboardMsg
			return m, tea.Sequence(m.BattleModel.Init(), func() tea.Msg { return ShowLeaderboardMsg{} })
		}

	case SetupSubmitMsg:
		m.CurrentScreen = BattleScreen

		m.gameManager = game.NewGameManager(msg.Name, msg.Difficulty, m.HighScores)
		go m.gameManager.StartGameLoop()

		m.BattleModel = NewBattleModel(m.gameManager, m.HighScores, m.ScreenWidth, m.ScreenHeight)
		return m, m.BattleModel.Init()

	case QuitGameMsg:
		// Transition from Leaderboard back to IntroScreen
		if m.gameManager != nil {
			m.gameManager.Stop()
			m.gameManager = nil
		}
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	default:
		// --- 3. Message Delegation (Pass to the active model for all other messages) ---
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case BattleScreen:
			if m.BattleModel != nil {
				m.BattleModel, cmd = m.BattleModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
