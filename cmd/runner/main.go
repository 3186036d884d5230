package main

import (
	"fmt"
	"os"

	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/game"
	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

func main() {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 120, 40
	}

	highScoreService := game.NewHighScoreService()
	p := tea.NewProgram(ui.NewControllerModel(highScoreService, width, height), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
