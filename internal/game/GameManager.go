package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// GameTickMsg is the no-op heartbeat the UI falls back to while nothing has
// happened on the update channel.
type GameTickMsg struct{}

// ShotResolvedMsg tells the UI the outcome of one shot by either side.
type ShotResolvedMsg struct {
	ByPlayer bool
	X        int
	Y        int
	Hit      bool
	Sunk     bool
}

// GameOverMsg tells the UI the match is decided.
type GameOverMsg struct {
	PlayerWon  bool
	ShotsFired int
	Hits       int
}

// GameManager runs one match between the human player and the bot. It owns
// both ground-truth boards, the player's tracker (their belief of the enemy
// board, rendered by the UI and consulted for hints) and the bot's strategy.
// The UI talks to it only through FireChannel and UpdateChannel.
type GameManager struct {
	PlayerBoard *Board
	EnemyBoard  *Board

	PlayerTracker *Tracker
	BotStrategy   Strategy

	// StateMutex guards both boards and both trackers. The match loop holds
	// the write side across each shot; the renderer and the hint path take
	// the read side.
	StateMutex sync.RWMutex

	FireChannel   chan Cell
	UpdateChannel chan tea.Msg

	PlayerName       string
	Difficulty       string
	IsRunning        bool
	HighScoreService *HighScoreService

	playerShots int
	playerHits  int
	stopOnce    sync.Once
}

func NewGameManager(playerName string, difficulty string, highScores *HighScoreService) *GameManager {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	playerBoard := NewBoard(BoardRowCount, BoardColCount)
	enemyBoard := NewBoard(BoardRowCount, BoardColCount)
	if err := PlaceFleet(playerBoard, DefaultFleet, rng); err != nil {
		log.Fatalf("Could not place player fleet: %v", err)
	}
	if err := PlaceFleet(enemyBoard, DefaultFleet, rng); err != nil {
		log.Fatalf("Could not place enemy fleet: %v", err)
	}

	return &GameManager{
		PlayerBoard:      playerBoard,
		EnemyBoard:       enemyBoard,
		PlayerTracker:    NewTracker(BoardRowCount, BoardColCount, DefaultFleet),
		BotStrategy:      NewStrategyForDifficulty(difficulty, NewTracker(BoardRowCount, BoardColCount, DefaultFleet)),
		FireChannel:      make(chan Cell, 10),
		UpdateChannel:    make(chan tea.Msg, 256),
		PlayerName:       playerName,
		Difficulty:       difficulty,
		HighScoreService: highScores,
	}
}

// StartGameLoop consumes player shots until one side's fleet is gone. The
// bot answers every valid player shot after a short delay.
func (gm *GameManager) StartGameLoop() {
	if gm.IsRunning {
		return
	}
	gm.IsRunning = true
	log.Println("Battle loop started.")

	for gm.IsRunning {
		cell, ok := <-gm.FireChannel
		if !ok {
			gm.IsRunning = false
			log.Println("Battle abandoned, loop stopped.")
			return
		}

		if !gm.playerShot(cell) {
			continue
		}

		if gm.EnemyBoard.AllShipsSunk() {
			gm.finishGame(true)
			return
		}

		time.Sleep(BotTurnDelay)
		gm.botShot()

		if gm.PlayerBoard.AllShipsSunk() {
			gm.finishGame(false)
			return
		}
	}
}

// Stop ends the match loop by closing the fire channel. Safe to call more
// than once and after the loop already finished on its own.
func (gm *GameManager) Stop() {
	gm.stopOnce.Do(func() { close(gm.FireChannel) })
}

// playerShot resolves one player shot. Shots at already resolved cells are
// dropped here so the tracker's preconditions hold no matter what the UI
// sends.
func (gm *GameManager) playerShot(cell Cell) bool {
	if cell.X < 0 || cell.X >= BoardColCount || cell.Y < 0 || cell.Y >= BoardRowCount {
		return false
	}

	gm.StateMutex.Lock()
	if gm.PlayerTracker.StateAt(cell.X, cell.Y) != CellUnknown {
		gm.StateMutex.Unlock()
		return false
	}

	hit, sunk := gm.EnemyBoard.ResolveShot(cell.X, cell.Y)
	gm.PlayerTracker.RegisterResult(cell.X, cell.Y, hit, sunk)

	gm.playerShots++
	if hit {
		gm.playerHits++
	}
	gm.StateMutex.Unlock()

	gm.UpdateChannel <- ShotResolvedMsg{ByPlayer: true, X: cell.X, Y: cell.Y, Hit: hit, Sunk: sunk}
	return true
}

func (gm *GameManager) botShot() {
	gm.StateMutex.Lock()
	x, y := gm.BotStrategy.NextAttack()
	hit, sunk := gm.PlayerBoard.ResolveShot(x, y)
	gm.BotStrategy.RegisterResult(x, y, hit, sunk)
	gm.StateMutex.Unlock()

	gm.UpdateChannel <- ShotResolvedMsg{ByPlayer: false, X: x, Y: y, Hit: hit, Sunk: sunk}
}

func (gm *GameManager) finishGame(playerWon bool) {
	gm.IsRunning = false

	if gm.HighScoreService != nil {
		highScoreError := gm.HighScoreService.SaveBattleScore(gm.PlayerName, playerWon, gm.playerShots, gm.playerHits)
		if highScoreError != nil {
			log.Printf("High score persist err: %v", highScoreError)
		}
	}

	gm.UpdateChannel <- GameOverMsg{PlayerWon: playerWon, ShotsFired: gm.playerShots, Hits: gm.playerHits}
}

// Hint proposes the cell the player's own tracker would fire at next. It
// only peeks, so ignoring the hint does not burn the follow-up lead.
func (gm *GameManager) Hint() (int, int) {
	gm.StateMutex.RLock()
	defer gm.StateMutex.RUnlock()
	return gm.PlayerTracker.PeekNextAttack()
}
