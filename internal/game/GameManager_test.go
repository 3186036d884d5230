package game

import (
	"testing"
	"time"
)

// The high score service stays nil in tests so no sqlite file is touched.

func TestNewGameManagerWiresBothSides(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)

	wantShips := 0
	for _, count := range DefaultFleet {
		wantShips += count
	}

	if got := gm.PlayerBoard.ShipCount(); got != wantShips {
		t.Fatalf("player board has %d ships, expected %d", got, wantShips)
	}
	if got := gm.EnemyBoard.ShipCount(); got != wantShips {
		t.Fatalf("enemy board has %d ships, expected %d", got, wantShips)
	}
	if gm.PlayerTracker.AllSunk() {
		t.Fatal("fresh tracker must not report all sunk")
	}
}

func TestPlayerShotResolvesAndReports(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)

	if !gm.playerShot(Cell{X: 0, Y: 0}) {
		t.Fatal("first shot at (0, 0) must be accepted")
	}
	if gm.playerShots != 1 {
		t.Fatalf("expected 1 shot counted, got %d", gm.playerShots)
	}

	msg := <-gm.UpdateChannel
	resolved, ok := msg.(ShotResolvedMsg)
	if !ok {
		t.Fatalf("expected ShotResolvedMsg, got %T", msg)
	}
	if !resolved.ByPlayer || resolved.X != 0 || resolved.Y != 0 {
		t.Fatalf("unexpected message %+v", resolved)
	}
}

func TestPlayerShotDropsResolvedAndInvalidCells(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)

	gm.playerShot(Cell{X: 3, Y: 3})
	<-gm.UpdateChannel

	if gm.playerShot(Cell{X: 3, Y: 3}) {
		t.Fatal("shot at an already resolved cell must be dropped")
	}
	if gm.playerShot(Cell{X: -1, Y: 0}) {
		t.Fatal("out-of-bounds shot must be dropped")
	}
	if gm.playerShots != 1 {
		t.Fatalf("dropped shots must not count, got %d", gm.playerShots)
	}
}

func TestBotShotFeedsItsStrategy(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)

	gm.botShot()

	msg := <-gm.UpdateChannel
	resolved, ok := msg.(ShotResolvedMsg)
	if !ok {
		t.Fatalf("expected ShotResolvedMsg, got %T", msg)
	}
	if resolved.ByPlayer {
		t.Fatal("bot shot must not be flagged as the player's")
	}
	if !gm.PlayerBoard.IsShot(resolved.X, resolved.Y) {
		t.Fatal("bot shot was not resolved on the player board")
	}
}

func TestFinishGameStopsTheLoop(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)
	gm.IsRunning = true

	gm.finishGame(true)

	if gm.IsRunning {
		t.Fatal("finishGame must stop the loop")
	}

	msg := <-gm.UpdateChannel
	over, ok := msg.(GameOverMsg)
	if !ok {
		t.Fatalf("expected GameOverMsg, got %T", msg)
	}
	if !over.PlayerWon {
		t.Fatalf("unexpected message %+v", over)
	}
}

func TestHintConsultsThePlayerTracker(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)

	x, y := gm.Hint()
	if x != 0 || y != 0 {
		t.Fatalf("expected hunt-phase hint (0, 0), got (%d, %d)", x, y)
	}
}

func TestHintDoesNotConsumeFollowUps(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)
	gm.PlayerTracker.RegisterResult(2, 2, true, false)

	hintX, hintY := gm.Hint()
	if hintX != 2 || hintY != 1 {
		t.Fatalf("expected follow-up hint (2, 1), got (%d, %d)", hintX, hintY)
	}

	// The real shot must still get the same follow-up cell the hint showed.
	x, y := gm.PlayerTracker.NextAttack()
	if x != hintX || y != hintY {
		t.Fatalf("hint (%d, %d) diverged from next attack (%d, %d)", hintX, hintY, x, y)
	}
}

func TestRenderReadsAreSafeDuringShots(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)

	readsDone := make(chan struct{})
	go func() {
		defer close(readsDone)
		for i := 0; i < 500; i++ {
			gm.StateMutex.RLock()
			gm.PlayerTracker.BeliefGrid()
			gm.PlayerTracker.FleetRemaining()
			gm.PlayerBoard.IsShot(0, 0)
			gm.StateMutex.RUnlock()
		}
	}()

	for y := 0; y < BoardRowCount; y++ {
		for x := 0; x < BoardColCount; x++ {
			gm.playerShot(Cell{X: x, Y: y})
		}
	}

	<-readsDone
}

func TestStopEndsTheLoop(t *testing.T) {
	gm := NewGameManager("tester", "Admiral", nil)

	loopDone := make(chan struct{})
	go func() {
		gm.StartGameLoop()
		close(loopDone)
	}()

	gm.Stop()

	select {
	case <-loopDone:
	case <-time.After(time.Second):
		t.Fatal("loop must exit once the fire channel is closed")
	}
	if gm.IsRunning {
		t.Fatal("stopped manager must not report running")
	}

	// A second Stop after the loop already exited must be a no-op.
	gm.Stop()
}
