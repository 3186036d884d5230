package game

import (
	"math/rand"
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	fn()
}

func TestNextAttackStartsOnEvenParity(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{1: 1})

	x, y := tracker.NextAttack()
	if x != 0 || y != 0 {
		t.Fatalf("expected first hunt cell (0, 0), got (%d, %d)", x, y)
	}
}

func TestHuntScanPrefersEvenParity(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{1: 1})

	// Resolve the first few even cells, the scan must stay on the
	// checkerboard while any even cell is left.
	tracker.RegisterResult(0, 0, false, false)
	tracker.RegisterResult(2, 0, false, false)

	x, y := tracker.NextAttack()
	if x != 4 || y != 0 {
		t.Fatalf("expected (4, 0), got (%d, %d)", x, y)
	}
	if (x+y)%2 != 0 {
		t.Fatalf("hunt cell (%d, %d) is not parity-even", x, y)
	}
}

func TestHuntScanFallsBackToOddParity(t *testing.T) {
	tracker := NewTracker(1, 3, map[int]int{1: 1})

	tracker.RegisterResult(0, 0, false, false)
	tracker.RegisterResult(2, 0, false, false)

	x, y := tracker.NextAttack()
	if x != 1 || y != 0 {
		t.Fatalf("expected odd-parity fallback (1, 0), got (%d, %d)", x, y)
	}
}

func TestFollowUpStackOrderAfterHit(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{3: 1})

	tracker.RegisterResult(2, 2, true, false)

	// Push order right, down, left, up means pops come back reversed.
	expected := []Cell{{X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 2}}
	for _, want := range expected {
		x, y := tracker.NextAttack()
		if x != want.X || y != want.Y {
			t.Fatalf("expected follow-up (%d, %d), got (%d, %d)", want.X, want.Y, x, y)
		}
		tracker.RegisterResult(x, y, false, false)
	}
}

func TestFollowUpSkipsOutOfBoundsNeighbors(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{2: 1})

	tracker.RegisterResult(0, 0, true, false)

	// Only right (1, 0) and down (0, 1) fit on the board; up pops first
	// would have been (0, -1). Last valid push is down.
	x, y := tracker.NextAttack()
	if x != 0 || y != 1 {
		t.Fatalf("expected (0, 1), got (%d, %d)", x, y)
	}
	tracker.RegisterResult(x, y, false, false)

	x, y = tracker.NextAttack()
	if x != 1 || y != 0 {
		t.Fatalf("expected (1, 0), got (%d, %d)", x, y)
	}
}

func TestStaleFollowUpEntriesAreSkipped(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{3: 1})

	tracker.RegisterResult(2, 2, true, false)
	// (2, 1) sits on top of the stack; resolve it out-of-band so the entry
	// goes stale between push and pop.
	tracker.RegisterResult(2, 1, false, false)

	x, y := tracker.NextAttack()
	if x != 1 || y != 2 {
		t.Fatalf("expected stale entry skipped and (1, 2) returned, got (%d, %d)", x, y)
	}
}

func TestPeekNextAttackLeavesStackIntact(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{3: 1})

	tracker.RegisterResult(2, 2, true, false)

	peekX, peekY := tracker.PeekNextAttack()
	if peekX != 2 || peekY != 1 {
		t.Fatalf("expected peek (2, 1), got (%d, %d)", peekX, peekY)
	}

	// Peeking repeatedly consumes nothing; the real attack still gets the
	// same cell.
	if x, y := tracker.PeekNextAttack(); x != peekX || y != peekY {
		t.Fatalf("second peek moved to (%d, %d)", x, y)
	}
	if x, y := tracker.NextAttack(); x != peekX || y != peekY {
		t.Fatalf("attack after peek moved to (%d, %d)", x, y)
	}
}

func TestPeekNextAttackSkipsStaleEntriesWithoutRemoval(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{3: 1})

	tracker.RegisterResult(2, 2, true, false)
	tracker.RegisterResult(2, 1, false, false)

	if x, y := tracker.PeekNextAttack(); x != 1 || y != 2 {
		t.Fatalf("expected peek past stale entry to (1, 2), got (%d, %d)", x, y)
	}
	if x, y := tracker.NextAttack(); x != 1 || y != 2 {
		t.Fatalf("expected attack at (1, 2) after peek, got (%d, %d)", x, y)
	}
}

func TestPeekNextAttackFallsBackToHuntScan(t *testing.T) {
	tracker := NewTracker(3, 3, map[int]int{1: 1})

	if x, y := tracker.PeekNextAttack(); x != 0 || y != 0 {
		t.Fatalf("expected hunt-phase peek (0, 0), got (%d, %d)", x, y)
	}
	if x, y := tracker.NextAttack(); x != 0 || y != 0 {
		t.Fatalf("expected hunt-phase attack (0, 0), got (%d, %d)", x, y)
	}
}

func TestMissOnlyMarksCell(t *testing.T) {
	tracker := NewTracker(3, 3, map[int]int{1: 1})

	tracker.RegisterResult(1, 1, false, false)

	if got := tracker.StateAt(1, 1); got != CellMiss {
		t.Fatalf("expected CellMiss, got %v", got)
	}
	if x, y := tracker.NextAttack(); x != 0 || y != 0 {
		t.Fatalf("miss must not queue follow-ups, got (%d, %d)", x, y)
	}
}

func TestSinkDecrementsLowestIdentifier(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{2: 1, 3: 2})

	tracker.RegisterResult(0, 0, true, true)
	remaining := tracker.FleetRemaining()
	if remaining[2] != 0 || remaining[3] != 2 {
		t.Fatalf("expected {2:0, 3:2}, got %v", remaining)
	}

	tracker.RegisterResult(2, 2, true, true)
	tracker.RegisterResult(4, 4, true, true)
	remaining = tracker.FleetRemaining()
	if remaining[2] != 0 || remaining[3] != 0 {
		t.Fatalf("expected exhausted fleet, got %v", remaining)
	}
	if !tracker.AllSunk() {
		t.Fatal("expected AllSunk after every unit was consumed")
	}
}

func TestSingleCellShipScenario(t *testing.T) {
	tracker := NewTracker(3, 3, map[int]int{1: 1})

	x, y := tracker.NextAttack()
	if x != 0 || y != 0 {
		t.Fatalf("expected (0, 0) first, got (%d, %d)", x, y)
	}

	tracker.RegisterResult(0, 0, true, true)

	if !tracker.AllSunk() {
		t.Fatal("expected AllSunk immediately after the only ship sank")
	}
	if remaining := tracker.FleetRemaining(); remaining[1] != 0 {
		t.Fatalf("expected {1:0}, got %v", remaining)
	}
	if got := tracker.StateAt(0, 0); got != CellSunk {
		t.Fatalf("expected CellSunk at (0, 0), got %v", got)
	}
	if got := tracker.StateAt(1, 0); got != CellEliminated {
		t.Fatalf("expected CellEliminated at (1, 0), got %v", got)
	}
	if got := tracker.StateAt(0, 1); got != CellEliminated {
		t.Fatalf("expected CellEliminated at (0, 1), got %v", got)
	}
}

func TestFloodFillCollectsWholeShip(t *testing.T) {
	tracker := NewTracker(5, 5, map[int]int{3: 1})

	// Vertical three-cell ship in column 2, rows 1..3. The first two shots
	// only hit, the last one sinks.
	tracker.RegisterResult(2, 1, true, false)
	tracker.RegisterResult(2, 2, true, false)
	tracker.RegisterResult(2, 3, true, true)

	for _, tile := range []Cell{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}} {
		if got := tracker.StateAt(tile.X, tile.Y); got != CellSunk {
			t.Errorf("ship tile (%d, %d): expected CellSunk, got %v", tile.X, tile.Y, got)
		}
	}

	perimeter := []Cell{
		{X: 2, Y: 0}, {X: 2, Y: 4},
		{X: 1, Y: 1}, {X: 3, Y: 1},
		{X: 1, Y: 2}, {X: 3, Y: 2},
		{X: 1, Y: 3}, {X: 3, Y: 3},
	}
	for _, cell := range perimeter {
		if got := tracker.StateAt(cell.X, cell.Y); got != CellEliminated {
			t.Errorf("perimeter cell (%d, %d): expected CellEliminated, got %v", cell.X, cell.Y, got)
		}
	}

	// Single step outward only: two cells away stays open.
	for _, cell := range []Cell{{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 4, Y: 3}} {
		if got := tracker.StateAt(cell.X, cell.Y); got != CellUnknown {
			t.Errorf("distant cell (%d, %d): expected CellUnknown, got %v", cell.X, cell.Y, got)
		}
	}
}

func TestEliminatedCellsAreNeverTargeted(t *testing.T) {
	tracker := NewTracker(2, 2, map[int]int{1: 2})

	tracker.RegisterResult(0, 0, true, true)

	x, y := tracker.NextAttack()
	if x != 1 || y != 1 {
		t.Fatalf("expected (1, 1), the only non-eliminated cell, got (%d, %d)", x, y)
	}
}

func TestDeterministicReplay(t *testing.T) {
	board := NewBoard(BoardRowCount, BoardColCount)
	if err := PlaceFleet(board, DefaultFleet, rand.New(rand.NewSource(7))); err != nil {
		t.Fatalf("placement failed: %v", err)
	}

	type shot struct {
		cell Cell
		hit  bool
		sunk bool
	}

	tracker := NewTracker(BoardRowCount, BoardColCount, DefaultFleet)
	var history []shot
	for !board.AllShipsSunk() {
		x, y := tracker.NextAttack()
		hit, sunk := board.ResolveShot(x, y)
		tracker.RegisterResult(x, y, hit, sunk)
		history = append(history, shot{cell: Cell{X: x, Y: y}, hit: hit, sunk: sunk})
	}

	replay := NewTracker(BoardRowCount, BoardColCount, DefaultFleet)
	for i, s := range history {
		x, y := replay.NextAttack()
		if x != s.cell.X || y != s.cell.Y {
			t.Fatalf("shot %d: replay diverged, expected (%d, %d), got (%d, %d)", i, s.cell.X, s.cell.Y, x, y)
		}
		replay.RegisterResult(x, y, s.hit, s.sunk)
	}
}

func TestFullGameInvariants(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		board := NewBoard(BoardRowCount, BoardColCount)
		if err := PlaceFleet(board, DefaultFleet, rand.New(rand.NewSource(seed))); err != nil {
			t.Fatalf("seed %d: placement failed: %v", seed, err)
		}

		tracker := NewTracker(BoardRowCount, BoardColCount, DefaultFleet)
		fleetTotal := 0
		for _, count := range tracker.FleetRemaining() {
			fleetTotal += count
		}

		shots := 0
		for !board.AllShipsSunk() {
			x, y := tracker.NextAttack()
			if tracker.StateAt(x, y) != CellUnknown {
				t.Fatalf("seed %d: tracker re-targeted resolved cell (%d, %d)", seed, x, y)
			}

			hit, sunk := board.ResolveShot(x, y)
			tracker.RegisterResult(x, y, hit, sunk)

			total := 0
			for _, count := range tracker.FleetRemaining() {
				total += count
			}
			if sunk {
				fleetTotal--
			}
			if total != fleetTotal {
				t.Fatalf("seed %d: fleet total %d, expected %d", seed, total, fleetTotal)
			}

			shots++
			if shots > BoardRowCount*BoardColCount {
				t.Fatalf("seed %d: more shots than cells", seed)
			}
		}

		if !tracker.AllSunk() {
			t.Fatalf("seed %d: board cleared but tracker still expects ships", seed)
		}
	}
}

func TestBeliefGridReturnsCopy(t *testing.T) {
	tracker := NewTracker(3, 3, map[int]int{1: 1})

	grid := tracker.BeliefGrid()
	grid[0][0] = CellMiss

	if tracker.StateAt(0, 0) != CellUnknown {
		t.Fatal("mutating the returned grid leaked into the tracker")
	}

	remaining := tracker.FleetRemaining()
	remaining[1] = 0
	if tracker.AllSunk() {
		t.Fatal("mutating the returned fleet map leaked into the tracker")
	}
}

func TestTrackerPanicsOnPreconditionViolations(t *testing.T) {
	mustPanic(t, "zero rows", func() { NewTracker(0, 3, map[int]int{1: 1}) })
	mustPanic(t, "zero cols", func() { NewTracker(3, 0, map[int]int{1: 1}) })
	mustPanic(t, "non-positive count", func() { NewTracker(3, 3, map[int]int{1: 0}) })

	tracker := NewTracker(3, 3, map[int]int{1: 1})
	mustPanic(t, "out-of-bounds result", func() { tracker.RegisterResult(3, 0, false, false) })
	mustPanic(t, "sunk without hit", func() { tracker.RegisterResult(0, 0, false, true) })

	tracker.RegisterResult(0, 0, false, false)
	mustPanic(t, "already resolved", func() { tracker.RegisterResult(0, 0, true, false) })

	tracker.RegisterResult(1, 0, true, true)
	mustPanic(t, "exhausted fleet", func() { tracker.RegisterResult(2, 2, true, true) })
}
