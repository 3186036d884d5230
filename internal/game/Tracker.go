package game

import (
	"fmt"
	"sort"
)

// CellState is what the tracker believes about a single enemy cell.
type CellState int

const (
	CellUnknown CellState = iota
	CellMiss
	CellHit
	CellSunk
	// CellEliminated marks a cell that cannot hold a ship because it borders
	// an already sunk one. Ships never touch in this ruleset.
	CellEliminated
)

// Tracker owns everything one side knows about the enemy board: a belief
// grid of cell states, a LIFO stack of follow-up targets around open hits,
// and the count of un-sunk ships per identifier. It decides where to shoot
// next and absorbs the outcome of every shot through RegisterResult.
//
// Callers drive it strictly in turns: NextAttack, fire, RegisterResult,
// repeat. Precondition violations (out-of-bounds results, re-reporting a
// resolved cell, a sink with nothing left afloat) panic instead of silently
// corrupting the belief grid later decisions depend on.
type Tracker struct {
	Rows int
	Cols int

	board    [][]CellState
	hitStack []Cell
	fleet    map[int]int
}

func NewTracker(rows int, cols int, fleet map[int]int) *Tracker {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("tracker: invalid board dimensions %dx%d", rows, cols))
	}

	fleetCopy := make(map[int]int, len(fleet))
	for id, count := range fleet {
		if count < 1 {
			panic(fmt.Sprintf("tracker: ship %d has non-positive count %d", id, count))
		}
		fleetCopy[id] = count
	}

	board := make([][]CellState, rows)
	for y := range board {
		board[y] = make([]CellState, cols)
	}

	return &Tracker{
		Rows:  rows,
		Cols:  cols,
		board: board,
		fleet: fleetCopy,
	}
}

// NextAttack returns the column and row of the next cell to fire at.
// Follow-up targets queued around open hits win over the hunt scan. Stale
// stack entries are discarded on pop, not on push, because a cell's state
// can change between the two.
//
// The hunt scan walks row-major over the checkerboard first: every ship of
// length >= 2 covers at least one parity-even cell, so the odd half of the
// board only needs visiting once the even half is exhausted.
func (t *Tracker) NextAttack() (int, int) {
	for len(t.hitStack) > 0 {
		cell := t.hitStack[len(t.hitStack)-1]
		t.hitStack = t.hitStack[:len(t.hitStack)-1]
		if t.board[cell.Y][cell.X] == CellUnknown {
			return cell.X, cell.Y
		}
	}

	return t.huntScan()
}

// PeekNextAttack reports the cell NextAttack would pick without consuming
// any follow-up stack entry, so the pick can be surfaced as a suggestion
// while target mode stays intact for the real shot.
func (t *Tracker) PeekNextAttack() (int, int) {
	for i := len(t.hitStack) - 1; i >= 0; i-- {
		cell := t.hitStack[i]
		if t.board[cell.Y][cell.X] == CellUnknown {
			return cell.X, cell.Y
		}
	}

	return t.huntScan()
}

func (t *Tracker) huntScan() (int, int) {
	for y := 0; y < t.Rows; y++ {
		for x := 0; x < t.Cols; x++ {
			if t.board[y][x] == CellUnknown && (x+y)%2 == 0 {
				return x, y
			}
		}
	}

	for y := 0; y < t.Rows; y++ {
		for x := 0; x < t.Cols; x++ {
			if t.board[y][x] == CellUnknown {
				return x, y
			}
		}
	}

	panic("tracker: no unknown cells left to target")
}

// RegisterResult records the outcome of a shot at the given cell. A plain
// hit queues the four orthogonal neighbors as follow-up targets. A sinking
// hit additionally consumes one fleet unit, discovers the full tile set of
// the destroyed ship and eliminates its perimeter.
func (t *Tracker) RegisterResult(col int, row int, isHit bool, isSunk bool) {
	if col < 0 || col >= t.Cols || row < 0 || row >= t.Rows {
		panic(fmt.Sprintf("tracker: result for out-of-bounds cell (%d, %d)", col, row))
	}
	if isSunk && !isHit {
		panic(fmt.Sprintf("tracker: cell (%d, %d) reported sunk without hit", col, row))
	}
	if t.board[row][col] != CellUnknown {
		panic(fmt.Sprintf("tracker: cell (%d, %d) already resolved", col, row))
	}

	if !isHit {
		t.board[row][col] = CellMiss
		return
	}

	if !isSunk {
		t.board[row][col] = CellHit
		t.pushAdjacentTargets(col, row)
		return
	}

	t.board[row][col] = CellSunk
	t.consumeFleetUnit()

	shipTiles := t.collectShipTiles(col, row)
	for tile := range shipTiles {
		t.board[tile.Y][tile.X] = CellSunk
	}
	t.eliminatePerimeter(shipTiles)
}

func (t *Tracker) pushAdjacentTargets(col int, row int) {
	for _, dir := range Directions {
		nx, ny := col+dir[0], row+dir[1]
		if nx >= 0 && nx < t.Cols && ny >= 0 && ny < t.Rows && t.board[ny][nx] == CellUnknown {
			t.hitStack = append(t.hitStack, Cell{X: nx, Y: ny})
		}
	}
}

// consumeFleetUnit decrements the lowest identifier that still has ships
// afloat. A sink event does not tell us which class went down, so the fleet
// map is plain bookkeeping here, not correlated with the sunk ship's size.
func (t *Tracker) consumeFleetUnit() {
	ids := make([]int, 0, len(t.fleet))
	for id := range t.fleet {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if t.fleet[id] > 0 {
			t.fleet[id]--
			return
		}
	}

	panic("tracker: sink reported with no ships left afloat")
}

// collectShipTiles flood-fills from the sinking shot across orthogonally
// connected Hit and Sunk cells and returns the destroyed ship's full tile
// set. Earlier hits on the same ship were left as Hit until now, so a
// multi-cell ship comes back as one connected set.
func (t *Tracker) collectShipTiles(col int, row int) map[Cell]bool {
	tiles := make(map[Cell]bool)
	queue := []Cell{{X: col, Y: row}}

	for len(queue) > 0 {
		cell := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if tiles[cell] {
			continue
		}

		state := t.board[cell.Y][cell.X]
		if state != CellHit && state != CellSunk {
			continue
		}
		tiles[cell] = true

		for _, dir := range Directions {
			next := Cell{X: cell.X + dir[0], Y: cell.Y + dir[1]}
			if next.X >= 0 && next.X < t.Cols && next.Y >= 0 && next.Y < t.Rows && !tiles[next] {
				queue = append(queue, next)
			}
		}
	}

	return tiles
}

// eliminatePerimeter marks the immediate orthogonal border of a sunk ship as
// impossible. One step only: ships never touch, so anything past the direct
// border can still hold a different ship.
func (t *Tracker) eliminatePerimeter(shipTiles map[Cell]bool) {
	for tile := range shipTiles {
		for _, dir := range Directions {
			nx, ny := tile.X+dir[0], tile.Y+dir[1]
			if nx < 0 || nx >= t.Cols || ny < 0 || ny >= t.Rows {
				continue
			}
			if shipTiles[Cell{X: nx, Y: ny}] {
				continue
			}
			if t.board[ny][nx] == CellUnknown {
				t.board[ny][nx] = CellEliminated
			}
		}
	}
}

// StateAt reports the believed state of a single cell.
func (t *Tracker) StateAt(col int, row int) CellState {
	if col < 0 || col >= t.Cols || row < 0 || row >= t.Rows {
		panic(fmt.Sprintf("tracker: StateAt out-of-bounds cell (%d, %d)", col, row))
	}
	return t.board[row][col]
}

// BeliefGrid returns a copy of the belief grid for rendering.
func (t *Tracker) BeliefGrid() [][]CellState {
	grid := make([][]CellState, t.Rows)
	for y := range grid {
		grid[y] = make([]CellState, t.Cols)
		copy(grid[y], t.board[y])
	}
	return grid
}

// FleetRemaining returns a copy of the un-sunk ship counts by identifier.
func (t *Tracker) FleetRemaining() map[int]int {
	remaining := make(map[int]int, len(t.fleet))
	for id, count := range t.fleet {
		remaining[id] = count
	}
	return remaining
}

// AllSunk reports whether every fleet entry has been consumed.
func (t *Tracker) AllSunk() bool {
	for _, count := range t.fleet {
		if count > 0 {
			return false
		}
	}
	return true
}
