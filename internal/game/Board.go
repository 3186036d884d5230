package game

import "fmt"

// Board is the ground-truth side of a match: where one player's ships really
// are and which cells have been shot. Trackers never see it, they only get
// told hit/miss/sunk per shot through ResolveShot's answers.
type Board struct {
	Rows int
	Cols int

	// cells holds a 1-based ship index per cell, 0 for water.
	cells [][]int
	shot  [][]bool

	shipLengths   []int
	shipCellsLeft []int
}

func NewBoard(rows int, cols int) *Board {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("board: invalid dimensions %dx%d", rows, cols))
	}

	cells := make([][]int, rows)
	shot := make([][]bool, rows)
	for y := range cells {
		cells[y] = make([]int, cols)
		shot[y] = make([]bool, cols)
	}

	return &Board{
		Rows:  rows,
		Cols:  cols,
		cells: cells,
		shot:  shot,
	}
}

// placeShip registers one ship occupying the given cells. Placement rules
// (bounds, straight line, clearance) are the caller's job, see Placement.go.
func (b *Board) placeShip(cells []Cell) {
	b.shipLengths = append(b.shipLengths, len(cells))
	b.shipCellsLeft = append(b.shipCellsLeft, len(cells))

	shipIndex := len(b.shipLengths)
	for _, cell := range cells {
		b.cells[cell.Y][cell.X] = shipIndex
	}
}

// ResolveShot marks the cell as shot and answers whether it hit a ship and
// whether that ship is now fully destroyed. Shooting the same cell twice is
// a programmer error upstream, so it panics.
func (b *Board) ResolveShot(col int, row int) (isHit bool, isSunk bool) {
	if col < 0 || col >= b.Cols || row < 0 || row >= b.Rows {
		panic(fmt.Sprintf("board: shot at out-of-bounds cell (%d, %d)", col, row))
	}
	if b.shot[row][col] {
		panic(fmt.Sprintf("board: cell (%d, %d) shot twice", col, row))
	}
	b.shot[row][col] = true

	shipIndex := b.cells[row][col]
	if shipIndex == 0 {
		return false, false
	}

	b.shipCellsLeft[shipIndex-1]--
	return true, b.shipCellsLeft[shipIndex-1] == 0
}

// HasShipAt reports whether a ship occupies the cell. Used by the renderer
// for the player's own board, never for the enemy one.
func (b *Board) HasShipAt(col int, row int) bool {
	return b.cells[row][col] != 0
}

// IsShot reports whether the cell has already been fired at.
func (b *Board) IsShot(col int, row int) bool {
	return b.shot[row][col]
}

// ShipCount returns the number of ships placed on the board.
func (b *Board) ShipCount() int {
	return len(b.shipLengths)
}

// AllShipsSunk reports whether every placed ship has been fully destroyed.
func (b *Board) AllShipsSunk() bool {
	for _, left := range b.shipCellsLeft {
		if left > 0 {
			return false
		}
	}
	return len(b.shipLengths) > 0
}
