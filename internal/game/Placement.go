package game

import (
	"fmt"
	"math/rand"
	"sort"
)

// PlaceFleet scatters every ship of the fleet onto the board at random,
// never letting two ships touch, diagonals included. That clearance rule is
// what makes eliminating only the immediate perimeter of a sunk ship sound
// on the tracker side.
//
// Longest ships go first so they still find room on a crowded board. The rng
// is injected so tests can seed it.
func PlaceFleet(b *Board, fleet map[int]int, rng *rand.Rand) error {
	lengths := make([]int, 0, len(fleet))
	for length := range fleet {
		lengths = append(lengths, length)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))

	for _, length := range lengths {
		for i := 0; i < fleet[length]; i++ {
			if err := placeSingleShip(b, length, rng); err != nil {
				return err
			}
		}
	}

	return nil
}

func placeSingleShip(b *Board, length int, rng *rand.Rand) error {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		horizontal := rng.Intn(2) == 0

		maxX, maxY := b.Cols-1, b.Rows-1
		if horizontal {
			maxX = b.Cols - length
		} else {
			maxY = b.Rows - length
		}
		if maxX < 0 || maxY < 0 {
			break
		}

		start := Cell{X: rng.Intn(maxX + 1), Y: rng.Intn(maxY + 1)}

		cells := make([]Cell, length)
		for j := range cells {
			if horizontal {
				cells[j] = Cell{X: start.X + j, Y: start.Y}
			} else {
				cells[j] = Cell{X: start.X, Y: start.Y + j}
			}
		}

		if fleetFits(b, cells) {
			b.placeShip(cells)
			return nil
		}
	}

	return fmt.Errorf("placement: no room for a ship of length %d on a %dx%d board", length, b.Rows, b.Cols)
}

// fleetFits checks that every candidate cell and its full 8-neighborhood is
// free of already placed ships.
func fleetFits(b *Board, cells []Cell) bool {
	for _, cell := range cells {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := cell.X+dx, cell.Y+dy
				if nx < 0 || nx >= b.Cols || ny < 0 || ny >= b.Rows {
					continue
				}
				if b.cells[ny][nx] != 0 {
					return false
				}
			}
		}
	}
	return true
}
