package game

// Cell is a single board coordinate. X is the column, Y is the row.
type Cell struct {
	X int
	Y int
}

// Directions is the fixed probe order used whenever the neighbors of a cell
// are walked: right, down, left, up, as (dx, dy). The tracker's follow-up
// stack depends on this exact order, so it must not be reordered.
var Directions = [4][2]int{
	{1, 0},
	{0, 1},
	{-1, 0},
	{0, -1},
}
