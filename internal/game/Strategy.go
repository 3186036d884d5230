package game

// Strategy is anything that can pick the next shot and absorb its outcome.
// *Tracker is the canonical implementation.
type Strategy interface {
	NextAttack() (int, int)
	RegisterResult(col int, row int, isHit bool, isSunk bool)
}
