package game

import "time"

const (
	BoardRowCount = 10
	BoardColCount = 10

	// BotTurnDelay paces the bot's answer so the exchange reads as turns.
	BotTurnDelay = 600 * time.Millisecond

	maxPlacementAttempts = 10000

	HighScorePageSize = 10
)

// DefaultFleet maps a ship identifier (its length in cells) to how many
// ships of that class each side starts with.
var DefaultFleet = map[int]int{
	2: 1,
	3: 2,
	4: 1,
	5: 1,
}
