package game

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type HighScoreService struct {
	db *sql.DB
}

const dbPath = "battlescores.db"
const tableName = "battle_scores"

type BattleScore struct {
	ID         int
	PlayerName string
	Won        bool
	ShotsFired int
	Hits       int
	CreatedAt  time.Time
}

// Accuracy is the hit ratio of the recorded match, 0 when nothing was fired.
func (s BattleScore) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.ShotsFired)
}

func NewHighScoreService() *HighScoreService {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		log.Fatalf("Error creating battle scores table: %v", err)
	}

	return service
}

// createTable creates the battle_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		won INTEGER NOT NULL,
		shots_fired INTEGER NOT NULL,
		hits INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Println("Battle scores table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SaveBattleScore(playerName string, won bool, shotsFired int, hits int) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, won, shots_fired, hits)
	VALUES (?, ?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL, playerName, won, shotsFired, hits)
	if err != nil {
		return fmt.Errorf("failed to insert battle score for %s: %w", playerName, err)
	}

	return nil
}

// GetBattleScores retrieves a paginated list of scores: wins first, fewest
// shots among them, best accuracy as the tiebreaker.
func (serviceImpl *HighScoreService) GetBattleScores(limit, offset int) ([]BattleScore, error) {
	const selectSQL = `
	SELECT id, player_name, won, shots_fired, hits, created_at
	FROM ` + tableName + `
	ORDER BY won DESC, shots_fired ASC, hits DESC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query battle scores: %w", err)
	}
	defer rows.Close()

	var scores []BattleScore

	for rows.Next() {
		var score BattleScore
		var createdAt string
		err := rows.Scan(&score.ID, &score.PlayerName, &score.Won, &score.ShotsFired, &score.Hits, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		dateTimeCreatedAt, err := time.Parse(time.RFC3339, createdAt)
		if err == nil {
			score.CreatedAt = dateTimeCreatedAt
		} else {
			log.Printf("Time parsing error for score (ID %d, Name %s): %v, raw string: %s", score.ID, score.PlayerName, err, createdAt)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}
