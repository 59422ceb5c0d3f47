package game

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const tableName = "episode_results"

// HighScoreService keeps finished episodes in sqlite.
type HighScoreService struct {
	db *sql.DB
}

type Score struct {
	ID        int
	Agent     string
	Layout    string
	Seed      uint64
	Score     int
	Outcome   string
	Ticks     int
	CreatedAt time.Time
}

// AgentSummary aggregates every stored episode of one agent.
type AgentSummary struct {
	Agent        string
	Episodes     int
	Wins         int
	AverageScore float64
	BestScore    int
}

func (s AgentSummary) WinRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Episodes)
}

func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// one connection so ":memory:" databases are shared by every query
	db.SetMaxOpenConns(1)

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating %s table: %w", tableName, err)
	}
	return service, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}

func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		agent TEXT NOT NULL,
		layout TEXT NOT NULL,
		seed INTEGER NOT NULL,
		score INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		won INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);`

	if _, err := serviceImpl.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	return nil
}

func (serviceImpl *HighScoreService) SaveResult(ctx context.Context, result Result) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (agent, layout, seed, score, outcome, won, ticks, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	won := 0
	if result.Won() {
		won = 1
	}
	_, err := serviceImpl.db.ExecContext(ctx, insertSQL,
		result.Agent, result.Layout, int64(result.Seed), result.Score,
		result.Outcome.String(), won, result.Ticks, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert result for %s: %w", result.Agent, err)
	}
	return nil
}

// GetHighScores retrieves a page of results, best score first.
func (serviceImpl *HighScoreService) GetHighScores(ctx context.Context, limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, agent, layout, seed, score, outcome, ticks, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, ticks ASC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.QueryContext(ctx, selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var score Score
		var seed int64
		err := rows.Scan(&score.ID, &score.Agent, &score.Layout, &seed, &score.Score,
			&score.Outcome, &score.Ticks, &score.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		score.Seed = uint64(seed)
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount(ctx context.Context) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := serviceImpl.db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

// GetAgentSummaries aggregates results per agent, best average first.
func (serviceImpl *HighScoreService) GetAgentSummaries(ctx context.Context) ([]AgentSummary, error) {
	const summarySQL = `
	SELECT agent, COUNT(*), SUM(won), AVG(score), MAX(score)
	FROM ` + tableName + `
	GROUP BY agent
	ORDER BY AVG(score) DESC, agent ASC;`

	rows, err := serviceImpl.db.QueryContext(ctx, summarySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent summaries: %w", err)
	}
	defer rows.Close()

	var summaries []AgentSummary
	for rows.Next() {
		var summary AgentSummary
		if err := rows.Scan(&summary.Agent, &summary.Episodes, &summary.Wins, &summary.AverageScore, &summary.BestScore); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return summaries, nil
}
