package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/port"
)

const schema = `
CREATE TABLE IF NOT EXISTS recovered_pairs (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    hash VARCHAR(1024) NOT NULL,
    plaintext TEXT NOT NULL,
    algorithm_id VARCHAR(32) NOT NULL,
    recovered_at DATETIME NOT NULL,
    INDEX idx_pairs_algorithm (algorithm_id, recovered_at)
);
CREATE TABLE IF NOT EXISTS run_summaries (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    algorithm_id VARCHAR(32) NOT NULL,
    attack_mode INT NOT NULL,
    avg_hashrate DOUBLE NOT NULL,
    INDEX idx_summaries_algorithm (algorithm_id)
);
CREATE TABLE IF NOT EXISTS analysis_snapshots (
    id CHAR(36) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    created_at DATETIME NOT NULL,
    result JSON NOT NULL
);`

type mysqlRepository struct {
	db *sql.DB
}

func NewMySQLRepository(dsn string, maxOpen, maxIdle int, maxLifetime time.Duration) (port.Repository, *sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	return NewRepositoryFromDB(db), db, nil
}

// NewRepositoryFromDB wraps an already opened handle.
func NewRepositoryFromDB(db *sql.DB) port.Repository {
	return &mysqlRepository{db: db}
}

// Migrate creates the tables used by the repository when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range splitStatements(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

func (r *mysqlRepository) ListPairs(ctx context.Context, filter domain.CorpusFilter) ([]domain.RecoveredPair, error) {
	query := `
        SELECT hash, plaintext, algorithm_id, recovered_at
        FROM recovered_pairs
        WHERE 1=1
    `
	args := []interface{}{}

	if filter.AlgorithmID != "" {
		query += " AND algorithm_id = ?"
		args = append(args, filter.AlgorithmID)
	}

	if !filter.Since.IsZero() {
		query += " AND recovered_at >= ?"
		args = append(args, filter.Since)
	}

	if !filter.Until.IsZero() {
		query += " AND recovered_at <= ?"
		args = append(args, filter.Until)
	}

	query += " ORDER BY id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pairs: %w", err)
	}
	defer rows.Close()

	pairs := []domain.RecoveredPair{}
	for rows.Next() {
		var pair domain.RecoveredPair
		if err := rows.Scan(&pair.Hash, &pair.PlaintextRaw, &pair.AlgorithmID, &pair.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	return pairs, rows.Err()
}

func (r *mysqlRepository) ListRunSummaries(ctx context.Context, algorithmID string) ([]domain.HistoricalRunSummary, error) {
	query := `SELECT algorithm_id, attack_mode, avg_hashrate FROM run_summaries`
	args := []interface{}{}
	if algorithmID != "" {
		query += " WHERE algorithm_id = ?"
		args = append(args, algorithmID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing run summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.HistoricalRunSummary
	for rows.Next() {
		var s domain.HistoricalRunSummary
		if err := rows.Scan(&s.AlgorithmID, &s.AttackMode, &s.AvgHashrate); err != nil {
			return nil, fmt.Errorf("scanning run summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *mysqlRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	query := `
        INSERT INTO analysis_snapshots (id, name, created_at, result)
        VALUES (?, ?, ?, ?)
    `

	result, err := json.Marshal(snapshot.Result)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.Name,
		snapshot.CreatedAt,
		result,
	)
	return err
}

func (r *mysqlRepository) GetSnapshot(ctx context.Context, snapshotID string) (*domain.Snapshot, error) {
	query := `
        SELECT id, name, created_at, result
        FROM analysis_snapshots
        WHERE id = ?
    `

	snapshot := &domain.Snapshot{}
	var resultJSON []byte
	err := r.db.QueryRowContext(ctx, query, snapshotID).Scan(
		&snapshot.ID,
		&snapshot.Name,
		&snapshot.CreatedAt,
		&resultJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resultJSON, &snapshot.Result); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return snapshot, nil
}

func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
