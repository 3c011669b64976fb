package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	"github.com/andina-labs/asistencia-backend-go/internal/domain/history"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const historySchema = `
	CREATE TABLE IF NOT EXISTS history_records (
		id          UUID PRIMARY KEY,
		description TEXT NOT NULL,
		files       JSONB NOT NULL DEFAULT '[]',
		filters     JSONB NOT NULL DEFAULT '{}',
		dataset     JSONB NOT NULL DEFAULT '[]',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_history_records_created_at
		ON history_records (created_at DESC);
`

type historyRepository struct {
	db *database.DB
}

// NewHistoryRepository creates the history repository and ensures its table
// exists.
func NewHistoryRepository(db *database.DB) (history.Repository, error) {
	if _, err := db.Exec(context.Background(), historySchema); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &historyRepository{db: db}, nil
}

// Save implements history.Repository.
func (r *historyRepository) Save(ctx context.Context, record *history.Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	filesJSON, err := json.Marshal(record.Files)
	if err != nil {
		return fmt.Errorf("failed to marshal history files: %w", err)
	}
	filtersJSON, err := json.Marshal(record.Snapshot.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal history filters: %w", err)
	}
	datasetJSON, err := json.Marshal(record.Snapshot.Records)
	if err != nil {
		return fmt.Errorf("failed to marshal history dataset: %w", err)
	}

	query := `
		INSERT INTO history_records (id, description, files, filters, dataset, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Exec(ctx, query,
		record.ID,
		record.Description,
		filesJSON,
		filtersJSON,
		datasetJSON,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	return nil
}

// List implements history.Repository.
func (r *historyRepository) List(ctx context.Context, limit int) ([]history.Summary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, description, files, filters, created_at
		FROM history_records
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}
	defer rows.Close()

	var summaries []history.Summary
	for rows.Next() {
		var (
			s           history.Summary
			filesJSON   []byte
			filtersJSON []byte
		)
		if err := rows.Scan(&s.ID, &s.Description, &filesJSON, &filtersJSON, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		if err := json.Unmarshal(filesJSON, &s.Files); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history files: %w", err)
		}
		if err := json.Unmarshal(filtersJSON, &s.Filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history filters: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Get implements history.Repository.
func (r *historyRepository) Get(ctx context.Context, id string) (history.Record, error) {
	query := `
		SELECT id, description, files, filters, dataset, created_at
		FROM history_records
		WHERE id = $1
	`

	var (
		record      history.Record
		filesJSON   []byte
		filtersJSON []byte
		datasetJSON []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Description,
		&filesJSON,
		&filtersJSON,
		&datasetJSON,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return history.Record{}, history.ErrRecordNotFound
		}
		return history.Record{}, fmt.Errorf("failed to get history record: %w", err)
	}

	if err := json.Unmarshal(filesJSON, &record.Files); err != nil {
		return history.Record{}, fmt.Errorf("failed to unmarshal history files: %w", err)
	}
	if err := json.Unmarshal(filtersJSON, &record.Snapshot.Filters); err != nil {
		return history.Record{}, fmt.Errorf("failed to unmarshal history filters: %w", err)
	}
	var records []attendance.TaggedRecord
	if err := json.Unmarshal(datasetJSON, &records); err != nil {
		return history.Record{}, fmt.Errorf("failed to unmarshal history dataset: %w", err)
	}
	record.Snapshot.Records = records

	return record, nil
}
