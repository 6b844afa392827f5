package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_history_store.go -package=mocks symptom-checker/internal/storage HistoryStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// MaxHistoryLimit caps how many records a single listing may return.
const MaxHistoryLimit = 50

// HistoryStore defines the interface for query-history operations.
type HistoryStore interface {
	// Save stores one exchange and returns the new record ID.
	Save(ctx context.Context, symptoms, response, sessionID string) (int64, error)
	// ListRecent returns up to limit records, most recent first.
	ListRecent(ctx context.Context, limit int) ([]QueryRecord, error)
	// GetByID returns one record, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*QueryRecord, error)
	// DeleteOlderThan removes records older than the given number of days
	// and returns how many were deleted.
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

// QueryRepo provides methods for query-history operations.
// It implements the HistoryStore interface.
type QueryRepo struct {
	db *sql.DB
}

// NewQueryRepo creates a new QueryRepo.
func NewQueryRepo(db *sql.DB) *QueryRepo {
	return &QueryRepo{db: db}
}

// Save stores one exchange and returns the new record ID.
func (r *QueryRepo) Save(ctx context.Context, symptoms, response, sessionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO queries (session_id, symptoms, response) VALUES (?, ?, ?)",
		sessionID, symptoms, response,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert query: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit records, most recent first. A limit of zero
// or less falls back to 10; anything above MaxHistoryLimit is capped.
func (r *QueryRepo) ListRecent(ctx context.Context, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, session_id, symptoms, response, created_at FROM queries ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []QueryRecord
	for rows.Next() {
		record, err := scanQuery(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return records, nil
}

// GetByID returns one record, or ErrNotFound.
func (r *QueryRepo) GetByID(ctx context.Context, id int64) (*QueryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, session_id, symptoms, response, created_at FROM queries WHERE id = ?",
		id,
	)

	record, err := scanQuery(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteOlderThan removes records older than the given number of days.
func (r *QueryRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM queries WHERE created_at < datetime('now', '-' || ? || ' days')",
		days,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old queries: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted queries: %w", err)
	}
	return deleted, nil
}

// scanQuery reads one queries row. The created_at DATETIME comes back as a
// string whose format depends on how the row was written.
func scanQuery(scan func(dest ...any) error) (*QueryRecord, error) {
	var record QueryRecord
	var sessionID sql.NullString
	var createdAtStr string

	err := scan(&record.ID, &sessionID, &record.Symptoms, &record.Response, &createdAtStr)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan query row: %w", err)
	}

	record.SessionID = sessionID.String

	record.CreatedAt, err = time.Parse("2006-01-02 15:04:05", createdAtStr)
	if err != nil {
		// Try alternative format (SQLite might use different format)
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
	}

	return &record, nil
}
