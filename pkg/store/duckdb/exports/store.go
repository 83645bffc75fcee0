package exports

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Samayeeta/indicure-ey/pkg/models/store"
	"github.com/Samayeeta/indicure-ey/pkg/store/duckdb"
)

const DefaultListLimit = 50

// Store is the export audit log.
type Store interface {
	Record(ctx context.Context, record store.ExportRecord) error
	List(ctx context.Context, limit int) ([]store.ExportRecord, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

const insertExport = `
		INSERT INTO exports (
			id, filename, mode, geography, size_bytes, sha256, location, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// Record inserts one entry, inside the context transaction when there is one.
func (s *defaultStore) Record(ctx context.Context, record store.ExportRecord) error {
	var location any
	if record.Location != nil {
		location = *record.Location
	}

	_, err := duckdb.Executor(ctx, s.db).ExecContext(ctx, insertExport,
		record.ID,
		record.Filename,
		record.Mode,
		record.Geography,
		record.Size,
		record.SHA256,
		location,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert export record: %w", err)
	}
	return nil
}

const listExports = `
		SELECT id, filename, mode, geography, size_bytes, sha256, location, created_at
		FROM exports
		ORDER BY created_at DESC, id
		LIMIT ?`

// List returns the most recent entries first. A non-positive limit means
// DefaultListLimit.
func (s *defaultStore) List(ctx context.Context, limit int) ([]store.ExportRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := duckdb.Executor(ctx, s.db).QueryContext(ctx, listExports, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export records: %w", err)
	}
	defer rows.Close()

	records := make([]store.ExportRecord, 0)
	for rows.Next() {
		var (
			r        store.ExportRecord
			location sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Filename, &r.Mode, &r.Geography, &r.Size, &r.SHA256, &location, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		if location.Valid {
			l := location.String
			r.Location = &l
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export records: %w", err)
	}
	return records, nil
}
