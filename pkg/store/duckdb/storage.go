package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ExportsTableSchema = `
	CREATE TABLE IF NOT EXISTS exports (
		id VARCHAR NOT NULL PRIMARY KEY,
		filename VARCHAR NOT NULL,
		mode VARCHAR NOT NULL,
		geography VARCHAR NOT NULL,
		size_bytes BIGINT NOT NULL,
		sha256 VARCHAR NOT NULL,
		location VARCHAR NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	ExportsTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the audit database at settings.DbPath and creates missing
// tables. ":memory:" gives a private in-memory database.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			if _, err := exec.ExecContext(context.Background(), query, nil); err != nil {
				return fmt.Errorf("failed to run boot query: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	return sql.OpenDB(c), nil
}
