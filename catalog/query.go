package catalog

import (
	"context"
	"database/sql"

	"github.com/pgschema/pgddl/internal/logger"
)

// queryRowContext runs a single-row query with debug logging
func (i *Inspector) queryRowContext(ctx context.Context, description, query string, args ...any) *sql.Row {
	if logger.IsDebug() {
		logger.Get().Debug("Executing catalog query", "description", description, "sql", query, "args", args)
	}
	return i.db.QueryRowContext(ctx, query, args...)
}

// queryContext runs a multi-row query with debug logging
func (i *Inspector) queryContext(ctx context.Context, description, query string, args ...any) (*sql.Rows, error) {
	isDebug := logger.IsDebug()
	if isDebug {
		logger.Get().Debug("Executing catalog query", "description", description, "sql", query, "args", args)
	}

	rows, err := i.db.QueryContext(ctx, query, args...)

	if isDebug && err != nil {
		logger.Get().Debug("Catalog query failed", "description", description, "error", err)
	}
	return rows, err
}
