package table

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/pgschema/pgddl/internal/dump"
)

// ValidateStatements parses every generated statement with the PostgreSQL
// parser and reports the first one that does not parse.
func ValidateStatements(tables []dump.TableDump) error {
	for _, table := range tables {
		for _, stmt := range table.Statements {
			result, err := pg_query.Parse(stmt.SQL)
			if err != nil {
				return fmt.Errorf("table %s.%s: generated %s does not parse: %w", table.Schema, table.Name, stmt.Kind, err)
			}
			if len(result.Stmts) != 1 {
				return fmt.Errorf("table %s.%s: generated %s holds %d statements, expected 1", table.Schema, table.Name, stmt.Kind, len(result.Stmts))
			}
		}
	}
	return nil
}
