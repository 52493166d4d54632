package ddl

import "context"

// Catalog is the read-only source of catalog facts about a table.
// Implementations must be safe for concurrent use if tables are reconstructed
// concurrently. Optional facts are returned as (value, ok, err).
type Catalog interface {
	// ServerVersion returns server_version_num, e.g. 120005
	ServerVersion(ctx context.Context) (int, error)
	// TableFacts returns identity, kind and persistence. It returns an error
	// wrapping ErrTableNotFound when the table does not exist.
	TableFacts(ctx context.Context, schema, table string) (*TableFacts, error)
	// Columns returns the table's columns ordered by ordinal position
	Columns(ctx context.Context, schema, table string) ([]ColumnFacts, error)
	// Constraints returns constraint rows; several rows may share a name
	Constraints(ctx context.Context, schema, table string) ([]ConstraintFacts, error)
	InheritedParents(ctx context.Context, schema, table string) ([]QualifiedName, error)
	PartitionExpression(ctx context.Context, schema, table string) (string, bool, error)
	StorageOptions(ctx context.Context, schema, table string) ([]string, error)
	Tablespace(ctx context.Context, schema, table string) (string, bool, error)
	Owner(ctx context.Context, schema, table string) (string, bool, error)
}
