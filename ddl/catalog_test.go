package ddl

import (
	"context"
	"fmt"
)

// fakeCatalog serves a fixed fact set for one table
type fakeCatalog struct {
	version    int
	versionErr error

	table          *TableFacts
	columns        []ColumnFacts
	constraints    []ConstraintFacts
	parents        []QualifiedName
	partitionKey   string
	storageOptions []string
	tablespace     string
	owner          string

	columnsErr error

	partitionCalls int
}

func (f *fakeCatalog) ServerVersion(ctx context.Context) (int, error) {
	return f.version, f.versionErr
}

func (f *fakeCatalog) TableFacts(ctx context.Context, schema, table string) (*TableFacts, error) {
	if f.table == nil || f.table.Schema != schema || f.table.Name != table {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, schema, table)
	}
	facts := *f.table
	return &facts, nil
}

func (f *fakeCatalog) Columns(ctx context.Context, schema, table string) ([]ColumnFacts, error) {
	return f.columns, f.columnsErr
}

func (f *fakeCatalog) Constraints(ctx context.Context, schema, table string) ([]ConstraintFacts, error) {
	return f.constraints, nil
}

func (f *fakeCatalog) InheritedParents(ctx context.Context, schema, table string) ([]QualifiedName, error) {
	return f.parents, nil
}

func (f *fakeCatalog) PartitionExpression(ctx context.Context, schema, table string) (string, bool, error) {
	f.partitionCalls++
	return f.partitionKey, f.partitionKey != "", nil
}

func (f *fakeCatalog) StorageOptions(ctx context.Context, schema, table string) ([]string, error) {
	return f.storageOptions, nil
}

func (f *fakeCatalog) Tablespace(ctx context.Context, schema, table string) (string, bool, error) {
	return f.tablespace, f.tablespace != "", nil
}

func (f *fakeCatalog) Owner(ctx context.Context, schema, table string) (string, bool, error) {
	return f.owner, f.owner != "", nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
