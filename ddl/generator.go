// Package ddl reconstructs the DDL of a PostgreSQL table from catalog facts.
//
// The Generator reads facts through a Catalog, resolves the server's dialect
// capabilities and renders an ordered list of self-contained statements:
// CREATE TABLE, one ADD CONSTRAINT per constraint, one SET DEFAULT per plain
// default, and the ownership change.
package ddl

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgschema/pgddl/internal/logger"
)

// Snapshot is every fact needed to reconstruct one table
type Snapshot struct {
	Table        TableFacts        `json:"table"`
	Columns      []ColumnFacts     `json:"columns"`
	Constraints  []ConstraintFacts `json:"constraints"`
	Capabilities Capabilities      `json:"-"`
}

// Generator reconstructs table DDL from a Catalog
type Generator struct {
	catalog Catalog
}

// NewGenerator creates a Generator reading from the given catalog
func NewGenerator(catalog Catalog) *Generator {
	return &Generator{catalog: catalog}
}

// Generate fetches the table's facts and renders its DDL.
// On error no statements are returned.
func (g *Generator) Generate(ctx context.Context, schema, table string) ([]Statement, error) {
	snapshot, err := g.Collect(ctx, schema, table)
	if err != nil {
		return nil, err
	}
	return Build(snapshot)
}

// Collect fetches every fact about the table from the catalog
func (g *Generator) Collect(ctx context.Context, schema, table string) (*Snapshot, error) {
	log := logger.ForTable(schema, table)

	caps := g.resolveDialect(ctx)

	facts, err := g.catalog.TableFacts(ctx, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s.%s: %w", schema, table, err)
	}
	snapshot := &Snapshot{Table: *facts, Capabilities: caps}
	if snapshot.Table.Schema == "" {
		snapshot.Table.Schema = schema
	}
	if snapshot.Table.Name == "" {
		snapshot.Table.Name = table
	}

	if snapshot.Columns, err = g.catalog.Columns(ctx, schema, table); err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	if snapshot.Constraints, err = g.catalog.Constraints(ctx, schema, table); err != nil {
		return nil, fmt.Errorf("failed to get constraints: %w", err)
	}
	if snapshot.Table.Parents, err = g.catalog.InheritedParents(ctx, schema, table); err != nil {
		return nil, fmt.Errorf("failed to get inherited parents: %w", err)
	}

	// pg_get_partkeydef does not exist before native partitioning
	if snapshot.Table.Kind == RelationPartitioned && caps.SupportsNativePartitioning() {
		expr, ok, err := g.catalog.PartitionExpression(ctx, schema, table)
		if err != nil {
			return nil, fmt.Errorf("failed to get partition expression: %w", err)
		}
		if ok {
			snapshot.Table.PartitionKey = expr
		}
	}

	if snapshot.Table.StorageOptions, err = g.catalog.StorageOptions(ctx, schema, table); err != nil {
		return nil, fmt.Errorf("failed to get storage options: %w", err)
	}

	tablespace, ok, err := g.catalog.Tablespace(ctx, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get tablespace: %w", err)
	}
	if ok {
		snapshot.Table.Tablespace = tablespace
	}

	owner, ok, err := g.catalog.Owner(ctx, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	if ok {
		snapshot.Table.Owner = owner
	}

	log.Debug("Collected table facts",
		"kind", snapshot.Table.Kind,
		"columns", len(snapshot.Columns),
		"constraint_rows", len(snapshot.Constraints),
		"server_version", caps.Version,
	)

	return snapshot, nil
}

// resolveDialect reads the server version, falling back to the oldest
// capability set when it cannot be read.
func (g *Generator) resolveDialect(ctx context.Context) Capabilities {
	version, err := g.catalog.ServerVersion(ctx)
	if err != nil {
		logger.Get().Warn("Could not read server version, using oldest dialect", "error", err)
		return OldestDialect()
	}
	return ResolveDialect(version)
}

// Build renders the statements for a collected snapshot. It performs no I/O.
func Build(snapshot *Snapshot) ([]Statement, error) {
	table := snapshot.Table.QualifiedName()
	caps := snapshot.Capabilities
	columns := BuildColumns(snapshot.Columns, caps)

	constraints, err := AssembleConstraints(table, snapshot.Constraints)
	if err != nil {
		return nil, err
	}

	statements := make([]Statement, 0, 2+len(constraints)+len(columns))
	statements = append(statements, Statement{
		SQL:    createTableSQL(&snapshot.Table, columns, caps),
		Kind:   StatementCreateTable,
		Object: table.String(),
	})
	statements = append(statements, constraints...)

	for _, col := range columns {
		if !col.NeedsSetDefault() {
			continue
		}
		statements = append(statements, Statement{
			SQL: fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s;",
				table.Quoted(), QuoteIdent(col.Name), *col.Default),
			Kind:   StatementSetDefault,
			Object: table.String() + "." + col.Name,
		})
	}

	if snapshot.Table.Owner != "" {
		statements = append(statements, Statement{
			SQL:    ownerSQL(table, snapshot.Table.Owner, caps.OwnerSyntax()),
			Kind:   StatementOwner,
			Object: table.String(),
		})
	}

	return statements, nil
}

func createTableSQL(facts *TableFacts, columns []ColumnDefinition, caps Capabilities) string {
	var b strings.Builder

	b.WriteString("CREATE ")
	switch facts.Persistence {
	case PersistenceUnlogged:
		b.WriteString("UNLOGGED ")
	case PersistenceTemporary:
		b.WriteString("TEMPORARY ")
	}
	b.WriteString("TABLE ")
	b.WriteString(facts.QualifiedName().Quoted())

	if len(columns) == 0 {
		b.WriteString(" ()")
	} else {
		b.WriteString(" (")
		for i, col := range columns {
			b.WriteString("\n    ")
			b.WriteString(col.Clause)
			if i < len(columns)-1 {
				b.WriteString(",")
			}
		}
		b.WriteString("\n)")
	}

	if facts.Kind == RelationPartitioned && caps.SupportsNativePartitioning() && facts.PartitionKey != "" {
		b.WriteString("\nPARTITION BY ")
		b.WriteString(facts.PartitionKey)
	}

	if len(facts.Parents) > 0 {
		parents := make([]string, len(facts.Parents))
		for i, parent := range facts.Parents {
			parents[i] = parent.Quoted()
		}
		b.WriteString("\nINHERITS (")
		b.WriteString(strings.Join(parents, ", "))
		b.WriteString(")")
	}

	if len(facts.StorageOptions) > 0 {
		b.WriteString("\nWITH (")
		b.WriteString(strings.Join(facts.StorageOptions, ", "))
		b.WriteString(")")
	}

	if facts.Tablespace != "" {
		b.WriteString("\nTABLESPACE ")
		b.WriteString(QuoteIdent(facts.Tablespace))
	}

	b.WriteString(";")
	return b.String()
}

func ownerSQL(table QualifiedName, owner string, syntax OwnerSyntax) string {
	stmt := fmt.Sprintf("ALTER TABLE %s OWNER TO %s;", table.Quoted(), QuoteIdent(owner))
	if syntax == OwnerSyntaxLegacy {
		return "-- owner change for server older than 9.6\n" + stmt
	}
	return stmt
}
