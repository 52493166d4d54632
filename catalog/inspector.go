// Package catalog reads table facts from a live PostgreSQL catalog.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/lib/pq"
	"github.com/pgschema/pgddl/ddl"
)

// ConstraintSource selects where constraint facts are read from
type ConstraintSource string

const (
	// ConstraintSourceCatalog reads pre-rendered definitions from pg_constraint
	ConstraintSourceCatalog ConstraintSource = "catalog"
	// ConstraintSourceInformationSchema reads one key column per row from
	// information_schema and lets the assembler render the definition
	ConstraintSourceInformationSchema ConstraintSource = "information-schema"
)

// ParseConstraintSource validates a constraint source name
func ParseConstraintSource(s string) (ConstraintSource, error) {
	switch ConstraintSource(s) {
	case ConstraintSourceCatalog, ConstraintSourceInformationSchema:
		return ConstraintSource(s), nil
	default:
		return "", fmt.Errorf("invalid constraint source %q (use %q or %q)", s, ConstraintSourceCatalog, ConstraintSourceInformationSchema)
	}
}

// systemNotNullName matches the names information_schema gives NOT NULL checks
var systemNotNullName = regexp.MustCompile(`^\d+_\d+_\d+_not_null$`)

// Inspector implements ddl.Catalog against a PostgreSQL connection.
// It is safe for concurrent use.
type Inspector struct {
	db               *sql.DB
	constraintSource ConstraintSource

	versionMu     sync.Mutex
	version       int
	versionLoaded bool
}

// Option configures an Inspector
type Option func(*Inspector)

// WithConstraintSource selects the constraint source
func WithConstraintSource(source ConstraintSource) Option {
	return func(i *Inspector) {
		i.constraintSource = source
	}
}

// WithStructuredConstraints reads constraints from information_schema
func WithStructuredConstraints() Option {
	return WithConstraintSource(ConstraintSourceInformationSchema)
}

// NewInspector creates a new catalog inspector
func NewInspector(db *sql.DB, opts ...Option) *Inspector {
	i := &Inspector{
		db:               db,
		constraintSource: ConstraintSourceCatalog,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var _ ddl.Catalog = (*Inspector)(nil)

// ServerVersion returns server_version_num. A successful read is cached for
// the life of the Inspector; failures are retried on the next call.
func (i *Inspector) ServerVersion(ctx context.Context) (int, error) {
	i.versionMu.Lock()
	defer i.versionMu.Unlock()

	if i.versionLoaded {
		return i.version, nil
	}

	var version int
	if err := i.queryRowContext(ctx, "server version", serverVersionQuery).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to query server version: %w", err)
	}
	i.version = version
	i.versionLoaded = true
	return version, nil
}

// TableFacts returns the table's kind and persistence
func (i *Inspector) TableFacts(ctx context.Context, schema, table string) (*ddl.TableFacts, error) {
	var relkind, relpersistence string
	err := i.queryRowContext(ctx, "table facts", tableFactsQuery, schema, table).Scan(&relkind, &relpersistence)
	if err != nil {
		return nil, notFound(err, schema, table)
	}

	return &ddl.TableFacts{
		Schema:      schema,
		Name:        table,
		Kind:        ddl.RelationKindFromCatalog(relkind),
		Persistence: ddl.PersistenceFromCatalog(relpersistence),
	}, nil
}

// Columns returns the table's columns in ordinal order
func (i *Inspector) Columns(ctx context.Context, schema, table string) ([]ddl.ColumnFacts, error) {
	identityExpr := noIdentityGenerationExpr
	if version, err := i.ServerVersion(ctx); err == nil && ddl.ResolveDialect(version).SupportsIdentityColumns() {
		identityExpr = identityGenerationExpr
	}

	rows, err := i.queryContext(ctx, "columns", fmt.Sprintf(columnsQueryTemplate, identityExpr), schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ddl.ColumnFacts
	for rows.Next() {
		var (
			name, dataType, isNullable       string
			position                         int
			maxLength, precision, scale      sql.NullInt64
			columnDefault, identityGeneration sql.NullString
		)
		if err := rows.Scan(&name, &position, &dataType, &isNullable, &maxLength, &precision, &scale, &columnDefault, &identityGeneration); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		column := ddl.ColumnFacts{
			Position:  position,
			Name:      name,
			DataType:  dataType,
			Nullable:  ddl.ParseNullable(isNullable),
			Length:    nullIntPtr(maxLength),
			Precision: nullIntPtr(precision),
			Scale:     nullIntPtr(scale),
			Identity:  ddl.ParseIdentityMode(identityGeneration.String),
		}
		if columnDefault.Valid {
			defaultValue := columnDefault.String
			column.Default = &defaultValue
		}
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

// Constraints returns the table's constraint rows from the configured source
func (i *Inspector) Constraints(ctx context.Context, schema, table string) ([]ddl.ConstraintFacts, error) {
	if i.constraintSource == ConstraintSourceInformationSchema {
		return i.constraintColumns(ctx, schema, table)
	}
	return i.constraintDefinitions(ctx, schema, table)
}

func (i *Inspector) constraintDefinitions(ctx context.Context, schema, table string) ([]ddl.ConstraintFacts, error) {
	rows, err := i.queryContext(ctx, "constraint definitions", constraintDefinitionsQuery, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []ddl.ConstraintFacts
	for rows.Next() {
		var name, contype, definition string
		if err := rows.Scan(&name, &contype, &definition); err != nil {
			return nil, fmt.Errorf("failed to scan constraint: %w", err)
		}
		kind, ok := ddl.ConstraintKindFromCatalog(contype)
		if !ok {
			continue
		}
		constraints = append(constraints, ddl.ConstraintFacts{
			Name:       name,
			Kind:       kind,
			Definition: definition,
		})
	}
	return constraints, rows.Err()
}

func (i *Inspector) constraintColumns(ctx context.Context, schema, table string) ([]ddl.ConstraintFacts, error) {
	rows, err := i.queryContext(ctx, "constraint columns", constraintColumnsQuery, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []ddl.ConstraintFacts
	for rows.Next() {
		var (
			name, constraintType                             string
			column, refSchema, refTable, refColumn           sql.NullString
			position, refPosition                            sql.NullInt64
			updateRule, deleteRule, checkClause              sql.NullString
			isDeferrable, initiallyDeferred                  sql.NullString
		)
		if err := rows.Scan(&name, &constraintType, &column, &position,
			&refSchema, &refTable, &refColumn, &refPosition,
			&updateRule, &deleteRule, &checkClause,
			&isDeferrable, &initiallyDeferred); err != nil {
			return nil, fmt.Errorf("failed to scan constraint column: %w", err)
		}

		// Skip system-generated NOT NULL checks, they are part of the column definitions
		if constraintType == string(ddl.ConstraintCheck) && systemNotNullName.MatchString(name) {
			continue
		}

		constraints = append(constraints, ddl.ConstraintFacts{
			Name:              name,
			Kind:              ddl.ConstraintKind(constraintType),
			Column:            column.String,
			Position:          int(position.Int64),
			RefSchema:         refSchema.String,
			RefTable:          refTable.String,
			RefColumn:         refColumn.String,
			RefPosition:       int(refPosition.Int64),
			CheckClause:       checkClause.String,
			UpdateRule:        updateRule.String,
			DeleteRule:        deleteRule.String,
			Deferrable:        isDeferrable.String == "YES",
			InitiallyDeferred: initiallyDeferred.String == "YES",
		})
	}
	return constraints, rows.Err()
}

// InheritedParents returns the INHERITS parents in declaration order
func (i *Inspector) InheritedParents(ctx context.Context, schema, table string) ([]ddl.QualifiedName, error) {
	rows, err := i.queryContext(ctx, "inherited parents", inheritedParentsQuery, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parents []ddl.QualifiedName
	for rows.Next() {
		var parent ddl.QualifiedName
		if err := rows.Scan(&parent.Schema, &parent.Name); err != nil {
			return nil, fmt.Errorf("failed to scan parent: %w", err)
		}
		parents = append(parents, parent)
	}
	return parents, rows.Err()
}

// PartitionExpression returns the PARTITION BY expression, e.g. "RANGE (created_at)"
func (i *Inspector) PartitionExpression(ctx context.Context, schema, table string) (string, bool, error) {
	return i.optionalString(ctx, "partition expression", partitionExpressionQuery, schema, table)
}

// StorageOptions returns the table's reloptions, e.g. "fillfactor=70"
func (i *Inspector) StorageOptions(ctx context.Context, schema, table string) ([]string, error) {
	var options pq.StringArray
	if err := i.queryRowContext(ctx, "storage options", storageOptionsQuery, schema, table).Scan(&options); err != nil {
		return nil, notFound(err, schema, table)
	}
	return []string(options), nil
}

// Tablespace returns the table's tablespace when it is not the database default
func (i *Inspector) Tablespace(ctx context.Context, schema, table string) (string, bool, error) {
	return i.optionalString(ctx, "tablespace", tablespaceQuery, schema, table)
}

// Owner returns the table owner's role name
func (i *Inspector) Owner(ctx context.Context, schema, table string) (string, bool, error) {
	return i.optionalString(ctx, "owner", ownerQuery, schema, table)
}

func (i *Inspector) optionalString(ctx context.Context, description, query, schema, table string) (string, bool, error) {
	var value sql.NullString
	if err := i.queryRowContext(ctx, description, query, schema, table).Scan(&value); err != nil {
		return "", false, notFound(err, schema, table)
	}
	if !value.Valid || value.String == "" {
		return "", false, nil
	}
	return value.String, true, nil
}

// notFound maps sql.ErrNoRows to ddl.ErrTableNotFound
func notFound(err error, schema, table string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s.%s", ddl.ErrTableNotFound, schema, table)
	}
	return err
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
