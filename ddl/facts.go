package ddl

import "strings"

// RelationKind classifies the relation being reconstructed
type RelationKind string

const (
	RelationPlain       RelationKind = "plain"
	RelationPartitioned RelationKind = "partitioned"
	RelationOther       RelationKind = "other"
)

// Persistence describes how a table's data survives crashes and sessions
type Persistence string

const (
	PersistencePermanent Persistence = "permanent"
	PersistenceUnlogged  Persistence = "unlogged"
	PersistenceTemporary Persistence = "temporary"
)

// RelationKindFromCatalog maps pg_class.relkind to a RelationKind
func RelationKindFromCatalog(relkind string) RelationKind {
	switch relkind {
	case "r":
		return RelationPlain
	case "p":
		return RelationPartitioned
	default:
		return RelationOther
	}
}

// PersistenceFromCatalog maps pg_class.relpersistence to a Persistence
func PersistenceFromCatalog(relpersistence string) Persistence {
	switch relpersistence {
	case "u":
		return PersistenceUnlogged
	case "t":
		return PersistenceTemporary
	default:
		return PersistencePermanent
	}
}

// QualifiedName is a schema-qualified relation name
type QualifiedName struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`
}

// String returns the unquoted dotted form, used for object paths and logging
func (q QualifiedName) String() string {
	return q.Schema + "." + q.Name
}

// Quoted returns the quoted, schema-qualified form for use in SQL
func (q QualifiedName) Quoted() string {
	return QuoteQualified(q.Schema, q.Name)
}

// TableFacts is the snapshot of table-level catalog facts.
// A Catalog fills identity, kind and persistence; the Generator completes the rest.
type TableFacts struct {
	Schema         string          `json:"schema"`
	Name           string          `json:"name"`
	Kind           RelationKind    `json:"kind"`
	Persistence    Persistence     `json:"persistence"`
	Owner          string          `json:"owner,omitempty"`
	Parents        []QualifiedName `json:"parents,omitempty"`
	PartitionKey   string          `json:"partition_key,omitempty"`
	StorageOptions []string        `json:"storage_options,omitempty"`
	Tablespace     string          `json:"tablespace,omitempty"`
}

// QualifiedName returns the table's schema-qualified name
func (t *TableFacts) QualifiedName() QualifiedName {
	return QualifiedName{Schema: t.Schema, Name: t.Name}
}

// IdentityMode is the identity generation mode recorded for a column
type IdentityMode string

const (
	IdentityNone      IdentityMode = ""
	IdentityAlways    IdentityMode = "ALWAYS"
	IdentityByDefault IdentityMode = "BY DEFAULT"
)

// ParseIdentityMode maps information_schema.columns.identity_generation to an IdentityMode
func ParseIdentityMode(generation string) IdentityMode {
	switch strings.ToUpper(strings.TrimSpace(generation)) {
	case "ALWAYS":
		return IdentityAlways
	case "BY DEFAULT":
		return IdentityByDefault
	default:
		return IdentityNone
	}
}

// AutoIncrement is the derived auto-increment classification of a column
type AutoIncrement string

const (
	AutoIncrementNone     AutoIncrement = "none"
	AutoIncrementIdentity AutoIncrement = "identity"
	AutoIncrementSequence AutoIncrement = "sequence-default"
)

// ColumnFacts holds the catalog facts of one column
type ColumnFacts struct {
	Position  int          `json:"position"` // ordinal_position
	Name      string       `json:"name"`
	DataType  string       `json:"data_type"`
	Length    *int         `json:"length,omitempty"`
	Precision *int         `json:"precision,omitempty"`
	Scale     *int         `json:"scale,omitempty"`
	Nullable  bool         `json:"nullable"`
	Default   *string      `json:"default,omitempty"`
	Identity  IdentityMode `json:"identity,omitempty"`
}

// ParseNullable converts the YES/NO convention of information_schema to a boolean
func ParseNullable(isNullable string) bool {
	return !strings.EqualFold(strings.TrimSpace(isNullable), "NO")
}

// ConstraintKind is the kind of a table constraint
type ConstraintKind string

const (
	ConstraintPrimaryKey ConstraintKind = "PRIMARY KEY"
	ConstraintUnique     ConstraintKind = "UNIQUE"
	ConstraintForeignKey ConstraintKind = "FOREIGN KEY"
	ConstraintCheck      ConstraintKind = "CHECK"
)

// ConstraintKindFromCatalog maps pg_constraint.contype to a ConstraintKind
func ConstraintKindFromCatalog(contype string) (ConstraintKind, bool) {
	switch contype {
	case "p":
		return ConstraintPrimaryKey, true
	case "u":
		return ConstraintUnique, true
	case "f":
		return ConstraintForeignKey, true
	case "c":
		return ConstraintCheck, true
	default:
		return "", false
	}
}

// ConstraintFacts is one catalog row describing (part of) a constraint.
// Rows sharing a Name belong to the same logical constraint.
//
// When Definition is set it is a pre-rendered fragment and is used verbatim.
// Otherwise the structured fields describe one key column per row.
type ConstraintFacts struct {
	Name       string         `json:"name"`
	Kind       ConstraintKind `json:"kind"`
	Definition string         `json:"definition,omitempty"`

	Column      string `json:"column,omitempty"`
	Position    int    `json:"position,omitempty"` // key ordinal
	RefSchema   string `json:"ref_schema,omitempty"`
	RefTable    string `json:"ref_table,omitempty"`
	RefColumn   string `json:"ref_column,omitempty"`
	RefPosition int    `json:"ref_position,omitempty"`

	CheckClause       string `json:"check_clause,omitempty"`
	UpdateRule        string `json:"update_rule,omitempty"`
	DeleteRule        string `json:"delete_rule,omitempty"`
	Deferrable        bool   `json:"deferrable,omitempty"`
	InitiallyDeferred bool   `json:"initially_deferred,omitempty"`
}
