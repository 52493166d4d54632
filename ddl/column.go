package ddl

import (
	"regexp"
	"sort"
	"strings"
)

// nextvalPattern matches a sequence next-value call in a default expression
var nextvalPattern = regexp.MustCompile(`(?i)\bnextval\s*\(`)

// ColumnDefinition is the rendered form of one column
type ColumnDefinition struct {
	Name           string
	Type           string
	Classification AutoIncrement
	// Clause is the full column clause for CREATE TABLE, e.g. "id" serial NOT NULL
	Clause string
	// Default is the raw default expression, nil when the column has none
	Default *string
}

// NeedsSetDefault reports whether the column's default must be emitted as a
// separate ALTER TABLE ... SET DEFAULT statement. Identity and sequence-default
// columns already encode their value generation.
func (d ColumnDefinition) NeedsSetDefault() bool {
	return d.Default != nil && d.Classification == AutoIncrementNone
}

// IsSequenceDefault reports whether a default expression advances a sequence
func IsSequenceDefault(expr string) bool {
	return nextvalPattern.MatchString(expr)
}

// ClassifyAutoIncrement derives the auto-increment classification of a column
func ClassifyAutoIncrement(col ColumnFacts, caps Capabilities) AutoIncrement {
	if caps.SupportsIdentityColumns() && col.Identity != IdentityNone {
		return AutoIncrementIdentity
	}
	if col.Default != nil && IsSequenceDefault(*col.Default) {
		return AutoIncrementSequence
	}
	return AutoIncrementNone
}

// BuildColumn renders one column clause
func BuildColumn(col ColumnFacts, caps Capabilities) ColumnDefinition {
	def := ColumnDefinition{
		Name:           col.Name,
		Type:           CanonicalType(col.DataType, col.Length, col.Precision, col.Scale),
		Classification: ClassifyAutoIncrement(col, caps),
		Default:        col.Default,
	}

	var parts []string
	parts = append(parts, QuoteIdent(col.Name))

	switch def.Classification {
	case AutoIncrementIdentity:
		parts = append(parts, def.Type)
		if col.Identity == IdentityAlways {
			parts = append(parts, "GENERATED ALWAYS AS IDENTITY")
		} else {
			parts = append(parts, "GENERATED BY DEFAULT AS IDENTITY")
		}
	case AutoIncrementSequence:
		// Non-integer base types keep their canonical type
		if serial, ok := serialType(col.DataType); ok {
			def.Type = serial
		}
		parts = append(parts, def.Type)
	default:
		parts = append(parts, def.Type)
	}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}

	def.Clause = strings.Join(parts, " ")
	return def
}

// BuildColumns renders all columns in ordinal-position order
func BuildColumns(columns []ColumnFacts, caps Capabilities) []ColumnDefinition {
	ordered := make([]ColumnFacts, len(columns))
	copy(ordered, columns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	defs := make([]ColumnDefinition, 0, len(ordered))
	for _, col := range ordered {
		defs = append(defs, BuildColumn(col, caps))
	}
	return defs
}
