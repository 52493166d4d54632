package pgddl

import (
	"github.com/pgschema/pgddl/catalog"
	"github.com/pgschema/pgddl/ddl"
	"github.com/pgschema/pgddl/internal/dump"
)

// Re-export important types for external consumption

// TableDDL is the reconstructed DDL of one table.
type TableDDL = dump.TableDump

// Statement is one terminated SQL statement with its kind and target object.
type Statement = ddl.Statement

// ConstraintSource selects where constraint facts are read from.
type ConstraintSource = catalog.ConstraintSource

const (
	ConstraintSourceCatalog           = catalog.ConstraintSourceCatalog
	ConstraintSourceInformationSchema = catalog.ConstraintSourceInformationSchema
)

// Error kinds, for use with errors.Is.
var (
	ErrTableNotFound        = ddl.ErrTableNotFound
	ErrAmbiguousConstraint  = ddl.ErrAmbiguousConstraint
	ErrIncompleteConstraint = ddl.ErrIncompleteConstraint
)
