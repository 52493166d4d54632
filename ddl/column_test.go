package ddl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildColumn(t *testing.T) {
	modern := ResolveDialect(120005)
	legacy := ResolveDialect(90500)

	tests := []struct {
		name           string
		col            ColumnFacts
		caps           Capabilities
		clause         string
		classification AutoIncrement
		setDefault     bool
	}{
		{
			name:           "identity always",
			col:            ColumnFacts{Name: "id", DataType: "bigint", Identity: IdentityAlways},
			caps:           modern,
			clause:         `"id" bigint GENERATED ALWAYS AS IDENTITY NOT NULL`,
			classification: AutoIncrementIdentity,
		},
		{
			name:           "identity by default",
			col:            ColumnFacts{Name: "id", DataType: "integer", Identity: IdentityByDefault},
			caps:           modern,
			clause:         `"id" integer GENERATED BY DEFAULT AS IDENTITY NOT NULL`,
			classification: AutoIncrementIdentity,
		},
		{
			name:           "identity ignored without dialect support",
			col:            ColumnFacts{Name: "n", DataType: "integer", Identity: IdentityAlways, Nullable: true},
			caps:           legacy,
			clause:         `"n" integer`,
			classification: AutoIncrementNone,
		},
		{
			name:           "integer sequence default",
			col:            ColumnFacts{Name: "id", DataType: "integer", Default: strPtr("nextval('t_id_seq'::regclass)")},
			caps:           modern,
			clause:         `"id" serial NOT NULL`,
			classification: AutoIncrementSequence,
		},
		{
			name:           "bigint sequence default",
			col:            ColumnFacts{Name: "id", DataType: "bigint", Default: strPtr("NEXTVAL('t_id_seq')")},
			caps:           legacy,
			clause:         `"id" bigserial NOT NULL`,
			classification: AutoIncrementSequence,
		},
		{
			name:           "int8 alias",
			col:            ColumnFacts{Name: "id", DataType: "int8", Default: strPtr("nextval('s')")},
			caps:           modern,
			clause:         `"id" bigserial NOT NULL`,
			classification: AutoIncrementSequence,
		},
		{
			name:           "non-integer sequence default keeps type",
			col:            ColumnFacts{Name: "code", DataType: "numeric", Precision: intPtr(12), Default: strPtr("nextval('codes')"), Nullable: true},
			caps:           modern,
			clause:         `"code" numeric(12)`,
			classification: AutoIncrementSequence,
		},
		{
			name:           "plain default",
			col:            ColumnFacts{Name: "status", DataType: "text", Default: strPtr("'new'::text")},
			caps:           modern,
			clause:         `"status" text NOT NULL`,
			classification: AutoIncrementNone,
			setDefault:     true,
		},
		{
			name:           "varchar nullable",
			col:            ColumnFacts{Name: "Display Name", DataType: "character varying", Length: intPtr(50), Nullable: true},
			caps:           modern,
			clause:         `"Display Name" varchar(50)`,
			classification: AutoIncrementNone,
		},
		{
			name:           "quoted name with embedded quote",
			col:            ColumnFacts{Name: `a"b`, DataType: "text", Nullable: true},
			caps:           modern,
			clause:         `"a""b" text`,
			classification: AutoIncrementNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := BuildColumn(tt.col, tt.caps)
			if def.Clause != tt.clause {
				t.Errorf("Clause = %q, want %q", def.Clause, tt.clause)
			}
			if def.Classification != tt.classification {
				t.Errorf("Classification = %s, want %s", def.Classification, tt.classification)
			}
			if def.NeedsSetDefault() != tt.setDefault {
				t.Errorf("NeedsSetDefault() = %v, want %v", def.NeedsSetDefault(), tt.setDefault)
			}
		})
	}
}

func TestBuildColumn_NeverInlinesDefault(t *testing.T) {
	def := BuildColumn(ColumnFacts{Name: "created_at", DataType: "timestamp", Default: strPtr("now()")}, ResolveDialect(150000))
	if def.Clause != `"created_at" timestamp NOT NULL` {
		t.Errorf("unexpected clause %q", def.Clause)
	}
}

func TestBuildColumns_OrdinalOrder(t *testing.T) {
	columns := []ColumnFacts{
		{Position: 3, Name: "c", DataType: "text"},
		{Position: 1, Name: "a", DataType: "text"},
		{Position: 2, Name: "b", DataType: "text"},
	}

	defs := BuildColumns(columns, ResolveDialect(120005))

	var names []string
	for _, def := range defs {
		names = append(names, def.Name)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, names); diff != "" {
		t.Errorf("column order mismatch (-want +got):\n%s", diff)
	}
	if columns[0].Name != "c" {
		t.Error("BuildColumns must not reorder its input")
	}
}

func TestIsSequenceDefault(t *testing.T) {
	tests := map[string]bool{
		"nextval('users_id_seq'::regclass)": true,
		"NEXTVAL ('s')":                     true,
		"pg_catalog.nextval('s')":           true,
		"my_nextval('s')":                   false,
		"'nextval'::text":                   false,
		"0":                                 false,
	}
	for expr, expected := range tests {
		if got := IsSequenceDefault(expr); got != expected {
			t.Errorf("IsSequenceDefault(%q) = %v, want %v", expr, got, expected)
		}
	}
}
