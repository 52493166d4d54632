package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/pgschema/pgddl/ddl"
	"github.com/pgschema/pgddl/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationSetup = `
CREATE TABLE shop.users (
    id serial PRIMARY KEY,
    email varchar(120) NOT NULL UNIQUE,
    balance numeric(10,2) DEFAULT 0,
    created_at timestamptz NOT NULL DEFAULT now(),
    country char(3) NOT NULL DEFAULT 'USA',
    last_seen timestamp(3)
) WITH (fillfactor=80);
ALTER TABLE shop.users OWNER TO alice;
CREATE TABLE shop.orders (
    id bigint GENERATED ALWAYS AS IDENTITY,
    user_id integer NOT NULL,
    region text NOT NULL,
    qty integer CHECK (qty > 0),
    PRIMARY KEY (id),
    CONSTRAINT orders_user_fkey FOREIGN KEY (user_id) REFERENCES shop.users (id) ON DELETE CASCADE DEFERRABLE
);
CREATE TABLE shop.events (
    created_at date NOT NULL,
    payload jsonb
) PARTITION BY RANGE (created_at);
CREATE TABLE shop.events_2024 PARTITION OF shop.events FOR VALUES FROM ('2024-01-01') TO ('2025-01-01');
CREATE TABLE shop.places (name text CONSTRAINT places_name_check CHECK (name <> ''));
CREATE TABLE shop.capitals (state text) INHERITS (shop.places);
CREATE UNLOGGED TABLE shop."Mixed Case" ("Key" int);
CREATE VIEW shop.user_emails AS SELECT email FROM shop.users;
CREATE TABLE shop.teams (id integer PRIMARY KEY);
CREATE TABLE shop.projects (
    owner_id integer CONSTRAINT fk_owner REFERENCES shop.users (id),
    price integer CONSTRAINT positive CHECK (price > 0)
);
CREATE TABLE shop.tasks (
    owner_id integer CONSTRAINT fk_owner REFERENCES shop.teams (id) ON DELETE SET NULL,
    qty integer CONSTRAINT positive CHECK (qty > 0)
);
`

// setupShop recreates the shop schema; the alice role must already exist
func setupShop(ctx context.Context, t *testing.T, container *testutil.ContainerInfo) {
	t.Helper()
	container.ResetSchema(ctx, t, "shop")
	container.Exec(ctx, t, integrationSetup)
}

// replayTables are listed so that referenced and parent tables come first
var replayTables = []string{"users", "orders", "places", "capitals", "teams", "projects", "tasks"}

func TestInspectorIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container := testutil.SetupPostgresContainer(ctx, t)
	defer container.Terminate(ctx, t)

	container.Exec(ctx, t, "CREATE ROLE alice")
	setupShop(ctx, t, container)

	for _, source := range []ConstraintSource{ConstraintSourceCatalog, ConstraintSourceInformationSchema} {
		t.Run(string(source), func(t *testing.T) {
			inspector := NewInspector(container.Conn, WithConstraintSource(source))
			generator := ddl.NewGenerator(inspector)

			generateScript := func(schema, table string) string {
				t.Helper()
				statements, err := generator.Generate(ctx, schema, table)
				require.NoError(t, err)
				for _, stmt := range statements {
					_, err := pg_query.Parse(stmt.SQL)
					assert.NoError(t, err, "statement does not parse: %s", stmt.SQL)
				}
				return ddl.Script(statements)
			}

			users := generateScript("shop", "users")
			assert.Contains(t, users, `"id" serial NOT NULL`)
			assert.Contains(t, users, `"email" varchar(120) NOT NULL`)
			assert.Contains(t, users, `"balance" numeric(10,2)`)
			assert.Contains(t, users, "WITH (fillfactor=80)")
			assert.Contains(t, users, `ADD CONSTRAINT "users_pkey" PRIMARY KEY`)
			assert.Contains(t, users, `ADD CONSTRAINT "users_email_key" UNIQUE`)
			assert.Contains(t, users, `ALTER COLUMN "balance" SET DEFAULT 0`)
			assert.Contains(t, users, `ALTER COLUMN "created_at" SET DEFAULT now()`)
			assert.Contains(t, users, `"country" character(3) NOT NULL`)
			assert.Contains(t, users, `"last_seen" timestamp(3) without time zone`)
			assert.NotContains(t, users, `ALTER COLUMN "id" SET DEFAULT`)
			assert.Contains(t, users, `OWNER TO "alice";`)

			orders := generateScript("shop", "orders")
			assert.Contains(t, orders, `"id" bigint GENERATED ALWAYS AS IDENTITY NOT NULL`)
			assert.Contains(t, orders, `ADD CONSTRAINT "orders_user_fkey" FOREIGN KEY`)
			assert.Contains(t, orders, "ON DELETE CASCADE DEFERRABLE")
			assert.Contains(t, orders, `ADD CONSTRAINT "orders_qty_check" CHECK`)
			assert.NotContains(t, orders, "not_null")

			events := generateScript("shop", "events")
			assert.Contains(t, events, "PARTITION BY RANGE (created_at)")

			partition := generateScript("shop", "events_2024")
			assert.NotContains(t, partition, "INHERITS")

			places := generateScript("shop", "places")
			assert.Contains(t, places, `ADD CONSTRAINT "places_name_check" CHECK`)

			capitals := generateScript("shop", "capitals")
			assert.Contains(t, capitals, `INHERITS ("shop"."places")`)
			assert.NotContains(t, capitals, "places_name_check", "inherited constraints come from the parent")

			// Same constraint names on two tables of one schema
			projects := generateScript("shop", "projects")
			assert.Contains(t, projects, `"fk_owner" FOREIGN KEY`)
			assert.Contains(t, projects, `REFERENCES "shop"."users"`)
			assert.NotContains(t, projects, "teams")
			assert.Contains(t, projects, "price > 0")
			assert.NotContains(t, projects, "qty")

			tasks := generateScript("shop", "tasks")
			assert.Contains(t, tasks, `REFERENCES "shop"."teams"`)
			assert.Contains(t, tasks, "ON DELETE SET NULL")
			assert.NotContains(t, tasks, `"users"`)
			assert.Contains(t, tasks, "qty > 0")
			assert.NotContains(t, tasks, "price")

			mixed := generateScript("shop", "Mixed Case")
			assert.True(t, strings.HasPrefix(mixed, `CREATE UNLOGGED TABLE "shop"."Mixed Case"`), mixed)

			_, err := generator.Generate(ctx, "shop", "user_emails")
			assert.True(t, errors.Is(err, ddl.ErrTableNotFound), "views are not tables: %v", err)

			_, err = generator.Generate(ctx, "shop", "missing")
			assert.True(t, errors.Is(err, ddl.ErrTableNotFound), "got %v", err)
		})
	}
}

func TestInspectorIntegration_ScriptReplays(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container := testutil.SetupPostgresContainer(ctx, t)
	defer container.Terminate(ctx, t)

	container.Exec(ctx, t, "CREATE ROLE alice")

	for _, source := range []ConstraintSource{ConstraintSourceCatalog, ConstraintSourceInformationSchema} {
		t.Run(string(source), func(t *testing.T) {
			setupShop(ctx, t, container)

			generator := ddl.NewGenerator(NewInspector(container.Conn, WithConstraintSource(source)))

			var scripts []string
			for _, table := range replayTables {
				statements, err := generator.Generate(ctx, "shop", table)
				require.NoError(t, err)
				scripts = append(scripts, ddl.Script(statements))
			}

			// Replay into a fresh schema and reconstruct again
			container.ResetSchema(ctx, t, "shop")
			for _, script := range scripts {
				container.Exec(ctx, t, script)
			}

			for i, table := range replayTables {
				statements, err := generator.Generate(ctx, "shop", table)
				require.NoError(t, err)
				assert.Equal(t, scripts[i], ddl.Script(statements), "table %s does not round-trip", table)
			}
		})
	}
}
