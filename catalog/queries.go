package catalog

// relationJoin resolves a (schema, table) pair to its pg_class row as "c"
const relationJoin = `
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1
  AND c.relname = $2
  AND c.relkind IN ('r', 'p')`

const serverVersionQuery = `SHOW server_version_num`

const tableFactsQuery = `
SELECT c.relkind::text, c.relpersistence::text` + relationJoin

// columnsQueryTemplate takes the identity generation expression, which only
// exists on servers with identity columns. varchar and numeric keep their
// bare name and are rebuilt from length/precision/scale; every other type
// is rendered by format_type so its modifiers (char(3), timestamp(3), bit(8))
// survive.
const columnsQueryTemplate = `
SELECT
    col.column_name,
    col.ordinal_position,
    CASE
        WHEN col.data_type IN ('character varying', 'numeric')
        THEN col.data_type
        ELSE pg_catalog.format_type(a.atttypid, a.atttypmod)
    END AS data_type,
    col.is_nullable,
    col.character_maximum_length,
    col.numeric_precision,
    col.numeric_scale,
    col.column_default,
    %s AS identity_generation
FROM information_schema.columns col
JOIN pg_catalog.pg_namespace n ON n.nspname = col.table_schema
JOIN pg_catalog.pg_class c ON c.relnamespace = n.oid AND c.relname = col.table_name
JOIN pg_catalog.pg_attribute a ON a.attrelid = c.oid AND a.attname = col.column_name
WHERE col.table_schema = $1
  AND col.table_name = $2
ORDER BY col.ordinal_position`

const identityGenerationExpr = `CASE WHEN col.is_identity = 'YES' THEN col.identity_generation END`

const noIdentityGenerationExpr = `NULL::text`

// constraintDefinitionsQuery reads pre-rendered constraint definitions.
// Constraints inherited from a parent are recreated by the parent's DDL.
const constraintDefinitionsQuery = `
SELECT
    con.conname,
    con.contype::text,
    pg_catalog.pg_get_constraintdef(con.oid, true)
FROM pg_catalog.pg_constraint con
JOIN pg_catalog.pg_class t ON t.oid = con.conrelid
JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
WHERE n.nspname = $1
  AND t.relname = $2
  AND con.contype IN ('p', 'u', 'f', 'c')
  AND con.conislocal
ORDER BY con.conname`

// constraintColumnsQuery reads constraints one key column per row.
// Constraint names are only unique per table, so foreign key targets, rules
// and check clauses come from the table's own pg_constraint row rather than
// the schema-wide referential_constraints and check_constraints views.
// Constraints inherited from a parent are recreated by the parent's DDL.
const constraintColumnsQuery = `
SELECT
    tc.constraint_name,
    tc.constraint_type,
    kcu.column_name,
    kcu.ordinal_position,
    rn.nspname,
    rt.relname,
    ra.attname,
    kcu.position_in_unique_constraint,
    CASE con.confupdtype
        WHEN 'a' THEN 'NO ACTION'
        WHEN 'r' THEN 'RESTRICT'
        WHEN 'c' THEN 'CASCADE'
        WHEN 'n' THEN 'SET NULL'
        WHEN 'd' THEN 'SET DEFAULT'
    END,
    CASE con.confdeltype
        WHEN 'a' THEN 'NO ACTION'
        WHEN 'r' THEN 'RESTRICT'
        WHEN 'c' THEN 'CASCADE'
        WHEN 'n' THEN 'SET NULL'
        WHEN 'd' THEN 'SET DEFAULT'
    END,
    CASE WHEN con.contype = 'c' THEN pg_catalog.pg_get_expr(con.conbin, con.conrelid) END,
    tc.is_deferrable,
    tc.initially_deferred
FROM information_schema.table_constraints tc
JOIN pg_catalog.pg_namespace n ON n.nspname = tc.table_schema
JOIN pg_catalog.pg_class c ON c.relnamespace = n.oid AND c.relname = tc.table_name
JOIN pg_catalog.pg_constraint con ON con.conrelid = c.oid AND con.conname = tc.constraint_name
LEFT JOIN information_schema.key_column_usage kcu
    ON kcu.constraint_schema = tc.constraint_schema
    AND kcu.constraint_name = tc.constraint_name
    AND kcu.table_schema = tc.table_schema
    AND kcu.table_name = tc.table_name
LEFT JOIN pg_catalog.pg_class rt ON rt.oid = con.confrelid
LEFT JOIN pg_catalog.pg_namespace rn ON rn.oid = rt.relnamespace
LEFT JOIN pg_catalog.pg_attribute ra
    ON ra.attrelid = con.confrelid
    AND ra.attnum = con.confkey[kcu.position_in_unique_constraint]
WHERE tc.table_schema = $1
  AND tc.table_name = $2
  AND tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE', 'FOREIGN KEY', 'CHECK')
  AND con.contype IN ('p', 'u', 'f', 'c')
  AND con.conislocal
ORDER BY tc.constraint_name, kcu.ordinal_position`

// inheritedParentsQuery lists INHERITS parents; partition parents are excluded
// because partitions are not declared with INHERITS
const inheritedParentsQuery = `
SELECT pn.nspname, pc.relname
FROM pg_catalog.pg_inherits i
JOIN pg_catalog.pg_class c ON c.oid = i.inhrelid
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
JOIN pg_catalog.pg_class pc ON pc.oid = i.inhparent
JOIN pg_catalog.pg_namespace pn ON pn.oid = pc.relnamespace
WHERE n.nspname = $1
  AND c.relname = $2
  AND pc.relkind <> 'p'
ORDER BY i.inhseqno`

const partitionExpressionQuery = `
SELECT pg_catalog.pg_get_partkeydef(c.oid)` + relationJoin

const storageOptionsQuery = `
SELECT c.reloptions` + relationJoin

const tablespaceQuery = `
SELECT ts.spcname
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_catalog.pg_tablespace ts ON ts.oid = c.reltablespace
WHERE n.nspname = $1
  AND c.relname = $2
  AND c.relkind IN ('r', 'p')`

const ownerQuery = `
SELECT pg_catalog.pg_get_userbyid(c.relowner)` + relationJoin
