package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// CopyFromSchema bulk-inserts rows into a schema-qualified table using the
// PostgreSQL COPY protocol. This is the fastest way to load the cleaned
// tables.
func CopyFromSchema(ctx context.Context, pool Pool, schema, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	copySource := pgx.CopyFromRows(rows)
	n, err := pool.CopyFrom(ctx, pgx.Identifier{schema, table}, columns, copySource)
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s.%s", schema, table)
	}

	return n, nil
}

// TruncateSchema empties the given tables in one statement, resetting any
// identity sequences and cascading to dependents. The loader truncates
// everything before each load so reruns stay idempotent.
func TruncateSchema(ctx context.Context, pool Pool, schema string, tables []string) error {
	if len(tables) == 0 {
		return nil
	}

	qualified := make([]string, len(tables))
	for i, t := range tables {
		qualified[i] = pgx.Identifier{schema, t}.Sanitize()
	}
	sql := fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(qualified, ", "))
	if _, err := pool.Exec(ctx, sql); err != nil {
		return eris.Wrapf(err, "db: truncate %s", schema)
	}
	return nil
}
