package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var queryTables = psql.Select(colTablename).From(tablePGTables)

func listTablesQuery(schema, prefix string) (string, []any, error) {
	return queryTables.
		Where(sq.Eq{colSchemaname: schema}).
		Where(sq.Like{colTablename: escapeLikePattern(prefix) + "%"}).
		OrderBy(colTablename).
		ToSql()
}

// ListTables returns the names of the tables in the given schema whose names
// begin with prefix, read directly from the system catalog.
func (pgd *pgDatastore) ListTables(ctx context.Context, schema, prefix string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "ListTables", trace.WithAttributes(
		attribute.String("schema", schema),
		attribute.String("prefix", prefix),
	))
	defer span.End()

	listSQL, listArgs, err := listTablesQuery(schema, prefix)
	if err != nil {
		return nil, fmt.Errorf("unable to generate catalog query sql: %w", err)
	}

	rows, err := pgd.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("unable to query catalog: %w", err)
	}
	defer rows.Close()

	var tableNames []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("unable to scan table name: %w", err)
		}
		tableNames = append(tableNames, tableName)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("unable to read catalog rows: %w", rows.Err())
	}

	return tableNames, nil
}
