package postgres

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/charthound/charthound/internal/datastore"
)

// DumpTable returns every row and column of the named table. The table's
// schema is not known ahead of time: columns come from the result's field
// descriptions and values are scanned generically.
//
// No existence check is performed; a missing relation surfaces as a
// TableNotFoundError.
func (pgd *pgDatastore) DumpTable(ctx context.Context, tableName string) (*datastore.RowSet, error) {
	ctx, span := tracer.Start(ctx, "DumpTable", trace.WithAttributes(
		attribute.String("table", tableName),
	))
	defer span.End()

	rows, err := pgd.pool.Query(ctx, "SELECT * FROM "+quoteIdentifier(tableName))
	if err != nil {
		return nil, fmt.Errorf("unable to dump table: %w", undefinedTableError(tableName, err))
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, field.Name)
	}

	rowSet := &datastore.RowSet{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("unable to read row values: %w", err)
		}
		rowSet.Rows = append(rowSet.Rows, values)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("unable to dump table: %w", undefinedTableError(tableName, rows.Err()))
	}

	return rowSet, nil
}
