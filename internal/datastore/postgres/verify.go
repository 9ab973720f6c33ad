package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/charthound/charthound/internal/datastore"
)

// SampleRow reads one random record back from the named table.
func (pgd *pgDatastore) SampleRow(ctx context.Context, tableName string) (*datastore.HistoryRecord, error) {
	ctx, span := tracer.Start(ctx, "SampleRow", trace.WithAttributes(
		attribute.String("table", tableName),
	))
	defer span.End()

	query := psql.Select(colDate, colAvgViewers, colStreamDays).
		From(quoteIdentifier(tableName)).
		OrderBy("RANDOM()").
		Limit(1)

	sampleSQL, sampleArgs, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unable to generate sample sql: %w", err)
	}

	var record datastore.HistoryRecord
	err = pgd.pool.QueryRow(ctx, sampleSQL, sampleArgs...).
		Scan(&record.Date, &record.AverageViewers, &record.StreamDays)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, datastore.NewTableEmptyErr(tableName)
	case err != nil:
		return nil, fmt.Errorf("unable to sample row: %w", undefinedTableError(tableName, err))
	}

	return &record, nil
}

// HasRow reports whether a record exactly matching the given one is stored in
// the named table.
func (pgd *pgDatastore) HasRow(ctx context.Context, tableName string, record datastore.HistoryRecord) (bool, error) {
	ctx, span := tracer.Start(ctx, "HasRow", trace.WithAttributes(
		attribute.String("table", tableName),
	))
	defer span.End()

	query := psql.Select("1").
		From(quoteIdentifier(tableName)).
		Where(sq.Eq{
			colDate:       record.Date,
			colAvgViewers: record.AverageViewers,
			colStreamDays: record.StreamDays,
		}).
		Limit(1)

	checkSQL, checkArgs, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("unable to generate check sql: %w", err)
	}

	var one int
	err = pgd.pool.QueryRow(ctx, checkSQL, checkArgs...).Scan(&one)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("unable to check row: %w", undefinedTableError(tableName, err))
	}

	return true, nil
}
