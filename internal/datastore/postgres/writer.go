package postgres

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/charthound/charthound/internal/datastore"
	log "github.com/charthound/charthound/internal/logging"
)

// EnsureChannelTable creates the backing table for the given channel if it
// does not yet exist and returns the table's name.
func (pgd *pgDatastore) EnsureChannelTable(ctx context.Context, channel string) (string, error) {
	ctx, span := tracer.Start(ctx, "EnsureChannelTable", trace.WithAttributes(
		attribute.String("channel", channel),
	))
	defer span.End()

	tableName, err := TableForChannel(channel)
	if err != nil {
		return "", err
	}

	if _, err := pgd.pool.Exec(ctx, fmt.Sprintf(schemaTemplate, quoteIdentifier(tableName))); err != nil {
		return "", fmt.Errorf("unable to ensure channel table: %w", err)
	}

	return tableName, nil
}

// AppendHistory inserts the given records into the channel's table. Records
// whose period label is already stored are skipped, making re-collection
// idempotent. Returns the number of rows actually written.
func (pgd *pgDatastore) AppendHistory(ctx context.Context, channel string, records []datastore.HistoryRecord) (int64, error) {
	ctx, span := tracer.Start(ctx, "AppendHistory", trace.WithAttributes(
		attribute.String("channel", channel),
		attribute.Int("records", len(records)),
	))
	defer span.End()

	if len(records) == 0 {
		return 0, nil
	}

	tableName, err := TableForChannel(channel)
	if err != nil {
		return 0, err
	}

	insertSQL, insertArgs, err := appendHistoryQuery(tableName, records)
	if err != nil {
		return 0, fmt.Errorf("unable to generate insert sql: %w", err)
	}

	tag, err := pgd.pool.Exec(ctx, insertSQL, insertArgs...)
	if err != nil {
		return 0, fmt.Errorf("unable to append history: %w", undefinedTableError(tableName, err))
	}

	written := tag.RowsAffected()
	if skipped := int64(len(records)) - written; skipped > 0 {
		log.Ctx(ctx).Debug().Str("table", tableName).Int64("skipped", skipped).Msg("skipped records already stored")
	}

	return written, nil
}

func appendHistoryQuery(tableName string, records []datastore.HistoryRecord) (string, []any, error) {
	query := psql.Insert(quoteIdentifier(tableName)).
		Columns(colDate, colAvgViewers, colStreamDays).
		Suffix("ON CONFLICT (date) DO NOTHING")
	for _, record := range records {
		query = query.Values(record.Date, record.AverageViewers, record.StreamDays)
	}

	return query.ToSql()
}
