// Package datastore defines the storage contract for collected channel
// statistics and for catalog inspection of the tables that hold them.
package datastore

import (
	"context"
)

// HistoryRecord is a single viewership sample for a channel, keyed by the
// period label it was collected for.
type HistoryRecord struct {
	Date           string
	AverageViewers int
	StreamDays     int
}

// RowSet is a schemaless dump of one table: the column names reported by the
// database and every row, scanned into generic values.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// Datastore is the interface for persisting and inspecting channel stats.
type Datastore interface {
	Lister
	Dumper

	// EnsureChannelTable creates the backing table for the given channel if it
	// does not already exist, returning the table's name.
	EnsureChannelTable(ctx context.Context, channel string) (string, error)

	// AppendHistory inserts the given records into the channel's table,
	// silently skipping records whose period is already present. Returns the
	// number of rows actually written.
	AppendHistory(ctx context.Context, channel string, records []HistoryRecord) (int64, error)

	// SampleRow reads one arbitrary record back from the named table. Returns
	// a TableEmptyError if the table holds no rows.
	SampleRow(ctx context.Context, tableName string) (*HistoryRecord, error)

	// HasRow reports whether a record exactly matching the given one is stored
	// in the named table.
	HasRow(ctx context.Context, tableName string, record HistoryRecord) (bool, error)

	// ReadyState returns whether the datastore is ready to serve queries.
	ReadyState(ctx context.Context) (ReadyState, error)

	// Close closes the datastore and releases its connections.
	Close() error
}

// Lister enumerates tables from the database catalog.
type Lister interface {
	// ListTables returns the names of the tables in the given schema whose
	// names begin with prefix. No ordering is guaranteed by the contract.
	ListTables(ctx context.Context, schema, prefix string) ([]string, error)
}

// Dumper reads back the full contents of a single table.
type Dumper interface {
	// DumpTable returns every row and column of the named table, treating it
	// as an opaque row set. The table is not checked for existence first: a
	// missing relation surfaces as a TableNotFoundError.
	DumpTable(ctx context.Context, tableName string) (*RowSet, error)
}

// ReadyState represents the ready state of the datastore.
type ReadyState struct {
	Message string
	IsReady bool
}
