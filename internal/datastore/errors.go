package datastore

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNotFound is a shared interface for not found errors.
type ErrNotFound interface {
	IsNotFoundError() bool
}

// TableNotFoundError occurs when a named table does not exist in the catalog.
type TableNotFoundError struct {
	error
	tableName string
}

var _ ErrNotFound = TableNotFoundError{}

// NewTableNotFoundErr constructs a new table not found error.
func NewTableNotFoundErr(tableName string) error {
	return TableNotFoundError{
		error:     fmt.Errorf("table `%s` not found", tableName),
		tableName: tableName,
	}
}

func (err TableNotFoundError) IsNotFoundError() bool {
	return true
}

// NotFoundTableName is the name of the table that was not found.
func (err TableNotFoundError) NotFoundTableName() string {
	return err.tableName
}

// MarshalZerologObject implements zerolog object marshalling.
func (err TableNotFoundError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("table", err.tableName)
}

// TableEmptyError occurs when a row was requested from a table that holds no
// rows.
type TableEmptyError struct {
	error
	tableName string
}

// NewTableEmptyErr constructs a new empty table error.
func NewTableEmptyErr(tableName string) error {
	return TableEmptyError{
		error:     fmt.Errorf("table `%s` holds no rows", tableName),
		tableName: tableName,
	}
}

// EmptyTableName is the name of the table that held no rows.
func (err TableEmptyError) EmptyTableName() string {
	return err.tableName
}

// InvalidChannelNameError occurs when a channel name cannot be mapped to a
// safe table identifier.
type InvalidChannelNameError struct {
	error
	channel string
}

// NewInvalidChannelNameErr constructs a new invalid channel name error.
func NewInvalidChannelNameErr(channel string) error {
	return InvalidChannelNameError{
		error:   fmt.Errorf("channel name `%s` cannot be used as a table identifier", channel),
		channel: channel,
	}
}

// InvalidChannelName is the channel name that was rejected.
func (err InvalidChannelNameError) InvalidChannelName() string {
	return err.channel
}
