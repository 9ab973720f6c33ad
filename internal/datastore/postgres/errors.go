package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/charthound/charthound/internal/datastore"
)

const (
	pgUndefinedTable        = "42P01"
	pgInsufficientPrivilege = "42501"
)

// undefinedTableError rewrites the driver's "relation does not exist"
// condition into the datastore's not found error, leaving every other
// failure untouched.
func undefinedTableError(tableName string, err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == pgUndefinedTable {
		return datastore.NewTableNotFoundErr(tableName)
	}

	return err
}

func isInsufficientPrivilegeError(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == pgInsufficientPrivilege
}
