package database

import (
	"errors"
	"fmt"

	"github.com/lambdaquery/lq/constants"
	"github.com/lambdaquery/lq/dbhelpers"
)

// Database error types.
var (
	ErrUnsupportedDBType  = errors.New("unsupported database type")
	errPingFailed         = errors.New("database ping failed")
	errVersionQueryFailed = errors.New("database version query failed")
)

// DatabaseError represents a database-specific error with additional context.
type DatabaseError struct {
	Type    constants.Dialect
	Op      string
	Err     error
	Context map[string]any
}

func (e *DatabaseError) Error() string {
	if len(e.Context) > 0 {
		return fmt.Sprintf("database error [%s] during %s: %v (context: %+v)", e.Type, e.Op, e.Err, e.Context)
	}

	return fmt.Sprintf("database error [%s] during %s: %v", e.Type, e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// newDatabaseError creates a new DatabaseError.
func newDatabaseError(dbType constants.Dialect, operation string, err error, context map[string]any) *DatabaseError {
	return &DatabaseError{
		Type:    dbType,
		Op:      operation,
		Err:     err,
		Context: context,
	}
}

// Helper functions for common error scenarios.
func wrapPingError(dbType constants.Dialect, err error) error {
	return newDatabaseError(dbType, "ping", fmt.Errorf("%w: %w", errPingFailed, err), nil)
}

func wrapVersionQueryError(dbType constants.Dialect, err error) error {
	return newDatabaseError(dbType, "version_query", fmt.Errorf("%w: %w", errVersionQueryFailed, err), nil)
}

func newUnsupportedDBTypeError(dbType constants.Dialect) error {
	return newDatabaseError(dbType, "validation", ErrUnsupportedDBType, map[string]any{
		"supported_types": []constants.Dialect{constants.SQLite, constants.Postgres, constants.MySQL},
	})
}

// IsDuplicateKeyError reports whether err (or anything it wraps, including
// a DatabaseError from this package) is a unique/primary key conflict
// raised by Postgres, MySQL, or SQLite.
func IsDuplicateKeyError(err error) bool {
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		err = dbErr.Err
	}

	return dbhelpers.IsDuplicateKeyError(err)
}
