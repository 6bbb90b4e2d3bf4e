package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lambdaquery/lq/constants"
)

func TestIsDuplicateKeyError_UnwrapsDatabaseError(t *testing.T) {
	wrapped := newDatabaseError(constants.Postgres, "insert", errors.New("duplicate key value violates unique constraint"), nil)

	assert.True(t, IsDuplicateKeyError(wrapped))
}

func TestIsDuplicateKeyError_PlainError(t *testing.T) {
	assert.False(t, IsDuplicateKeyError(errors.New("connection refused")))
	assert.True(t, IsDuplicateKeyError(errors.New("Duplicate entry 'x' for key 'PRIMARY'")))
}
