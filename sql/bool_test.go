package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBool_Value(t *testing.T) {
	trueValue, err := Bool(true).Value()
	require.NoError(t, err)
	assert.Equal(t, int16(1), trueValue)

	falseValue, err := Bool(false).Value()
	require.NoError(t, err)
	assert.Equal(t, int16(0), falseValue)
}
