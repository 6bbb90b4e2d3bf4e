package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrCompileMissThenHit(t *testing.T) {
	c := NewCache()

	calls := 0
	build := func() (string, map[string]any, error) {
		calls++

		return "SELECT 1", map[string]any{"__p1": 1}, nil
	}

	sql, params, err := c.GetOrCompile("site-a", build)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", sql)
	assert.Equal(t, 1, params["__p1"])
	assert.Equal(t, 1, calls)

	sql, params, err = c.GetOrCompile("site-a", build)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", sql)
	assert.Equal(t, 1, calls, "second call for the same key must not rebuild")
	assert.Equal(t, 1, c.Len())
}

func TestCache_BuildErrorIsNotCached(t *testing.T) {
	c := NewCache()

	calls := 0
	build := func() (string, map[string]any, error) {
		calls++

		return "", nil, &SemanticViolation{Rule: "boom"}
	}

	_, _, err := c.GetOrCompile("site-a", build)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	_, _, err = c.GetOrCompile("site-a", build)
	require.Error(t, err)
	assert.Equal(t, 2, calls, "a failed build must not be memoized")
}

func TestCache_InvalidateForcesRebuild(t *testing.T) {
	c := NewCache()

	calls := 0
	build := func() (string, map[string]any, error) {
		calls++

		return "SELECT 1", nil, nil
	}

	_, _, _ = c.GetOrCompile("site-a", build)
	c.Invalidate("site-a")
	assert.Equal(t, 0, c.Len())

	_, _, _ = c.GetOrCompile("site-a", build)
	assert.Equal(t, 2, calls)
}

func TestCache_ClearEmptiesEverything(t *testing.T) {
	c := NewCache()

	build := func() (string, map[string]any, error) { return "SELECT 1", nil, nil }

	_, _, _ = c.GetOrCompile("a", build)
	_, _, _ = c.GetOrCompile("b", build)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_DistinctKeysCompileIndependently(t *testing.T) {
	c := NewCache()

	sqlFor := func(s string) func() (string, map[string]any, error) {
		return func() (string, map[string]any, error) { return s, nil, nil }
	}

	sqlA, _, err := c.GetOrCompile("a", sqlFor("SELECT a"))
	require.NoError(t, err)

	sqlB, _, err := c.GetOrCompile("b", sqlFor("SELECT b"))
	require.NoError(t, err)

	assert.Equal(t, "SELECT a", sqlA)
	assert.Equal(t, "SELECT b", sqlB)
	assert.Equal(t, 2, c.Len())
}
