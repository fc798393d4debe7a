package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestMemoryRoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	var got []row
	found, err := m.Get(ctx, "clients", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "clients", 0, []row{{ID: 1, Name: "ACME"}}))
	found, err = m.Get(ctx, "clients", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []row{{ID: 1, Name: "ACME"}}, got)

	require.NoError(t, m.Invalidate(ctx, "routes", "clients"))
	found, err = m.Get(ctx, "clients", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "routes", 0, []row{{ID: 7}}))
	now = now.Add(2 * time.Minute)

	var got []row
	found, err := m.Get(ctx, "routes", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryDoesNotAliasCallerSlices(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	in := []row{{ID: 1, Name: "A"}}
	require.NoError(t, m.Set(ctx, "drivers", 0, in))
	in[0].Name = "changed"

	var got []row
	_, err := m.Get(ctx, "drivers", &got)
	require.NoError(t, err)
	assert.Equal(t, "A", got[0].Name)
}

func TestMemorySetDiscardsSnapshotOlderThanInvalidation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	v, err := m.Version(ctx, "tariffs")
	require.NoError(t, err)
	require.NoError(t, m.Invalidate(ctx, "tariffs"))
	require.NoError(t, m.Set(ctx, "tariffs", v, []row{{ID: 1, Name: "old"}}))

	var got []row
	found, err := m.Get(ctx, "tariffs", &got)
	require.NoError(t, err)
	assert.False(t, found, "stale snapshot must not be cached")

	v, err = m.Version(ctx, "tariffs")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	require.NoError(t, m.Set(ctx, "tariffs", v, []row{{ID: 1, Name: "new"}}))
	found, err = m.Get(ctx, "tariffs", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new", got[0].Name)
}

func TestDefaultFallsBackToNoop(t *testing.T) {
	SetDefault(nil)
	_, ok := Default().(Noop)
	assert.True(t, ok)

	m := NewMemory(time.Second)
	SetDefault(m)
	t.Cleanup(func() { SetDefault(nil) })
	assert.Same(t, m, Default())
}
