package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/preference"
	"atelier/pkg/platform/sentinel"
)

// runContract exercises the behavior every preference.Store must share.
func runContract(t *testing.T, s preference.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "theme")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "absent key")

	require.NoError(t, s.Set(ctx, "theme", "dark"))
	v, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Set(ctx, "theme", "light"))
	v, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v, "last write wins")

	require.NoError(t, s.Remove(ctx, "theme"))
	_, err = s.Get(ctx, "theme")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "removed key")

	assert.NoError(t, s.Remove(ctx, "theme"), "removing an absent key is not an error")
}
