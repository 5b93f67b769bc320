//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/pkg/platform/sentinel"
	"atelier/pkg/testutil/containers"
)

func TestRedis_Contract(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	runContract(t, NewRedis(rc.Client, "visitor-1", time.Hour))
}

func TestRedis_VisitorsAreIsolated(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)

	require.NoError(t, NewRedis(rc.Client, "a", 0).Set(ctx, "theme", "dark"))
	_, err := NewRedis(rc.Client, "b", 0).Get(ctx, "theme")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	ttl, err := rc.Client.TTL(ctx, "pref:a:theme").Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "zero ttl keeps the key")
}

func TestRedis_UnavailableAfterClose(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	s := NewRedis(rc.Client, "visitor-1", time.Hour)
	require.NoError(t, rc.Client.Close())

	_, err := s.Get(context.Background(), "theme")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
