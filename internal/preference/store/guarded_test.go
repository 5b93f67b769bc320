package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/pkg/platform/circuit"
	"atelier/pkg/platform/sentinel"
)

// flaky is a Memory whose calls fail with err while down is set.
type flaky struct {
	*Memory
	down bool
	err  error
}

func (f *flaky) Get(ctx context.Context, key string) (string, error) {
	if f.down {
		return "", f.err
	}
	return f.Memory.Get(ctx, key)
}

func (f *flaky) Set(ctx context.Context, key, value string) error {
	if f.down {
		return f.err
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flaky) Remove(ctx context.Context, key string) error {
	if f.down {
		return f.err
	}
	return f.Memory.Remove(ctx, key)
}

func TestGuarded_Contract(t *testing.T) {
	runContract(t, NewGuarded(NewMemory(), NewMemory(), circuit.New("test"), nil))
}

func TestGuarded_FallsBackWhileOpen(t *testing.T) {
	ctx := context.Background()
	primary := &flaky{Memory: NewMemory(), err: fmt.Errorf("%w: dial tcp", sentinel.ErrUnavailable)}
	fallback := NewMemory()
	breaker := circuit.New("preferences", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	g := NewGuarded(primary, fallback, breaker, nil)

	primary.down = true
	_, err := g.Get(ctx, "theme")
	require.ErrorIs(t, err, sentinel.ErrUnavailable, "below threshold the failure surfaces")
	assert.False(t, breaker.IsOpen())

	require.NoError(t, g.Set(ctx, "theme", "dark"), "second failure opens the circuit")
	assert.True(t, breaker.IsOpen())
	v, err := g.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	primary.down = false
	_, err = g.Get(ctx, "theme")
	require.ErrorIs(t, err, sentinel.ErrNotFound, "a primary success closes the circuit and answers")
	assert.False(t, breaker.IsOpen())
}

func TestGuarded_OtherErrorsPassThrough(t *testing.T) {
	boom := errors.New("constraint violated")
	primary := &flaky{Memory: NewMemory(), down: true, err: boom}
	breaker := circuit.New("preferences", circuit.WithFailureThreshold(1))
	g := NewGuarded(primary, NewMemory(), breaker, nil)

	assert.ErrorIs(t, g.Set(context.Background(), "theme", "dark"), boom)
	assert.ErrorIs(t, g.Remove(context.Background(), "theme"), boom)
	assert.False(t, breaker.IsOpen())
}
