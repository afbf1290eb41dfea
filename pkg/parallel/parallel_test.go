package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	const n = 1000
	var visited [n]atomic.Int32

	err := For(context.Background(), n, func(ctx context.Context, i int) error {
		visited[i].Add(1)
		return nil
	})
	require.NoError(t, err)

	for i := range visited {
		assert.Equal(t, int32(1), visited[i].Load(), "iteration %d", i)
	}
}

func TestFor_RunsEveryIterationDespiteErrors(t *testing.T) {
	errOdd := errors.New("odd")
	var runs atomic.Int32

	err := For(context.Background(), 100, func(ctx context.Context, i int) error {
		runs.Add(1)
		if i%2 == 1 {
			return errOdd
		}
		return nil
	})

	assert.ErrorIs(t, err, errOdd)
	assert.Equal(t, int32(100), runs.Load())
}

func TestMaybeFor_Serial(t *testing.T) {
	errStop := errors.New("stop")
	var order []int

	err := MaybeFor(context.Background(), 10, func(ctx context.Context, i int) error {
		order = append(order, i)
		if i == 4 {
			return errStop
		}
		return nil
	}, false)

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestMaybeFor_Empty(t *testing.T) {
	for _, parallelize := range []bool{true, false} {
		err := MaybeFor(context.Background(), 0, func(ctx context.Context, i int) error {
			return errors.New("unexpected")
		}, parallelize)
		assert.NoError(t, err)
	}
}

func TestFor_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")

	err := For(ctx, 8, func(ctx context.Context, i int) error {
		if ctx.Value(key{}) != "value" {
			return errors.New("context not passed through")
		}
		return nil
	})
	assert.NoError(t, err)
}
