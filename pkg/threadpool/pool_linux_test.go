//go:build linux

package threadpool

import (
	"context"
	"testing"

	"github.com/jzx17/gopool/internal/osthread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestPool_IdlePriority(t *testing.T) {
	config := DefaultConfig()
	config.ThreadCount = 2

	pool, err := New(config)
	require.NoError(t, err)
	defer pool.Close()

	futures, err := LaunchIndexedInChunks(pool, func(ctx context.Context, i int) (uint32, error) {
		return osthread.CurrentThreadPolicy()
	}, 8, 1)
	require.NoError(t, err)

	for _, f := range futures {
		policy, err := f.Get()
		require.NoError(t, err)
		assert.Equal(t, uint32(unix.SCHED_IDLE), policy)
	}
}
