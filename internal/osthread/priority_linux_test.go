//go:build linux

package osthread

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSetCurrentThreadToIdlePriority(t *testing.T) {
	type result struct {
		attr *unix.SchedAttr
		err  error
	}
	done := make(chan result, 1)

	go func() {
		// keep the thread locked until exit so the lowered thread is discarded
		runtime.LockOSThread()

		var r result
		if r.err = SetCurrentThreadToIdlePriority(); r.err != nil {
			done <- r
			return
		}
		r.attr, r.err = unix.SchedGetAttr(unix.Gettid(), 0)
		done <- r
	}()

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, uint32(unix.SCHED_IDLE), r.attr.Policy)
	assert.Equal(t, int32(idleNice), r.attr.Nice)
}

func TestCurrentThreadPolicy(t *testing.T) {
	type result struct {
		policy uint32
		err    error
	}
	done := make(chan result, 1)

	go func() {
		runtime.LockOSThread()

		var r result
		if r.err = SetCurrentThreadToIdlePriority(); r.err == nil {
			r.policy, r.err = CurrentThreadPolicy()
		}
		done <- r
	}()

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, uint32(unix.SCHED_IDLE), r.policy)
}
