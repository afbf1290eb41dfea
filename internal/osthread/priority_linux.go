//go:build linux

// Package osthread adjusts scheduling properties of the calling OS thread
package osthread

import (
	"golang.org/x/sys/unix"
)

// idleNice is the weakest nice value on Linux
const idleNice = 19

// SetCurrentThreadToIdlePriority moves the calling OS thread to the
// SCHED_IDLE scheduling class. Where sched_setattr is unavailable the thread
// gets the weakest nice value instead. The caller must hold
// runtime.LockOSThread, otherwise the goroutine may migrate away from the
// adjusted thread.
func SetCurrentThreadToIdlePriority() error {
	tid := unix.Gettid()

	attr := &unix.SchedAttr{
		Size:   unix.SizeofSchedAttr,
		Policy: unix.SCHED_IDLE,
		Nice:   idleNice,
	}
	if err := unix.SchedSetAttr(tid, attr, 0); err == nil {
		return nil
	}

	// on Linux setpriority with a thread id affects only that thread
	return unix.Setpriority(unix.PRIO_PROCESS, tid, idleNice)
}

// CurrentThreadPolicy returns the scheduling policy of the calling OS thread,
// one of the unix.SCHED_* constants
func CurrentThreadPolicy() (uint32, error) {
	attr, err := unix.SchedGetAttr(unix.Gettid(), 0)
	if err != nil {
		return 0, err
	}
	return attr.Policy, nil
}
