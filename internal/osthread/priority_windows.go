//go:build windows

// Package osthread adjusts scheduling properties of the calling OS thread
package osthread

import (
	"golang.org/x/sys/windows"
)

// threadPriorityIdle is THREAD_PRIORITY_IDLE
var threadPriorityIdle int32 = -15

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	setThreadPriority = kernel32.NewProc("SetThreadPriority")
)

// SetCurrentThreadToIdlePriority lowers the scheduling priority of the
// calling OS thread. The caller must hold runtime.LockOSThread.
func SetCurrentThreadToIdlePriority() error {
	ok, _, err := setThreadPriority.Call(uintptr(windows.CurrentThread()), uintptr(threadPriorityIdle))
	if ok == 0 {
		return err
	}
	return nil
}
