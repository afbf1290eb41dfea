//go:build !linux && !windows

// Package osthread adjusts scheduling properties of the calling OS thread
package osthread

import (
	"errors"
)

// SetCurrentThreadToIdlePriority is not supported on this platform
func SetCurrentThreadToIdlePriority() error {
	return errors.ErrUnsupported
}
