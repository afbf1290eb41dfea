// Package testutils provides testing utilities shared by the package tests
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Context returns a context that is cancelled after timeout or when the test ends
func Context(t testing.TB, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// Measure runs fn and returns how long it took
func Measure(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// AssertFinishesWithin fails the test if fn does not return within limit
func AssertFinishesWithin(t testing.TB, limit time.Duration, fn func(), msgAndArgs ...interface{}) bool {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
		return true
	case <-time.After(limit):
		return assert.Fail(t, "function did not finish in time", msgAndArgs...)
	}
}

// AssertBlocksFor fails the test if ch becomes ready before d has elapsed
func AssertBlocksFor(t testing.TB, ch <-chan struct{}, d time.Duration, msgAndArgs ...interface{}) bool {
	t.Helper()

	select {
	case <-ch:
		return assert.Fail(t, "channel became ready too early", msgAndArgs...)
	case <-time.After(d):
		return true
	}
}
