// Package throttle limits how often an action is taken, such as logging
// progress from a hot loop
package throttle

import (
	"sync"
	"time"

	"github.com/jzx17/gopool/pkg/types"
	"golang.org/x/time/rate"
)

// DefaultInterval is the interval used by New when none is given
const DefaultInterval = time.Second

// Throttle allows one action per interval. The first action is always
// allowed. It is safe for concurrent use.
type Throttle struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	interval time.Duration
	clock    types.Clock
}

// New creates a throttle on the real clock. interval <= 0 selects
// DefaultInterval.
func New(interval time.Duration) *Throttle {
	return NewWithClock(interval, types.NewRealClock())
}

// NewWithClock creates a throttle that reads the time from clock
func NewWithClock(interval time.Duration, clock types.Clock) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = types.NewRealClock()
	}

	t := &Throttle{interval: interval, clock: clock}
	t.limiter = t.newLimiter()
	return t
}

func (t *Throttle) newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(t.interval), 1)
}

// Interval returns the minimum time between two actions
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// ShouldAct reports whether at least one interval has passed since the last
// recorded action
func (t *Throttle) ShouldAct() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.limiter.TokensAt(t.clock.Now()) >= 1
}

// RecordAction starts a new interval now, whether or not acting was allowed
func (t *Throttle) RecordAction() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.limiter = t.newLimiter()
	t.limiter.AllowN(t.clock.Now(), 1)
}

// ActIfAppropriate records an action and returns true if ShouldAct would
// have; otherwise it returns false and records nothing
func (t *Throttle) ActIfAppropriate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.limiter.AllowN(t.clock.Now(), 1)
}

// Reset forgets the last action so the next one is allowed immediately
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.limiter = t.newLimiter()
}
