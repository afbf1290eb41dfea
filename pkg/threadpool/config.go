package threadpool

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/jzx17/gopool/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
)

// ThreadPriority is the scheduling class requested for worker threads
type ThreadPriority int

const (
	// IdlePriority runs workers at the lowest OS scheduling priority
	IdlePriority ThreadPriority = -1
	// NormalPriority leaves worker threads at the default priority
	NormalPriority ThreadPriority = 0
)

// String returns the string representation of ThreadPriority
func (p ThreadPriority) String() string {
	switch p {
	case IdlePriority:
		return "idle"
	case NormalPriority:
		return "normal"
	default:
		return "unknown"
	}
}

// Config contains configuration for the thread pool
type Config struct {
	// ThreadCount is the initial number of workers
	ThreadCount int

	// Priority is the scheduling priority of worker threads
	Priority ThreadPriority

	// PollInterval bounds how long an idle worker waits on the queue before
	// re-checking whether it has been told to die
	PollInterval time.Duration

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// Logger receives lifecycle logs (optional, defaults to slog.Default())
	Logger *slog.Logger

	// Name labels the pool in logs and metrics
	Name string

	// MetricsRegisterer enables Prometheus metrics when set
	MetricsRegisterer prometheus.Registerer
}

// DefaultConfig returns default configuration: one idle-priority worker per
// logical CPU
func DefaultConfig() *Config {
	return &Config{
		ThreadCount:  runtime.NumCPU(),
		Priority:     IdlePriority,
		PollInterval: time.Second,
		Clock:        types.NewRealClock(),
		Name:         "default",
	}
}

// validate checks the configuration and fills in optional fields
func (c *Config) validate() error {
	if c.ThreadCount < 0 {
		return fmt.Errorf("%w: thread count must not be negative, got %d",
			types.ErrInvalidThreadCount, c.ThreadCount)
	}
	if c.Priority != IdlePriority && c.Priority != NormalPriority {
		return fmt.Errorf("unknown thread priority %d", c.Priority)
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.Clock == nil {
		c.Clock = types.NewRealClock()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Name == "" {
		c.Name = "default"
	}
	return nil
}
