package threadpool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of Config. Unset fields keep their defaults.
type fileConfig struct {
	ThreadCount  *int   `yaml:"thread_count"`
	Priority     string `yaml:"priority"`
	PollInterval string `yaml:"poll_interval"`
	Name         string `yaml:"name"`
}

// ParseThreadPriority parses "idle" or "normal", ignoring case
func ParseThreadPriority(s string) (ThreadPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "idle":
		return IdlePriority, nil
	case "normal":
		return NormalPriority, nil
	default:
		return 0, fmt.Errorf("unknown thread priority %q", s)
	}
}

// LoadConfig reads a YAML pool configuration from r on top of DefaultConfig:
//
//	thread_count: 8
//	priority: normal
//	poll_interval: 250ms
//	name: ingest
func LoadConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()

	var fc fileConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding pool config: %w", err)
	}

	if fc.ThreadCount != nil {
		config.ThreadCount = *fc.ThreadCount
	}
	if fc.Priority != "" {
		priority, err := ParseThreadPriority(fc.Priority)
		if err != nil {
			return nil, err
		}
		config.Priority = priority
	}
	if fc.PollInterval != "" {
		interval, err := time.ParseDuration(fc.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll interval: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("poll interval must be positive, got %s", interval)
		}
		config.PollInterval = interval
	}
	if fc.Name != "" {
		config.Name = fc.Name
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseConfig is LoadConfig over a byte slice
func ParseConfig(data []byte) (*Config, error) {
	return LoadConfig(bytes.NewReader(data))
}
