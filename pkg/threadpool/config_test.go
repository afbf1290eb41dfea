package threadpool

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jzx17/gopool/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, runtime.NumCPU(), config.ThreadCount)
	assert.Equal(t, IdlePriority, config.Priority)
	assert.Equal(t, time.Second, config.PollInterval)
	assert.NotNil(t, config.Clock)
	assert.Equal(t, "default", config.Name)
	assert.Nil(t, config.MetricsRegisterer)
}

func TestThreadPriority(t *testing.T) {
	tests := []struct {
		input    string
		expected ThreadPriority
	}{
		{"idle", IdlePriority},
		{"IDLE", IdlePriority},
		{" normal ", NormalPriority},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParseThreadPriority(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}

	_, err := ParseThreadPriority("realtime")
	assert.Error(t, err)

	assert.Equal(t, "idle", IdlePriority.String())
	assert.Equal(t, "normal", NormalPriority.String())
	assert.Equal(t, "unknown", ThreadPriority(5).String())
}

func TestLoadConfig(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		config, err := ParseConfig([]byte(`
thread_count: 3
priority: normal
poll_interval: 250ms
name: ingest
`))
		require.NoError(t, err)

		assert.Equal(t, 3, config.ThreadCount)
		assert.Equal(t, NormalPriority, config.Priority)
		assert.Equal(t, 250*time.Millisecond, config.PollInterval)
		assert.Equal(t, "ingest", config.Name)
		assert.NotNil(t, config.Logger)
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, runtime.NumCPU(), config.ThreadCount)
		assert.Equal(t, IdlePriority, config.Priority)
	})

	t.Run("zero threads", func(t *testing.T) {
		config, err := ParseConfig([]byte("thread_count: 0\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, config.ThreadCount)
	})

	errorCases := map[string]string{
		"negative threads":  "thread_count: -2\n",
		"unknown priority":  "priority: realtime\n",
		"bad interval":      "poll_interval: soon\n",
		"negative interval": "poll_interval: -1s\n",
		"unknown field":     "threads: 4\n",
		"malformed":         "thread_count: [\n",
	}
	for name, doc := range errorCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}

	t.Run("negative threads wraps the sentinel", func(t *testing.T) {
		_, err := ParseConfig([]byte("thread_count: -2\n"))
		assert.ErrorIs(t, err, types.ErrInvalidThreadCount)
	})

	t.Run("loaded config starts a pool", func(t *testing.T) {
		config, err := ParseConfig([]byte("thread_count: 2\npriority: normal\npoll_interval: 10ms\n"))
		require.NoError(t, err)

		pool, err := New(config)
		require.NoError(t, err)
		defer pool.Close()
		assert.Equal(t, 2, pool.ThreadCount())
	})
}
