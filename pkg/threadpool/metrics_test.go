package threadpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsPool(t *testing.T, reg prometheus.Registerer, threads int) *Pool {
	t.Helper()

	pool, err := New(&Config{
		ThreadCount:       threads,
		Priority:          NormalPriority,
		PollInterval:      10 * time.Millisecond,
		Name:              "metrics-test",
		MetricsRegisterer: reg,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

func TestMetrics_CountWork(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool := newMetricsPool(t, reg, 3)

	errFail := errors.New("fail")
	futures, err := LaunchIndexedInChunks(pool, func(ctx context.Context, i int) (int, error) {
		if i%4 == 0 {
			return 0, errFail
		}
		return i, nil
	}, 12, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, WaitAll(futures), errFail)

	m := pool.metrics
	require.NotNil(t, m)

	assert.Equal(t, float64(12), testutil.ToFloat64(m.submitted))
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.completed.WithLabelValues("success")) == 9 &&
			testutil.ToFloat64(m.completed.WithLabelValues("failed")) == 3
	}, time.Second, time.Millisecond)
	assert.Equal(t, 2, testutil.CollectAndCount(m.processingTime))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.threads))
	require.NoError(t, pool.SetThreadCount(5))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.threads))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.queueDepth))
}

func TestMetrics_Abandoned(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool := newMetricsPool(t, reg, 0)

	for i := 0; i < 4; i++ {
		_, err := Submit(pool, func(ctx context.Context) (int, error) { return i, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, float64(4), testutil.ToFloat64(pool.metrics.queueDepth))

	require.NoError(t, pool.Close())
	assert.Equal(t, float64(4), testutil.ToFloat64(pool.metrics.abandoned))
	assert.Equal(t, float64(0), testutil.ToFloat64(pool.metrics.queueDepth))
}

func TestMetrics_Registration(t *testing.T) {
	reg := prometheus.NewRegistry()
	newMetricsPool(t, reg, 1)

	count, err := testutil.GatherAndCount(reg, "gopool_threadpool_threads")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// a second pool with the same name collides
	_, err = New(&Config{
		ThreadCount:       1,
		Priority:          NormalPriority,
		Name:              "metrics-test",
		MetricsRegisterer: reg,
	})
	assert.Error(t, err)

	// a differently named pool registers alongside
	other, err := New(&Config{
		ThreadCount:       1,
		Priority:          NormalPriority,
		Name:              "other",
		MetricsRegisterer: reg,
	})
	require.NoError(t, err)
	defer other.Close()

	count, err = testutil.GatherAndCount(reg, "gopool_threadpool_threads")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_DisabledByDefault(t *testing.T) {
	pool := newTestPool(t, 1)
	assert.Nil(t, pool.metrics)

	f, err := Submit(pool, func(ctx context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	_, err = f.Get()
	assert.NoError(t, err)
}
