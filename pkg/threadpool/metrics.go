package threadpool

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "gopool"
	metricsSubsystem = "threadpool"
)

// Metrics holds Prometheus metrics for thread pool monitoring
type Metrics struct {
	threads        prometheus.GaugeFunc
	queueDepth     prometheus.GaugeFunc
	submitted      prometheus.Counter
	completed      *prometheus.CounterVec
	abandoned      prometheus.Counter
	processingTime *prometheus.HistogramVec
}

// newMetrics creates the pool metrics and registers them with reg
func newMetrics(p *Pool, reg prometheus.Registerer) (*Metrics, error) {
	labels := prometheus.Labels{"pool": p.config.Name}

	m := &Metrics{
		threads: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "threads",
			Help:        "Current number of worker threads",
			ConstLabels: labels,
		}, func() float64 { return float64(p.ThreadCount()) }),
		queueDepth: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "queue_depth",
			Help:        "Batches waiting in the shared queue",
			ConstLabels: labels,
		}, func() float64 { return float64(p.QueueLength()) }),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "submitted_total",
			Help:        "Total work units submitted",
			ConstLabels: labels,
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "completed_total",
			Help:        "Total work units run by a worker",
			ConstLabels: labels,
		}, []string{"status"}),
		abandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "abandoned_total",
			Help:        "Total work units dropped because the pool closed first",
			ConstLabels: labels,
		}),
		processingTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "processing_duration_seconds",
			Help:        "Time spent running work units",
			Buckets:     []float64{0.0001, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			ConstLabels: labels,
		}, []string{"status"}),
	}

	collectors := []prometheus.Collector{
		m.threads, m.queueDepth, m.submitted, m.completed, m.abandoned, m.processingTime,
	}
	registered := make([]prometheus.Collector, 0, len(collectors))
	var errs []error
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
			continue
		}
		registered = append(registered, c)
	}
	if len(errs) > 0 {
		for _, c := range registered {
			reg.Unregister(c)
		}
		return nil, fmt.Errorf("registering metrics for pool %q: %w", p.config.Name, errors.Join(errs...))
	}

	return m, nil
}

func (m *Metrics) recordSubmitted(n int) {
	if m == nil {
		return
	}
	m.submitted.Add(float64(n))
}

func (m *Metrics) recordCompleted(d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.processingTime.WithLabelValues(status).Observe(d.Seconds())
	m.completed.WithLabelValues(status).Inc()
}

func (m *Metrics) recordAbandoned(n int) {
	if m == nil {
		return
	}
	m.abandoned.Add(float64(n))
}
