package jwtauth

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names recorded by the middleware.
const (
	MetricValidationsTotal   = "jwtauth_validations_total"
	MetricValidationDuration = "jwtauth_validation_duration_seconds"
)

// Metrics is a generic metrics interface for the middleware.
type Metrics interface {
	IncCounter(name string, tags map[string]string)
	ObserveHistogram(name string, value float64, tags map[string]string)
}

// NoopMetrics is a default metrics implementation that does nothing.
type NoopMetrics struct{}

func (m *NoopMetrics) IncCounter(name string, tags map[string]string)                      {}
func (m *NoopMetrics) ObserveHistogram(name string, value float64, tags map[string]string) {}

// PrometheusMetrics implements the Metrics interface using Prometheus.
// The middleware's own collectors are registered by NewPrometheusMetrics;
// any other name is registered on first use.
type PrometheusMetrics struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// outcomeLabels are the labels of the collectors the middleware records.
var outcomeLabels = []string{"outcome"}

// NewPrometheusMetrics returns a Metrics implementation backed by Prometheus.
// A nil registerer means prometheus.DefaultRegisterer. It fails when a
// different collector already holds one of the middleware's metric names.
func NewPrometheusMetrics(registerer prometheus.Registerer) (*PrometheusMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &PrometheusMetrics{
		registerer: registerer,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}

	if _, err := m.counter(MetricValidationsTotal, outcomeLabels); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", MetricValidationsTotal, err)
	}
	if _, err := m.histogram(MetricValidationDuration, outcomeLabels); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", MetricValidationDuration, err)
	}
	return m, nil
}

// IncCounter increments the named counter. Observations that cannot be
// registered or whose labels do not match the collector are dropped.
func (m *PrometheusMetrics) IncCounter(name string, tags map[string]string) {
	vec, err := m.counter(name, keys(tags))
	if err != nil {
		return
	}
	counter, err := vec.GetMetricWith(tags)
	if err != nil {
		return
	}
	counter.Inc()
}

// ObserveHistogram records value on the named histogram. Failures are
// dropped as in IncCounter.
func (m *PrometheusMetrics) ObserveHistogram(name string, value float64, tags map[string]string) {
	vec, err := m.histogram(name, keys(tags))
	if err != nil {
		return
	}
	observer, err := vec.GetMetricWith(tags)
	if err != nil {
		return
	}
	observer.Observe(value)
}

func (m *PrometheusMetrics) counter(name string, labels []string) (*prometheus.CounterVec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.counters[name]; ok {
		return vec, nil
	}
	vec, err := register(m.registerer, prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name + " counter"}, labels))
	if err != nil {
		return nil, err
	}
	m.counters[name] = vec
	return vec, nil
}

func (m *PrometheusMetrics) histogram(name string, labels []string) (*prometheus.HistogramVec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.histograms[name]; ok {
		return vec, nil
	}
	vec, err := register(m.registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: name + " histogram"}, labels))
	if err != nil {
		return nil, err
	}
	m.histograms[name] = vec
	return vec, nil
}

// register adds c to r, reusing the collector already registered under the
// same descriptor.
func register[C prometheus.Collector](r prometheus.Registerer, c C) (C, error) {
	err := r.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	var zero C
	return zero, err
}

func keys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
