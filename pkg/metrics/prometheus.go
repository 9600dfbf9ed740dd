package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusExporter implements the Exporter interface for Prometheus metrics
type PrometheusExporter struct {
	config   *Config
	registry prometheus.Registerer

	// Counters
	hitsTotal              *prometheus.CounterVec
	missesTotal            *prometheus.CounterVec
	computesTotal          *prometheus.CounterVec
	evictionsTotal         *prometheus.CounterVec
	invalidationsTotal     *prometheus.CounterVec
	generatorsWrappedTotal *prometheus.CounterVec
	operationsTotal        *prometheus.CounterVec
	errorsTotal            *prometheus.CounterVec

	// Histograms
	computeDuration *prometheus.HistogramVec

	// Gauges
	propertyCount    *prometheus.GaugeVec
	inFlightComputes *prometheus.GaugeVec
	hitRate          *prometheus.GaugeVec

	// Custom metrics (for IncrementCounter, etc.)
	customCounters   map[string]*prometheus.CounterVec
	customHistograms map[string]*prometheus.HistogramVec
	customGauges     map[string]*prometheus.GaugeVec
	mu               sync.RWMutex
}

// PrometheusConfig holds Prometheus-specific configuration
type PrometheusConfig struct {
	// Registry is the Prometheus registry to use (optional, uses default if nil)
	Registry prometheus.Registerer

	// DefaultLabels are applied to all metrics
	DefaultLabels prometheus.Labels

	// Buckets for the compute duration histogram
	DurationBuckets []float64
}

// NewPrometheusExporter creates a new Prometheus metrics exporter
func NewPrometheusExporter(config *Config, promConfig *PrometheusConfig) (*PrometheusExporter, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	if promConfig == nil {
		promConfig = &PrometheusConfig{}
	}

	registry := promConfig.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	durationBuckets := promConfig.DurationBuckets
	if durationBuckets == nil {
		durationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	}

	var defaultLabels prometheus.Labels
	if promConfig.DefaultLabels != nil {
		defaultLabels = promConfig.DefaultLabels
	} else {
		defaultLabels = make(prometheus.Labels)
	}

	for k, v := range config.Labels {
		defaultLabels[k] = v
	}

	exporter := &PrometheusExporter{
		config:           config,
		registry:         registry,
		customCounters:   make(map[string]*prometheus.CounterVec),
		customHistograms: make(map[string]*prometheus.HistogramVec),
		customGauges:     make(map[string]*prometheus.GaugeVec),
	}

	if err := exporter.createStandardMetrics(defaultLabels, durationBuckets); err != nil {
		return nil, fmt.Errorf("failed to create standard metrics: %w", err)
	}

	return exporter, nil
}

// createStandardMetrics creates all the standard attribute cache metrics
func (p *PrometheusExporter) createStandardMetrics(defaultLabels prometheus.Labels, durationBuckets []float64) error {
	var err error

	// Use a consistent set of base labels for all metrics
	baseLabels := []string{"class"}

	// Counters
	p.hitsTotal, err = p.createCounterVec(p.config.MetricNames.HitsTotal, "Total number of property cache hits", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.missesTotal, err = p.createCounterVec(p.config.MetricNames.MissesTotal, "Total number of property cache misses", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.computesTotal, err = p.createCounterVec(p.config.MetricNames.ComputesTotal, "Total number of property getter executions", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.evictionsTotal, err = p.createCounterVec(p.config.MetricNames.EvictionsTotal, "Total number of cached attributes evicted", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.invalidationsTotal, err = p.createCounterVec(p.config.MetricNames.InvalidationsTotal, "Total number of cached attributes invalidated", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.generatorsWrappedTotal, err = p.createCounterVec(p.config.MetricNames.GeneratorsWrappedTotal, "Total number of producers wrapped into cached generators", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.operationsTotal, err = p.createCounterVec(p.config.MetricNames.OperationsTotal, "Total number of property operations", append(baseLabels, "operation", "result"), defaultLabels)
	if err != nil {
		return err
	}

	p.errorsTotal, err = p.createCounterVec(p.config.MetricNames.ErrorsTotal, "Total number of property operation errors", append(baseLabels, "operation"), defaultLabels)
	if err != nil {
		return err
	}

	// Histograms
	if p.config.IncludeDetailedTimings {
		p.computeDuration, err = p.createHistogramVec(p.config.MetricNames.ComputeDuration, "Property getter duration in seconds", append(baseLabels, "operation"), defaultLabels, durationBuckets)
		if err != nil {
			return err
		}
	}

	// Gauges
	p.propertyCount, err = p.createGaugeVec(p.config.MetricNames.PropertyCount, "Current number of properties defined on the class", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.inFlightComputes, err = p.createGaugeVec(p.config.MetricNames.InFlightComputes, "Current number of in-flight getter computations", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	p.hitRate, err = p.createGaugeVec(p.config.MetricNames.HitRate, "Property cache hit rate as a percentage", baseLabels, defaultLabels)
	if err != nil {
		return err
	}

	return nil
}

// ExportStats exports the current attribute cache statistics to Prometheus
func (p *PrometheusExporter) ExportStats(stats Stats, labels Labels) error {
	baseLabels := prometheus.Labels{}
	if class, exists := labels["class"]; exists {
		baseLabels["class"] = class
	}

	p.hitsTotal.With(baseLabels).Add(float64(stats.Hits()))
	p.missesTotal.With(baseLabels).Add(float64(stats.Misses()))
	p.computesTotal.With(baseLabels).Add(float64(stats.Computes()))
	p.evictionsTotal.With(baseLabels).Add(float64(stats.Evictions()))
	p.invalidationsTotal.With(baseLabels).Add(float64(stats.Invalidations()))
	p.generatorsWrappedTotal.With(baseLabels).Add(float64(stats.GeneratorsWrapped()))

	p.propertyCount.With(baseLabels).Set(float64(stats.PropertyCount()))
	p.inFlightComputes.With(baseLabels).Set(float64(stats.InFlight()))
	p.hitRate.With(baseLabels).Set(stats.HitRate())

	return nil
}

// RecordOperation records a property operation with timing
func (p *PrometheusExporter) RecordOperation(operation Operation, duration time.Duration, labels Labels) error {
	baseLabels := prometheus.Labels{}
	if class, exists := labels["class"]; exists {
		baseLabels["class"] = class
	}

	opLabels := prometheus.Labels{}
	for k, v := range baseLabels {
		opLabels[k] = v
	}
	opLabels["operation"] = string(operation)

	if p.computeDuration != nil {
		p.computeDuration.With(opLabels).Observe(duration.Seconds())
	}

	return nil
}

// IncrementCounter increments a custom counter
func (p *PrometheusExporter) IncrementCounter(name string, labels Labels) error {
	p.mu.Lock()
	counter, exists := p.customCounters[name]
	if !exists {
		labelNames := p.getLabelNames(labels)
		defaultLabels := p.convertLabels(p.config.Labels)

		var err error
		counter, err = p.createCounterVec(name, fmt.Sprintf("Custom counter: %s", name), labelNames, defaultLabels)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create counter %s: %w", name, err)
		}
		p.customCounters[name] = counter
	}
	p.mu.Unlock()

	counter.With(p.convertLabels(labels)).Inc()
	return nil
}

// RecordHistogram records a value in a custom histogram
func (p *PrometheusExporter) RecordHistogram(name string, value float64, labels Labels) error {
	p.mu.Lock()
	histogram, exists := p.customHistograms[name]
	if !exists {
		labelNames := p.getLabelNames(labels)
		defaultLabels := p.convertLabels(p.config.Labels)

		var err error
		histogram, err = p.createHistogramVec(name, fmt.Sprintf("Custom histogram: %s", name), labelNames, defaultLabels, prometheus.DefBuckets)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create histogram %s: %w", name, err)
		}
		p.customHistograms[name] = histogram
	}
	p.mu.Unlock()

	histogram.With(p.convertLabels(labels)).Observe(value)
	return nil
}

// SetGauge sets a custom gauge value
func (p *PrometheusExporter) SetGauge(name string, value float64, labels Labels) error {
	p.mu.Lock()
	gauge, exists := p.customGauges[name]
	if !exists {
		labelNames := p.getLabelNames(labels)
		defaultLabels := p.convertLabels(p.config.Labels)

		var err error
		gauge, err = p.createGaugeVec(name, fmt.Sprintf("Custom gauge: %s", name), labelNames, defaultLabels)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create gauge %s: %w", name, err)
		}
		p.customGauges[name] = gauge
	}
	p.mu.Unlock()

	gauge.With(p.convertLabels(labels)).Set(value)
	return nil
}

// Close shuts down the exporter
func (p *PrometheusExporter) Close() error {
	// Prometheus metrics don't need explicit cleanup
	return nil
}

// Helper methods

func (p *PrometheusExporter) createCounterVec(name, help string, labelNames []string, defaultLabels prometheus.Labels) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        name,
			Help:        help,
			ConstLabels: defaultLabels,
		},
		labelNames,
	)

	if err := p.registry.Register(counter); err != nil {
		return nil, err
	}

	return counter, nil
}

func (p *PrometheusExporter) createHistogramVec(name, help string, labelNames []string, defaultLabels prometheus.Labels, buckets []float64) (*prometheus.HistogramVec, error) {
	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        name,
			Help:        help,
			ConstLabels: defaultLabels,
			Buckets:     buckets,
		},
		labelNames,
	)

	if err := p.registry.Register(histogram); err != nil {
		return nil, err
	}

	return histogram, nil
}

func (p *PrometheusExporter) createGaugeVec(name, help string, labelNames []string, defaultLabels prometheus.Labels) (*prometheus.GaugeVec, error) {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        name,
			Help:        help,
			ConstLabels: defaultLabels,
		},
		labelNames,
	)

	if err := p.registry.Register(gauge); err != nil {
		return nil, err
	}

	return gauge, nil
}

func (p *PrometheusExporter) convertLabels(labels Labels) prometheus.Labels {
	if labels == nil {
		return prometheus.Labels{}
	}

	promLabels := make(prometheus.Labels)
	for k, v := range labels {
		promLabels[k] = v
	}
	return promLabels
}

func (p *PrometheusExporter) getLabelNames(labels Labels) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	return names
}

// Ensure interface is implemented
var _ Exporter = (*PrometheusExporter)(nil)
