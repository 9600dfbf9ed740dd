package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OpenTelemetryExporter implements the Exporter interface for OpenTelemetry metrics
type OpenTelemetryExporter struct {
	config *Config
	meter  metric.Meter
	ctx    context.Context

	// Standard metrics instruments
	hitsCounter              metric.Int64Counter
	missesCounter            metric.Int64Counter
	computesCounter          metric.Int64Counter
	evictionsCounter         metric.Int64Counter
	invalidationsCounter     metric.Int64Counter
	generatorsWrappedCounter metric.Int64Counter
	operationsCounter        metric.Int64Counter
	errorsCounter            metric.Int64Counter

	computeDuration metric.Float64Histogram

	propertyGauge metric.Int64Gauge
	inFlightGauge metric.Int64Gauge
	hitRateGauge  metric.Float64Gauge

	// Custom metrics (for IncrementCounter, etc.)
	customCounters   map[string]metric.Int64Counter
	customHistograms map[string]metric.Float64Histogram
	customGauges     map[string]metric.Float64Gauge
	mu               sync.RWMutex
}

// OpenTelemetryConfig holds OpenTelemetry-specific configuration
type OpenTelemetryConfig struct {
	// Meter is the OpenTelemetry meter to use
	Meter metric.Meter

	// Context is the context to use for metric operations
	Context context.Context

	// DefaultAttributes are applied to all metrics
	DefaultAttributes []attribute.KeyValue
}

// NewOpenTelemetryExporter creates a new OpenTelemetry metrics exporter
func NewOpenTelemetryExporter(config *Config, otelConfig *OpenTelemetryConfig) (*OpenTelemetryExporter, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	if otelConfig == nil {
		return nil, fmt.Errorf("OpenTelemetry configuration is required")
	}

	if otelConfig.Meter == nil {
		return nil, fmt.Errorf("OpenTelemetry meter is required")
	}

	ctx := otelConfig.Context
	if ctx == nil {
		ctx = context.Background()
	}

	exporter := &OpenTelemetryExporter{
		config:           config,
		meter:            otelConfig.Meter,
		ctx:              ctx,
		customCounters:   make(map[string]metric.Int64Counter),
		customHistograms: make(map[string]metric.Float64Histogram),
		customGauges:     make(map[string]metric.Float64Gauge),
	}

	if err := exporter.createStandardMetrics(); err != nil {
		return nil, fmt.Errorf("failed to create standard metrics: %w", err)
	}

	return exporter, nil
}

// createStandardMetrics creates all the standard attribute cache metrics
func (o *OpenTelemetryExporter) createStandardMetrics() error {
	var err error

	// Counters
	o.hitsCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.HitsTotal,
		metric.WithDescription("Total number of property cache hits"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create hits counter: %w", err)
	}

	o.missesCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.MissesTotal,
		metric.WithDescription("Total number of property cache misses"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create misses counter: %w", err)
	}

	o.computesCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.ComputesTotal,
		metric.WithDescription("Total number of property getter executions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create computes counter: %w", err)
	}

	o.evictionsCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.EvictionsTotal,
		metric.WithDescription("Total number of cached attributes evicted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create evictions counter: %w", err)
	}

	o.invalidationsCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.InvalidationsTotal,
		metric.WithDescription("Total number of cached attributes invalidated"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create invalidations counter: %w", err)
	}

	o.generatorsWrappedCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.GeneratorsWrappedTotal,
		metric.WithDescription("Total number of producers wrapped into cached generators"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create generators wrapped counter: %w", err)
	}

	o.operationsCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.OperationsTotal,
		metric.WithDescription("Total number of property operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create operations counter: %w", err)
	}

	o.errorsCounter, err = o.meter.Int64Counter(
		o.config.MetricNames.ErrorsTotal,
		metric.WithDescription("Total number of property operation errors"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create errors counter: %w", err)
	}

	// Histograms
	if o.config.IncludeDetailedTimings {
		o.computeDuration, err = o.meter.Float64Histogram(
			o.config.MetricNames.ComputeDuration,
			metric.WithDescription("Property getter duration"),
			metric.WithUnit("s"),
		)
		if err != nil {
			return fmt.Errorf("failed to create compute duration histogram: %w", err)
		}
	}

	// Gauges
	o.propertyGauge, err = o.meter.Int64Gauge(
		o.config.MetricNames.PropertyCount,
		metric.WithDescription("Current number of properties defined on the class"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create property gauge: %w", err)
	}

	o.inFlightGauge, err = o.meter.Int64Gauge(
		o.config.MetricNames.InFlightComputes,
		metric.WithDescription("Current number of in-flight getter computations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create in-flight gauge: %w", err)
	}

	o.hitRateGauge, err = o.meter.Float64Gauge(
		o.config.MetricNames.HitRate,
		metric.WithDescription("Property cache hit rate as a percentage"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return fmt.Errorf("failed to create hit rate gauge: %w", err)
	}

	return nil
}

// ExportStats exports the current attribute cache statistics to OpenTelemetry
func (o *OpenTelemetryExporter) ExportStats(stats Stats, labels Labels) error {
	attrs := o.convertLabels(labels)

	o.hitsCounter.Add(o.ctx, stats.Hits(), metric.WithAttributes(attrs...))
	o.missesCounter.Add(o.ctx, stats.Misses(), metric.WithAttributes(attrs...))
	o.computesCounter.Add(o.ctx, stats.Computes(), metric.WithAttributes(attrs...))
	o.evictionsCounter.Add(o.ctx, stats.Evictions(), metric.WithAttributes(attrs...))
	o.invalidationsCounter.Add(o.ctx, stats.Invalidations(), metric.WithAttributes(attrs...))
	o.generatorsWrappedCounter.Add(o.ctx, stats.GeneratorsWrapped(), metric.WithAttributes(attrs...))

	o.propertyGauge.Record(o.ctx, stats.PropertyCount(), metric.WithAttributes(attrs...))
	o.inFlightGauge.Record(o.ctx, stats.InFlight(), metric.WithAttributes(attrs...))
	o.hitRateGauge.Record(o.ctx, stats.HitRate(), metric.WithAttributes(attrs...))

	return nil
}

// RecordOperation records a property operation with timing
func (o *OpenTelemetryExporter) RecordOperation(operation Operation, duration time.Duration, labels Labels) error {
	attrs := o.convertLabels(labels)

	opAttrs := make([]attribute.KeyValue, len(attrs)+1)
	copy(opAttrs, attrs)
	opAttrs[len(attrs)] = attribute.String("operation", string(operation))

	o.operationsCounter.Add(o.ctx, 1, metric.WithAttributes(opAttrs...))

	if o.computeDuration != nil {
		o.computeDuration.Record(o.ctx, duration.Seconds(), metric.WithAttributes(opAttrs...))
	}

	return nil
}

// IncrementCounter increments a custom counter
func (o *OpenTelemetryExporter) IncrementCounter(name string, labels Labels) error {
	o.mu.Lock()
	counter, exists := o.customCounters[name]
	if !exists {
		var err error
		counter, err = o.meter.Int64Counter(
			name,
			metric.WithDescription(fmt.Sprintf("Custom counter: %s", name)),
			metric.WithUnit("1"),
		)
		if err != nil {
			o.mu.Unlock()
			return fmt.Errorf("failed to create counter %s: %w", name, err)
		}
		o.customCounters[name] = counter
	}
	o.mu.Unlock()

	attrs := o.convertLabels(labels)
	counter.Add(o.ctx, 1, metric.WithAttributes(attrs...))
	return nil
}

// RecordHistogram records a value in a custom histogram
func (o *OpenTelemetryExporter) RecordHistogram(name string, value float64, labels Labels) error {
	o.mu.Lock()
	histogram, exists := o.customHistograms[name]
	if !exists {
		var err error
		histogram, err = o.meter.Float64Histogram(
			name,
			metric.WithDescription(fmt.Sprintf("Custom histogram: %s", name)),
			metric.WithUnit("1"),
		)
		if err != nil {
			o.mu.Unlock()
			return fmt.Errorf("failed to create histogram %s: %w", name, err)
		}
		o.customHistograms[name] = histogram
	}
	o.mu.Unlock()

	attrs := o.convertLabels(labels)
	histogram.Record(o.ctx, value, metric.WithAttributes(attrs...))
	return nil
}

// SetGauge sets a custom gauge value
func (o *OpenTelemetryExporter) SetGauge(name string, value float64, labels Labels) error {
	o.mu.Lock()
	gauge, exists := o.customGauges[name]
	if !exists {
		var err error
		gauge, err = o.meter.Float64Gauge(
			name,
			metric.WithDescription(fmt.Sprintf("Custom gauge: %s", name)),
			metric.WithUnit("1"),
		)
		if err != nil {
			o.mu.Unlock()
			return fmt.Errorf("failed to create gauge %s: %w", name, err)
		}
		o.customGauges[name] = gauge
	}
	o.mu.Unlock()

	attrs := o.convertLabels(labels)
	gauge.Record(o.ctx, value, metric.WithAttributes(attrs...))
	return nil
}

// Close shuts down the exporter
func (o *OpenTelemetryExporter) Close() error {
	// OpenTelemetry metrics don't need explicit cleanup
	return nil
}

// Helper methods

func (o *OpenTelemetryExporter) convertLabels(labels Labels) []attribute.KeyValue {
	if labels == nil {
		return []attribute.KeyValue{}
	}

	attrs := make([]attribute.KeyValue, 0, len(labels)+len(o.config.Labels))

	for k, v := range o.config.Labels {
		attrs = append(attrs, attribute.String(k, v))
	}

	for k, v := range labels {
		attrs = append(attrs, attribute.String(k, v))
	}

	return attrs
}

// Ensure interface is implemented
var _ Exporter = (*OpenTelemetryExporter)(nil)
