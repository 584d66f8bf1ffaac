package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricOpts holds options for creating metrics
type MetricOpts struct {
	Name        string
	Description string
	Unit        string
}

// Counter wraps an OTel counter for easier use
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a new counter metric on the global meter
func NewCounter(opts MetricOpts) (*Counter, error) {
	return newCounter(GetMeter(), opts)
}

func newCounter(meter metric.Meter, opts MetricOpts) (*Counter, error) {
	counter, err := meter.Int64Counter(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: counter}, nil
}

// Add increments the counter by the given value
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by 1
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram wraps an OTel histogram for easier use
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a new histogram metric on the global meter
func NewHistogram(opts MetricOpts) (*Histogram, error) {
	return newHistogram(GetMeter(), opts)
}

func newHistogram(meter metric.Meter, opts MetricOpts, boundaries ...float64) (*Histogram, error) {
	options := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(boundaries) > 0 {
		options = append(options, metric.WithExplicitBucketBoundaries(boundaries...))
	}
	histogram, err := meter.Float64Histogram(opts.Name, options...)
	if err != nil {
		return nil, err
	}
	return &Histogram{histogram: histogram}, nil
}

// Record records a value in the histogram
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// ClientMetrics instruments calls made against the event API
type ClientMetrics struct {
	requests *Counter
	failures *Counter
	duration *Histogram
}

// NewClientMetrics registers the API client instruments on meter.
// A nil meter falls back to the global one.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	if meter == nil {
		meter = GetMeter()
	}

	requests, err := newCounter(meter, MetricOpts{
		Name:        MetricClientRequests,
		Description: "Number of requests sent to the event API",
		Unit:        "{request}",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create requests counter: %w", err)
	}

	failures, err := newCounter(meter, MetricOpts{
		Name:        MetricClientFailures,
		Description: "Number of event API requests that failed before a response",
		Unit:        "{request}",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}

	duration, err := newHistogram(meter, MetricOpts{
		Name:        MetricClientDuration,
		Description: "Latency of event API requests",
		Unit:        "s",
	}, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &ClientMetrics{requests: requests, failures: failures, duration: duration}, nil
}

// Observe records one finished request. statusCode is 0 when no response arrived.
func (m *ClientMetrics) Observe(ctx context.Context, method string, statusCode int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{MethodAttr(method)}
	if statusCode > 0 {
		attrs = append(attrs, StatusCodeAttr(statusCode))
	}
	m.requests.Inc(ctx, attrs...)
	m.duration.Record(ctx, elapsed.Seconds(), attrs...)
	if err != nil {
		m.failures.Inc(ctx, MethodAttr(method), ErrorTypeAttr(fmt.Sprintf("%T", err)))
	}
}

// Metric names
const (
	MetricClientRequests = "event_api.client.requests"
	MetricClientFailures = "event_api.client.failures"
	MetricClientDuration = "event_api.client.duration"
)

// Common metric attribute keys
const (
	AttrMethod      = "http.method"
	AttrStatusCode  = "http.status_code"
	AttrErrorType   = "error.type"
	AttrEventID     = "event.id"
	AttrEventStatus = "event.status"
	AttrOperation   = "event.operation"
)

// Helper functions for common attributes
func MethodAttr(method string) attribute.KeyValue {
	return attribute.String(AttrMethod, method)
}

func StatusCodeAttr(code int) attribute.KeyValue {
	return attribute.Int(AttrStatusCode, code)
}

func ErrorTypeAttr(errType string) attribute.KeyValue {
	return attribute.String(AttrErrorType, errType)
}

func EventIDAttr(eventID string) attribute.KeyValue {
	return attribute.String(AttrEventID, eventID)
}

func EventStatusAttr(status string) attribute.KeyValue {
	return attribute.String(AttrEventStatus, status)
}

func OperationAttr(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}
