package mboxevent

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/rbaliyan/mboxevent"
)

// otelInstrumentation holds OpenTelemetry instrumentation for the notifier.
type otelInstrumentation struct {
	enabled bool

	// Tracing
	tracingEnabled bool
	tracer         trace.Tracer

	// Metrics
	metricsEnabled bool

	flushLatency metric.Float64Histogram
	flushCount   metric.Int64Counter
	flushErrors  metric.Int64Counter
	notifyCount  metric.Int64Counter
	notifyErrors metric.Int64Counter
	droppedCount metric.Int64Counter
}

// newOtelInstrumentation creates new OTel instrumentation from options.
func newOtelInstrumentation(opts *options) (*otelInstrumentation, error) {
	o := &otelInstrumentation{
		enabled:        opts.tracingEnabled || opts.metricsEnabled,
		tracingEnabled: opts.tracingEnabled,
		metricsEnabled: opts.metricsEnabled,
	}

	if !o.enabled {
		return o, nil
	}

	if opts.tracingEnabled {
		tp := opts.tracerProvider
		if tp == nil {
			tp = otel.GetTracerProvider()
		}
		o.tracer = tp.Tracer(instrumentationName)
	}

	if opts.metricsEnabled {
		mp := opts.meterProvider
		if mp == nil {
			mp = otel.GetMeterProvider()
		}
		if err := o.initMetrics(mp); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// initMetrics initializes all metric instruments.
func (o *otelInstrumentation) initMetrics(mp metric.MeterProvider) error {
	meter := mp.Meter(instrumentationName)

	var err error

	o.flushLatency, err = meter.Float64Histogram(
		"mboxevent.flush.duration",
		metric.WithDescription("Duration of flush operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	o.flushCount, err = meter.Int64Counter(
		"mboxevent.flush.count",
		metric.WithDescription("Number of flush operations"),
	)
	if err != nil {
		return err
	}

	o.flushErrors, err = meter.Int64Counter(
		"mboxevent.flush.errors",
		metric.WithDescription("Number of flush errors"),
	)
	if err != nil {
		return err
	}

	o.notifyCount, err = meter.Int64Counter(
		"mboxevent.notifications.count",
		metric.WithDescription("Number of notifications handed to the sink"),
	)
	if err != nil {
		return err
	}

	o.notifyErrors, err = meter.Int64Counter(
		"mboxevent.notifications.errors",
		metric.WithDescription("Number of sink delivery errors"),
	)
	if err != nil {
		return err
	}

	o.droppedCount, err = meter.Int64Counter(
		"mboxevent.events.dropped",
		metric.WithDescription("Number of events dropped before encoding"),
	)
	if err != nil {
		return err
	}

	return nil
}

// startSpan starts a new span if tracing is enabled.
// Caller should call the returned func with the final error when done.
func (o *otelInstrumentation) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	if !o.tracingEnabled || o.tracer == nil {
		return ctx, func(error) {}
	}
	ctx, span := o.tracer.Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// recordFlush records flush operation metrics.
func (o *otelInstrumentation) recordFlush(ctx context.Context, duration time.Duration, err error) {
	if !o.metricsEnabled {
		return
	}

	o.flushLatency.Record(ctx, duration.Seconds())
	o.flushCount.Add(ctx, 1)
	if err != nil {
		o.flushErrors.Add(ctx, 1)
	}
}

// countNotification records one sink hand-off.
func (o *otelInstrumentation) countNotification(ctx context.Context, attr attribute.KeyValue, err error) {
	if !o.metricsEnabled {
		return
	}

	attrs := metric.WithAttributes(attr)
	o.notifyCount.Add(ctx, 1, attrs)
	if err != nil {
		o.notifyErrors.Add(ctx, 1, attrs)
	}
}

// countDropped records one event dropped before encoding.
func (o *otelInstrumentation) countDropped(ctx context.Context, reason string) {
	if !o.metricsEnabled {
		return
	}

	o.droppedCount.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
