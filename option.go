package mboxevent

import (
	"log/slog"
	"time"

	"github.com/rbaliyan/event/v3/transport"
	"github.com/rbaliyan/mboxevent/store"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Default configuration values.
const (
	DefaultShutdownTimeout = 30 * time.Second
	MinShutdownTimeout     = 1 * time.Second

	// Concurrency limits
	DefaultMaxConcurrentFlushes = 10
)

// options holds notifier configuration.
type options struct {
	cfg *Config
	dav store.DAVResolver

	logger *slog.Logger

	serviceName string
	serverFQDN  string
	clientID    string
	verify      bool

	// Concurrency limits
	maxConcurrentFlushes int

	// Shutdown
	shutdownTimeout time.Duration

	// OpenTelemetry
	tracingEnabled bool
	metricsEnabled bool
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	// Delivery
	sink             Sink
	sinkErrorsFatal  bool
	eventTransport   transport.Transport
	redisClient      redis.UniversalClient
	onDeliverFailure DeliverFailureFunc
}

// DeliverFailureFunc is called when a notification fails to reach the sink.
// eventName is the notification's wire name and err the delivery error.
type DeliverFailureFunc func(eventName string, err error)

// safeSinkFailure calls the delivery failure callback with panic recovery.
// If the callback panics, the panic is logged and suppressed to prevent
// cascading failures.
func (o *options) safeSinkFailure(eventName string, err error) {
	if o.onDeliverFailure == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("panic in delivery failure handler",
				"event", eventName,
				"original_error", err,
				"panic", r,
			)
		}
	}()
	o.onDeliverFailure(eventName, err)
}

// newOptions creates options with defaults and applies provided options.
func newOptions(opts ...Option) *options {
	o := &options{
		logger:               slog.Default(),
		maxConcurrentFlushes: DefaultMaxConcurrentFlushes,
		shutdownTimeout:      DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	// Ensure delivery failure callback is always set
	if o.onDeliverFailure == nil {
		o.onDeliverFailure = func(eventName string, err error) {
			o.logger.Error("failed to deliver notification", "event", eventName, "error", err)
		}
	}

	return o
}

// Option configures a notifier.
type Option func(*options)

// --- Core Options ---

// WithConfig sets the resolved notifier configuration (required).
func WithConfig(c *Config) Option {
	return func(o *options) {
		if c != nil {
			o.cfg = c
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDAVResolver sets the DAV metadata resolver used to report resource
// filenames and stored UIDs for calendar and address-book mailboxes.
// Without one, those parameters are simply never filled.
func WithDAVResolver(d store.DAVResolver) Option {
	return func(o *options) {
		if d != nil {
			o.dav = d
		}
	}
}

// WithServiceName sets the service name reported in the service parameter
// and used for OpenTelemetry telemetry. Default is "mboxevent".
func WithServiceName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.serviceName = name
		}
	}
}

// WithServerFQDN sets the server name used in resource URIs and the
// serverFQDN parameter.
func WithServerFQDN(fqdn string) Option {
	return func(o *options) {
		if fqdn != "" {
			o.serverFQDN = fqdn
		}
	}
}

// WithClientID sets the client identity seeded onto new events. It can be
// replaced later via Notifier.SetClientID.
func WithClientID(id string) Option {
	return func(o *options) {
		o.clientID = id
	}
}

// WithVerification enables the flush-time completeness check: expected but
// unfilled parameters are logged as diagnostics. Delivery always proceeds
// regardless. Intended for development and tests.
func WithVerification(enabled bool) Option {
	return func(o *options) {
		o.verify = enabled
	}
}

// --- OTel Options ---

// WithTracing enables or disables OpenTelemetry tracing.
// Default is disabled.
func WithTracing(enabled bool) Option {
	return func(o *options) {
		o.tracingEnabled = enabled
	}
}

// WithMetrics enables or disables OpenTelemetry metrics.
// Default is disabled.
func WithMetrics(enabled bool) Option {
	return func(o *options) {
		o.metricsEnabled = enabled
	}
}

// WithOTel enables both OpenTelemetry tracing and metrics.
func WithOTel(enabled bool) Option {
	return func(o *options) {
		o.tracingEnabled = enabled
		o.metricsEnabled = enabled
	}
}

// WithTracerProvider sets a custom OpenTelemetry tracer provider.
// Default uses the global tracer provider from otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

// WithMeterProvider sets a custom OpenTelemetry meter provider.
// Default uses the global meter provider from otel.GetMeterProvider().
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// --- Concurrency Options ---

// WithMaxConcurrentFlushes sets the maximum number of concurrent flush
// operations across sessions. Default is 10.
func WithMaxConcurrentFlushes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxConcurrentFlushes = n
		}
	}
}

// WithShutdownTimeout sets the maximum time Close() waits for in-flight
// flushes. Default is 30 seconds. Minimum is 1 second.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= MinShutdownTimeout {
			o.shutdownTimeout = d
		}
	}
}

// --- Delivery Options ---

// WithSink sets the delivery sink directly, bypassing the event bus.
func WithSink(s Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithSinkErrorsFatal configures whether delivery failures abort a flush.
// By default failures are reported to the failure handler and the flush
// continues (fire-and-forget).
func WithSinkErrorsFatal(fatal bool) Option {
	return func(o *options) {
		o.sinkErrorsFatal = fatal
	}
}

// WithEventTransport sets the event transport for the default bus sink.
// If not provided, a noop transport is used (notifications are silently
// dropped unless a Sink is configured).
func WithEventTransport(t transport.Transport) Option {
	return func(o *options) {
		if t != nil {
			o.eventTransport = t
		}
	}
}

// WithRedisClient sets a Redis client for the event transport. When
// provided, notifications are published to Redis Streams.
//
// Compatible with *redis.Client, *redis.ClusterClient, and redis.UniversalClient.
func WithRedisClient(client redis.UniversalClient) Option {
	return func(o *options) {
		if client != nil {
			o.redisClient = client
		}
	}
}

// WithDeliverFailureHandler sets a callback for delivery failures. Use this
// for custom logging, metrics, or alerting. By default failures are logged
// using the configured logger.
func WithDeliverFailureHandler(fn DeliverFailureFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.onDeliverFailure = fn
		}
	}
}
