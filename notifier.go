package mboxevent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/rbaliyan/event/v3"
	"github.com/rbaliyan/event/v3/transport/noop"
	eventredis "github.com/rbaliyan/event/v3/transport/redis"
	"github.com/rbaliyan/mboxevent/store"
	"golang.org/x/sync/semaphore"
)

// Connection states for the notifier.
const (
	stateDisconnected int32 = 0
	stateConnecting   int32 = 1
	stateConnected    int32 = 2
)

// Notifier turns server actions into rendered notification documents and
// hands them to a delivery sink. One Notifier serves a whole process; each
// server operation gets its own Session, which accumulates events and
// flushes them once at the end of the operation.
//
// The resolved configuration is read-only after NewNotifier; sessions may
// run concurrently against it.
type Notifier struct {
	cfg    *Config
	gating gating
	dav    store.DAVResolver

	logger *slog.Logger
	opts   *options
	otel   *otelInstrumentation
	state  int32

	serviceName string
	serverFQDN  string
	pid         int
	verify      bool

	// clientID is replace-then-read: SetClientID swaps the pointer, and
	// readers never observe a partially written value.
	clientID atomic.Pointer[string]

	flushSem *semaphore.Weighted
	eventBus *event.Bus
	events   *ServiceEvents
	sink     Sink
}

// NewNotifier creates a notifier from a resolved configuration.
// Call Connect() to initialize the delivery path.
func NewNotifier(opts ...Option) (*Notifier, error) {
	o := newOptions(opts...)

	if o.cfg == nil {
		return nil, ErrConfigRequired
	}

	otelInstr, err := newOtelInstrumentation(o)
	if err != nil {
		return nil, fmt.Errorf("init otel: %w", err)
	}

	n := &Notifier{
		cfg:         o.cfg,
		gating:      gating{cfg: o.cfg},
		dav:         o.dav,
		logger:      o.logger,
		opts:        o,
		otel:        otelInstr,
		serviceName: o.serviceName,
		serverFQDN:  o.serverFQDN,
		pid:         os.Getpid(),
		verify:      o.verify,
		flushSem:    semaphore.NewWeighted(int64(o.maxConcurrentFlushes)),
	}
	n.clientID.Store(&o.clientID)
	return n, nil
}

// Events returns per-notifier event instances for subscribing.
// Valid after Connect().
func (n *Notifier) Events() *ServiceEvents {
	return n.events
}

// IsConnected returns true if the notifier is connected and ready.
func (n *Notifier) IsConnected() bool {
	return atomic.LoadInt32(&n.state) == stateConnected
}

// SetClientID replaces the client identity reported on new events.
// Safe for concurrent use with running sessions.
func (n *Notifier) SetClientID(id string) {
	n.clientID.Store(&id)
}

// busCounter generates unique suffixes for event bus names.
var busCounter int64

// Connect initializes the event bus and delivery sink.
func (n *Notifier) Connect(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&n.state, stateDisconnected, stateConnecting) {
		return ErrAlreadyConnected
	}

	success := false
	defer func() {
		if success {
			atomic.StoreInt32(&n.state, stateConnected)
		} else {
			atomic.StoreInt32(&n.state, stateDisconnected)
		}
	}()

	if err := n.initEventBus(ctx); err != nil {
		return fmt.Errorf("init event bus: %w", err)
	}

	if n.opts.sink != nil {
		n.sink = n.opts.sink
	} else {
		n.sink = &busSink{events: n.events}
	}

	success = true
	n.logger.Info("mboxevent notifier connected", "notifier", n.cfg.NotifierName)
	return nil
}

// initEventBus initializes the event bus for this notifier.
func (n *Notifier) initEventBus(ctx context.Context) error {
	serviceName := n.serviceName
	if serviceName == "" {
		serviceName = "mboxevent"
	}
	// Each bus needs a unique name, so append a counter suffix.
	busName := fmt.Sprintf("%s-%d", serviceName, atomic.AddInt64(&busCounter, 1))

	var bus *event.Bus
	var err error

	switch {
	case n.opts.eventTransport != nil:
		n.logger.Info("initializing event bus with custom transport")
		bus, err = event.NewBus(busName, event.WithTransport(n.opts.eventTransport))
	case n.opts.redisClient != nil:
		n.logger.Info("initializing event bus with Redis transport")
		t, transportErr := eventredis.New(n.opts.redisClient)
		if transportErr != nil {
			return fmt.Errorf("create redis transport: %w", transportErr)
		}
		bus, err = event.NewBus(busName, event.WithTransport(t))
	default:
		n.logger.Debug("initializing event bus with noop transport")
		bus, err = event.NewBus(busName, event.WithTransport(noop.New()))
	}

	if err != nil {
		return fmt.Errorf("create event bus: %w", err)
	}
	n.eventBus = bus

	n.events = newServiceEvents(busName)
	if err := registerServiceEvents(ctx, bus, n.events); err != nil {
		bus.Close(ctx)
		return fmt.Errorf("register service events: %w", err)
	}

	return nil
}

// Close shuts the notifier down, waiting for in-flight flushes to finish.
func (n *Notifier) Close(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&n.state, stateConnected, stateDisconnected) {
		return nil
	}

	var errs []error

	// After the state flip no new flushes can start; acquiring every
	// semaphore slot waits out the ones already running.
	shutdownCtx, cancel := context.WithTimeout(ctx, n.opts.shutdownTimeout)
	defer cancel()
	if err := n.flushSem.Acquire(shutdownCtx, int64(n.opts.maxConcurrentFlushes)); err != nil {
		n.logger.Warn("timeout waiting for in-flight flushes, proceeding with shutdown",
			"error", err)
		errs = append(errs, fmt.Errorf("graceful shutdown timeout: %w", err))
	} else {
		n.flushSem.Release(int64(n.opts.maxConcurrentFlushes))
	}

	// Close the event bus only if using a real transport. The noop bus
	// holds no resources, and closing it would break events for other
	// notifiers sharing the globals.
	if n.eventBus != nil && (n.opts.eventTransport != nil || n.opts.redisClient != nil) {
		if err := n.eventBus.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}

	return errors.Join(errs...)
}
