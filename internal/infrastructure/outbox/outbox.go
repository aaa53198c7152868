// Package outbox is an in-memory event bus used for operational alerts.
// It is not durable; alerts that must survive a crash are also written to
// the log by the publisher before reaching the bus.
package outbox

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	domoutbox "cartpay/internal/domain/outbox"
	"cartpay/internal/observability"
	"cartpay/internal/observability/logctx"
)

const (
	componentOutbox = "outbox"
	queueSize       = 256
	handlerTimeout  = 30 * time.Second
)

type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]domoutbox.Handler
	queue     chan domoutbox.Event
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	log       observability.Logger
}

func NewBus(logger observability.Logger) *Bus {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Bus{
		subs:  make(map[string][]domoutbox.Handler),
		queue: make(chan domoutbox.Event, queueSize),
		log:   logger.With(observability.F("component", componentOutbox)),
	}
}

func (b *Bus) Subscribe(eventName string, h domoutbox.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		bg, cancel := context.WithCancel(ctx)
		b.cancel = cancel
		go b.dispatchLoop(bg)
		b.log.Info("event_bus_started")
	})
}

func (b *Bus) Stop(ctx context.Context) {
	b.stopOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		close(b.queue)
		logctx.FromOr(ctx, b.log).Info("event_bus_stopped")
	})
}

// Publish enqueues the event. It blocks only on queue admission, never on
// the handlers, so a response path publishing an alert is not delayed by
// the consumers.
func (b *Bus) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}
	select {
	case b.queue <- e:
		return nil
	case <-ctx.Done():
		b.log.Warn("event_enqueue_aborted",
			observability.F("event", e.EventName()),
			observability.F("error", ctx.Err()),
		)
		return ctx.Err()
	}
}

func (b *Bus) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-b.queue:
			if !ok {
				return
			}
			b.deliver(ctx, e)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, e domoutbox.Event) {
	name := e.EventName()

	b.mu.RLock()
	handlers := append([]domoutbox.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug("event_dropped_no_subscriber", observability.F("event", name))
		return
	}

	// Delivery must not die with the publishing request's context.
	ctx = context.WithoutCancel(ctx)
	ctx = logctx.With(ctx, b.log.With(observability.F("event", name)))

	for _, h := range handlers {
		b.invoke(ctx, name, h, e)
	}
}

func (b *Bus) invoke(ctx context.Context, name string, h domoutbox.Handler, e domoutbox.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event_handler_panic",
				observability.F("event", name),
				observability.F("panic", r),
				observability.F("stack", string(debug.Stack())),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	if err := h(ctx, e); err != nil {
		b.log.Warn("event_handler_error",
			observability.F("event", name),
			observability.F("error", err.Error()),
		)
	}
}
