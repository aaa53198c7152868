package reconcile

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	domoutbox "cartpay/internal/domain/outbox"
	dompayment "cartpay/internal/domain/payment"
	"cartpay/internal/infrastructure/outbox"
	"cartpay/internal/observability"
)

type recordingSubscriber struct {
	name    string
	handler domoutbox.Handler
}

func (s *recordingSubscriber) Subscribe(eventName string, h domoutbox.Handler) {
	s.name = eventName
	s.handler = h
}

func TestStartSubscribesToUnrecordedCharges(t *testing.T) {
	sub := &recordingSubscriber{}
	New(sub, nil).Start()

	if sub.name != (dompayment.UnrecordedCharge{}).EventName() {
		t.Fatalf("subscribed to %q", sub.name)
	}
	if sub.handler == nil {
		t.Fatal("no handler registered")
	}

	evt := dompayment.UnrecordedCharge{
		TransactionID: "txn-1",
		Amount:        dompayment.Money{CurrencyCode: "USD", Units: 10},
		OccurredAt:    time.Now().UTC(),
	}
	if err := sub.handler(context.Background(), evt); err != nil {
		t.Fatalf("handler: %v", err)
	}
}

func TestHandlerIgnoresForeignEvents(t *testing.T) {
	sub := &recordingSubscriber{}
	New(sub, nil).Start()

	if err := sub.handler(context.Background(), fakeEvent{}); err != nil {
		t.Fatalf("handler must ignore unrelated events, got %v", err)
	}
}

type fakeEvent struct{}

func (fakeEvent) EventName() string { return "payment.charge_unrecorded" }

// countingTel exposes only a counter so the test can see alerts land.
type countingTel struct{ hits *atomic.Int64 }

func (t countingTel) Tracer() observability.Tracer   { return observability.NopTracer() }
func (t countingTel) Logger() observability.Logger   { return observability.NopLogger() }
func (t countingTel) Metrics() observability.Metrics { return countingMetrics{hits: t.hits} }

type countingMetrics struct{ hits *atomic.Int64 }

func (m countingMetrics) Counter(observability.MetricKey) observability.Counter {
	return countingCounter{hits: m.hits}
}
func (m countingMetrics) Histogram(observability.MetricKey) observability.Histogram {
	return observability.NopHistogram()
}

type countingCounter struct{ hits *atomic.Int64 }

func (c countingCounter) Add(delta float64, _ ...observability.Label) {
	c.hits.Add(int64(delta))
}

func (c countingCounter) Bind(_ ...observability.Label) observability.BoundCounter {
	return boundCountingCounter{hits: c.hits}
}

type boundCountingCounter struct{ hits *atomic.Int64 }

func (c boundCountingCounter) Add(delta float64) { c.hits.Add(int64(delta)) }

func TestWorkerReceivesFromBus(t *testing.T) {
	bus := outbox.NewBus(nil)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	var hits atomic.Int64
	New(bus, countingTel{hits: &hits}).Start()

	evt := dompayment.UnrecordedCharge{TransactionID: "txn-2", OccurredAt: time.Now().UTC()}
	if err := bus.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for hits.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("alert never reached the worker")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
