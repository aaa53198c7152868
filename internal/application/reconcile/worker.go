// Package reconcile consumes unrecorded-charge alerts. It cannot repair the
// gap (retrying the ledger write risks double accounting downstream); its
// job is to make the gap impossible to miss.
package reconcile

import (
	"context"

	"cartpay/internal/domain/outbox"
	dompayment "cartpay/internal/domain/payment"
	"cartpay/internal/observability"
	"cartpay/internal/observability/logctx"
)

const componentReconcile = "reconcile_worker"

type Worker struct {
	subscriber outbox.Subscriber
	log        observability.Logger
	alerts     observability.BoundCounter
}

func New(subscriber outbox.Subscriber, tel observability.Observability) *Worker {
	baseLog := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		metrics = tel.Metrics()
	}
	return &Worker{
		subscriber: subscriber,
		log:        baseLog.With(observability.F("component", componentReconcile)),
		alerts: metrics.Counter(observability.MUsecaseRequests).Bind(
			observability.L("use_case", "payment.reconcile_alert"),
			observability.L("outcome", "received"),
		),
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(dompayment.UnrecordedCharge{}.EventName(), w.handleUnrecordedCharge)
}

func (w *Worker) handleUnrecordedCharge(ctx context.Context, e outbox.Event) error {
	evt, ok := e.(dompayment.UnrecordedCharge)
	if !ok {
		return nil
	}

	w.alerts.Add(1)
	logctx.FromOr(ctx, w.log).Error("charge_requires_reconciliation",
		observability.F("transaction_id", evt.TransactionID),
		observability.F("amount", evt.Amount.String()),
		observability.F("occurred_at", evt.OccurredAt),
	)
	return nil
}
