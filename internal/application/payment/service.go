package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cartpay/internal/apperr"
	domledger "cartpay/internal/domain/ledger"
	"cartpay/internal/domain/outbox"
	dompayment "cartpay/internal/domain/payment"
	"cartpay/internal/observability"
	"cartpay/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	paymentService = "payment-service"
	useCaseCharge  = "payment.charge"
	spanName       = "UC.Charge"
)

// Service orchestrates a charge: validate, execute against the card
// network, record in the ledger, and only then report success. The
// charge-before-record, record-before-response ordering is the contract;
// no step is ever retried here.
type Service struct {
	executor dompayment.Executor
	ledger   domledger.Ledger
	alerts   outbox.Publisher

	tracer     observability.Tracer
	log        observability.Logger
	requests   observability.Counter
	duration   observability.Histogram
	unrecorded observability.BoundCounter
}

// NewService wires the charge pipeline. alerts may be nil; the unrecorded-
// charge gap is then surfaced through logs and metrics only.
func NewService(executor dompayment.Executor, ledger domledger.Ledger, alerts outbox.Publisher, tel observability.Observability) *Service {
	baseLog := observability.NopLogger()
	tracer := observability.NopTracer()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger().With(observability.F("service", paymentService))
		tracer = tel.Tracer()
		metrics = tel.Metrics()
	}
	return &Service{
		executor:   executor,
		ledger:     ledger,
		alerts:     alerts,
		tracer:     tracer,
		log:        baseLog,
		requests:   metrics.Counter(observability.MUsecaseRequests),
		duration:   metrics.Histogram(observability.MUsecaseDuration),
		unrecorded: metrics.Counter(observability.MChargeUnrecorded).Bind(),
	}
}

// Charge runs a single attempt through Validating, Charging, Recording,
// Responding. Success is returned only after the ledger insert committed,
// so every transaction id handed to a caller has a durable record.
func (s *Service) Charge(ctx context.Context, req dompayment.ChargeRequest) (_ dompayment.ChargeResult, err error) {
	ctx, span := s.tracer.Start(ctx, spanName,
		attribute.String("use_case", useCaseCharge),
		attribute.String("payment.currency", req.Amount.CurrencyCode),
		attribute.Int64("payment.units", req.Amount.Units),
	)
	start := time.Now()
	outcome := "success"
	defer func() {
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, apperr.KindOf(err).String())
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()

		s.requests.Add(1,
			observability.L("use_case", useCaseCharge),
			observability.L("outcome", outcome),
		)
		s.duration.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCaseCharge),
		)
	}()

	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCaseCharge),
		observability.F("amount", req.Amount.String()),
		observability.F("card", req.CreditCard.LastFour()),
	)

	if err := validate(req); err != nil {
		return dompayment.ChargeResult{}, err
	}

	result, execErr := s.executor.Execute(ctx, req)
	if execErr != nil {
		if errors.Is(execErr, dompayment.ErrCardDeclined) {
			logger.Info("charge_declined", observability.F("reason", execErr.Error()))
			return dompayment.ChargeResult{}, apperr.Wrap(apperr.FailedPrecondition, execErr)
		}
		logger.Error("charge_execution_failed", observability.F("error", execErr.Error()))
		return dompayment.ChargeResult{}, apperr.Wrap(apperr.Unavailable, fmt.Errorf("payment: execute charge: %w", execErr))
	}

	span.SetAttributes(attribute.String("payment.transaction_id", result.TransactionID))

	rec := domledger.TransactionRecord{TransactionID: result.TransactionID}
	if insErr := s.ledger.Insert(ctx, rec); insErr != nil {
		// Money moved but the proof did not commit. This cannot be fixed
		// here: retrying the whole call would double-charge, so the gap is
		// escalated for manual reconciliation instead of masked.
		s.unrecorded.Add(1)
		logger.Error("charge_unrecorded",
			observability.F("transaction_id", result.TransactionID),
			observability.F("error", insErr.Error()),
		)
		s.alert(ctx, result.TransactionID, req.Amount)
		return dompayment.ChargeResult{}, apperr.Wrap(apperr.Internal,
			fmt.Errorf("payment: transaction %s charged but not recorded: %w", result.TransactionID, insErr))
	}

	logger.Info("charge_recorded", observability.F("transaction_id", result.TransactionID))
	return result, nil
}

// alert publishes the unrecorded-charge event best effort. The response has
// already been decided; a publish failure only loses the secondary signal.
func (s *Service) alert(ctx context.Context, transactionID string, amount dompayment.Money) {
	if s.alerts == nil {
		return
	}
	evt := dompayment.UnrecordedCharge{
		TransactionID: transactionID,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
	}
	if pubErr := s.alerts.Publish(ctx, evt); pubErr != nil {
		s.log.Warn("unrecorded_charge_alert_failed",
			observability.F("transaction_id", transactionID),
			observability.F("error", pubErr.Error()),
		)
	}
}

func validate(req dompayment.ChargeRequest) error {
	if !req.Amount.IsPositive() {
		return apperr.New(apperr.InvalidArgument, "payment: amount must be greater than zero")
	}
	if req.Amount.CurrencyCode == "" {
		return apperr.New(apperr.InvalidArgument, "payment: currency code is required")
	}
	if req.CreditCard.Number == "" {
		return apperr.New(apperr.InvalidArgument, "payment: card number is required")
	}
	if req.CreditCard.ExpirationMonth < 1 || req.CreditCard.ExpirationMonth > 12 {
		return apperr.New(apperr.InvalidArgument, "payment: card expiration month must be 1-12")
	}
	if req.CreditCard.ExpirationYear <= 0 {
		return apperr.New(apperr.InvalidArgument, "payment: card expiration year is required")
	}
	return nil
}
