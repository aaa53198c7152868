package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cartpay/internal/apperr"
	domledger "cartpay/internal/domain/ledger"
	"cartpay/internal/domain/outbox"
	dompayment "cartpay/internal/domain/payment"
	"cartpay/internal/infrastructure/memory"
)

type fakeExecutor struct {
	calls int
	err   error
}

func (e *fakeExecutor) Execute(ctx context.Context, req dompayment.ChargeRequest) (dompayment.ChargeResult, error) {
	e.calls++
	if e.err != nil {
		return dompayment.ChargeResult{}, e.err
	}
	return dompayment.ChargeResult{TransactionID: fmt.Sprintf("txn-%d", e.calls)}, nil
}

type failingLedger struct {
	attempts int
}

func (l *failingLedger) Insert(ctx context.Context, rec domledger.TransactionRecord) error {
	l.attempts++
	return errors.New("ledger unavailable")
}

type capturingPublisher struct {
	events []outbox.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, e outbox.Event) error {
	p.events = append(p.events, e)
	return nil
}

func validRequest() dompayment.ChargeRequest {
	return dompayment.ChargeRequest{
		Amount: dompayment.Money{CurrencyCode: "USD", Units: 43, Nanos: 750000000},
		CreditCard: dompayment.CardInfo{
			Number:          "4432801561520454",
			CVV:             672,
			ExpirationMonth: 1,
			ExpirationYear:  2039,
		},
	}
}

func TestChargeSuccessRecordsBeforeResponding(t *testing.T) {
	exec := &fakeExecutor{}
	ledger := memory.NewLedger()
	svc := NewService(exec, ledger, nil, nil)

	result, err := svc.Charge(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if result.TransactionID == "" {
		t.Fatal("expected a transaction id")
	}
	if !ledger.Has(result.TransactionID) {
		t.Fatalf("transaction %s reported to caller but missing from ledger", result.TransactionID)
	}
	if exec.calls != 1 {
		t.Fatalf("expected exactly one charge execution, got %d", exec.calls)
	}
}

func TestChargeValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dompayment.ChargeRequest)
	}{
		{"zero amount", func(r *dompayment.ChargeRequest) { r.Amount.Units, r.Amount.Nanos = 0, 0 }},
		{"negative units", func(r *dompayment.ChargeRequest) { r.Amount.Units = -1 }},
		{"missing currency", func(r *dompayment.ChargeRequest) { r.Amount.CurrencyCode = "" }},
		{"missing card number", func(r *dompayment.ChargeRequest) { r.CreditCard.Number = "" }},
		{"month out of range", func(r *dompayment.ChargeRequest) { r.CreditCard.ExpirationMonth = 13 }},
		{"missing year", func(r *dompayment.ChargeRequest) { r.CreditCard.ExpirationYear = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			ledger := memory.NewLedger()
			svc := NewService(exec, ledger, nil, nil)

			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Charge(context.Background(), req)
			if apperr.KindOf(err) != apperr.InvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", err)
			}
			// Rejected before the card network is touched; no money moves.
			if exec.calls != 0 {
				t.Fatalf("executor called %d times for invalid request", exec.calls)
			}
			if ledger.Len() != 0 {
				t.Fatalf("ledger has %d records for invalid request", ledger.Len())
			}
		})
	}
}

func TestChargeDeclined(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("%w: card expired", dompayment.ErrCardDeclined)}
	ledger := memory.NewLedger()
	svc := NewService(exec, ledger, nil, nil)

	_, err := svc.Charge(context.Background(), validRequest())
	if apperr.KindOf(err) != apperr.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", err)
	}
	if !errors.Is(err, dompayment.ErrCardDeclined) {
		t.Fatalf("expected decline to stay reachable via errors.Is, got %v", err)
	}
	if ledger.Len() != 0 {
		t.Fatalf("declined charge must not reach the ledger, got %d records", ledger.Len())
	}
}

func TestChargeNetworkFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("card network timeout")}
	svc := NewService(exec, memory.NewLedger(), nil, nil)

	_, err := svc.Charge(context.Background(), validRequest())
	if apperr.KindOf(err) != apperr.Unavailable {
		t.Fatalf("expected Unavailable, got %v", err)
	}
}

func TestChargeLedgerFailure(t *testing.T) {
	exec := &fakeExecutor{}
	ledger := &failingLedger{}
	alerts := &capturingPublisher{}
	svc := NewService(exec, ledger, alerts, nil)

	_, err := svc.Charge(context.Background(), validRequest())
	if apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
	// The charge executed; only the record failed. Nothing may retry either.
	if exec.calls != 1 {
		t.Fatalf("expected exactly one charge execution, got %d", exec.calls)
	}
	if ledger.attempts != 1 {
		t.Fatalf("expected exactly one insert attempt, got %d", ledger.attempts)
	}
	if len(alerts.events) != 1 {
		t.Fatalf("expected one reconciliation alert, got %d", len(alerts.events))
	}
	evt, ok := alerts.events[0].(dompayment.UnrecordedCharge)
	if !ok {
		t.Fatalf("expected UnrecordedCharge event, got %T", alerts.events[0])
	}
	if evt.TransactionID != "txn-1" {
		t.Fatalf("alert carries wrong transaction id: %q", evt.TransactionID)
	}
}

func TestChargeDistinctTransactionIDs(t *testing.T) {
	exec := &fakeExecutor{}
	ledger := memory.NewLedger()
	svc := NewService(exec, ledger, nil, nil)

	first, err := svc.Charge(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("first Charge: %v", err)
	}
	second, err := svc.Charge(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("second Charge: %v", err)
	}
	if first.TransactionID == second.TransactionID {
		t.Fatalf("identical requests must yield distinct transactions, both got %q", first.TransactionID)
	}
	if ledger.Len() != 2 {
		t.Fatalf("expected 2 ledger records, got %d", ledger.Len())
	}
}
