package cardnetwork

import (
	"context"
	"errors"
	"testing"
	"time"

	dompayment "cartpay/internal/domain/payment"
)

var testNow = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

func request(number string, month, year int32) dompayment.ChargeRequest {
	return dompayment.ChargeRequest{
		Amount: dompayment.Money{CurrencyCode: "USD", Units: 10},
		CreditCard: dompayment.CardInfo{
			Number:          number,
			CVV:             123,
			ExpirationMonth: month,
			ExpirationYear:  year,
		},
	}
}

func TestExecuteAcceptedCards(t *testing.T) {
	exec := NewWithClock(func() time.Time { return testNow })

	cases := []struct {
		name   string
		number string
	}{
		{"visa", "4432801561520454"},
		{"mastercard 51", "5105105105105100"},
		{"mastercard 2-series", "2223000048400011"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := exec.Execute(context.Background(), request(tc.number, 1, 2039))
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if result.TransactionID == "" {
				t.Fatal("expected a transaction id")
			}
		})
	}
}

func TestExecuteDeclines(t *testing.T) {
	exec := NewWithClock(func() time.Time { return testNow })

	cases := []struct {
		name   string
		req    dompayment.ChargeRequest
	}{
		{"too short", request("123456789012", 1, 2039)},
		{"non-digits", request("4432-8015-6152-0454", 1, 2039)},
		{"amex not accepted", request("378282246310005", 1, 2039)},
		{"expired last year", request("4432801561520454", 12, 2025)},
		{"expired last month", request("4432801561520454", 2, 2026)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := exec.Execute(context.Background(), tc.req)
			if !errors.Is(err, dompayment.ErrCardDeclined) {
				t.Fatalf("expected ErrCardDeclined, got %v", err)
			}
		})
	}
}

func TestExecuteCurrentMonthStillValid(t *testing.T) {
	exec := NewWithClock(func() time.Time { return testNow })

	// A card expiring this month is accepted through the end of the month.
	if _, err := exec.Execute(context.Background(), request("4432801561520454", 3, 2026)); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestExecuteDistinctTransactionIDs(t *testing.T) {
	exec := NewWithClock(func() time.Time { return testNow })

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		result, err := exec.Execute(context.Background(), request("4432801561520454", 1, 2039))
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if seen[result.TransactionID] {
			t.Fatalf("transaction id %q repeated", result.TransactionID)
		}
		seen[result.TransactionID] = true
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	exec := NewWithClock(func() time.Time { return testNow })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exec.Execute(ctx, request("4432801561520454", 1, 2039)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
