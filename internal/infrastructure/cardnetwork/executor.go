// Package cardnetwork stands in for the external card network. The charge
// itself is opaque to the payment service: one call, pass or fail, and a
// transaction id on success.
package cardnetwork

import (
	"context"
	"fmt"
	"regexp"
	"time"

	dompayment "cartpay/internal/domain/payment"

	"github.com/google/uuid"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	visaPattern       = regexp.MustCompile(`^4`)
	mastercardPattern = regexp.MustCompile(`^(5[1-5]|2[2-7][2-9][0-9])`)
)

// Executor validates the card the way the network would (number shape,
// accepted brands, expiry) and mints a uuid transaction id per accepted
// charge. now is injectable for expiry tests.
type Executor struct {
	now func() time.Time
}

func New() *Executor {
	return &Executor{now: time.Now}
}

// NewWithClock returns an Executor with a fixed clock source.
func NewWithClock(now func() time.Time) *Executor {
	return &Executor{now: now}
}

func (e *Executor) Execute(ctx context.Context, req dompayment.ChargeRequest) (dompayment.ChargeResult, error) {
	select {
	case <-ctx.Done():
		return dompayment.ChargeResult{}, ctx.Err()
	default:
	}

	card := req.CreditCard
	if !cardNumberPattern.MatchString(card.Number) {
		return dompayment.ChargeResult{}, fmt.Errorf("%w: invalid card number", dompayment.ErrCardDeclined)
	}

	brand := cardBrand(card.Number)
	if brand == "unknown" {
		return dompayment.ChargeResult{}, fmt.Errorf("%w: only visa or mastercard is accepted", dompayment.ErrCardDeclined)
	}

	if expired(card, e.now()) {
		return dompayment.ChargeResult{}, fmt.Errorf("%w: card expired %d/%d",
			dompayment.ErrCardDeclined, card.ExpirationMonth, card.ExpirationYear)
	}

	return dompayment.ChargeResult{TransactionID: uuid.NewString()}, nil
}

func cardBrand(number string) string {
	switch {
	case visaPattern.MatchString(number):
		return "visa"
	case mastercardPattern.MatchString(number):
		return "mastercard"
	default:
		return "unknown"
	}
}

func expired(card dompayment.CardInfo, now time.Time) bool {
	nowMonths := int32(now.Year())*12 + int32(now.Month())
	cardMonths := card.ExpirationYear*12 + card.ExpirationMonth
	return nowMonths > cardMonths
}
