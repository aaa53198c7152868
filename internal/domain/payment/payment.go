package payment

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCardDeclined covers every rejection by the card network: bad number,
	// unaccepted brand, expired card. Declines have no side effect on money.
	ErrCardDeclined = errors.New("payment: card declined")
)

// Money is an amount in a single currency, split into whole units and
// nanos (1e-9 units), matching the upstream wire shape.
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Units        int64  `json:"units"`
	Nanos        int32  `json:"nanos"`
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	if m.Units < 0 || m.Nanos < 0 {
		return false
	}
	return m.Units > 0 || m.Nanos > 0
}

func (m Money) String() string {
	return fmt.Sprintf("%s%d.%09d", m.CurrencyCode, m.Units, m.Nanos)
}

// CardInfo is the opaque payment credential. Only shape is validated here;
// the card network owns acceptance.
type CardInfo struct {
	Number          string `json:"credit_card_number"`
	CVV             int32  `json:"credit_card_cvv"`
	ExpirationMonth int32  `json:"credit_card_expiration_month"`
	ExpirationYear  int32  `json:"credit_card_expiration_year"`
}

// LastFour returns the card number's last four digits for logging. The full
// number must never be logged.
func (c CardInfo) LastFour() string {
	if len(c.Number) < 4 {
		return "****"
	}
	return "****" + c.Number[len(c.Number)-4:]
}

type ChargeRequest struct {
	Amount     Money
	CreditCard CardInfo
}

// ChargeResult carries the network-assigned transaction id, unique per
// successful charge.
type ChargeResult struct {
	TransactionID string
}

// UnrecordedCharge is published when a charge succeeded but its ledger record
// could not be committed. It exists solely so the gap is surfaced for manual
// reconciliation; nothing retries the write.
type UnrecordedCharge struct {
	TransactionID string
	Amount        Money
	OccurredAt    time.Time
}

func (UnrecordedCharge) EventName() string { return "payment.charge_unrecorded" }
