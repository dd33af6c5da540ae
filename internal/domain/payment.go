package domain

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentStatus represents the outcome of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// PaymentMethod represents how a payment was made.
type PaymentMethod string

const (
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// PaymentMethods lists the selectable methods in display order.
var PaymentMethods = []PaymentMethod{PaymentMethodUPI, PaymentMethodCard, PaymentMethodWallet}

// ParsePaymentMethod normalises a method name. An empty name yields UPI.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PaymentMethodUPI, nil
	}
	for _, m := range PaymentMethods {
		if PaymentMethod(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// AmountScale is the number of decimal places an amount may carry.
const AmountScale = 2

// ValidAmount reports whether a is a positive amount in whole paise.
func ValidAmount(a decimal.Decimal) bool {
	return a.IsPositive() && a.Equal(a.Truncate(AmountScale))
}

// PaymentID identifies a payment. Backends encode it either as a JSON string or
// a JSON number; both decode to the same textual form.
type PaymentID string

// UnmarshalJSON accepts strings and numbers.
func (id *PaymentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PaymentID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("payment id: %w", err)
	}
	*id = PaymentID(n.String())
	return nil
}

// Payment is a single payment record as exposed by the payments API.
type Payment struct {
	ID        PaymentID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Receiver  string          `json:"receiver"`
	Method    PaymentMethod   `json:"method"`
	Status    PaymentStatus   `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewPayment is the body of a payment creation request.
type NewPayment struct {
	Amount   decimal.Decimal `json:"amount"`
	Receiver string          `json:"receiver"`
	Status   PaymentStatus   `json:"status"`
	Method   PaymentMethod   `json:"method"`
}
