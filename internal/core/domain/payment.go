package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// PaymentMethod is the tagged set of supported payment channels.
type PaymentMethod string

const (
	// PaymentMethodLocal is an in-person payment confirmed asynchronously
	// through a generated code.
	PaymentMethodLocal PaymentMethod = "localPayment"
	// PaymentMethodMomo is an instant mobile-money payment.
	PaymentMethodMomo PaymentMethod = "momo"
)

// PaymentStatusValidated marks an out-of-band payment whose code has been
// confirmed.
const PaymentStatusValidated = "validated"

// ParsePaymentMethod maps a wire string onto the tagged set. Unrecognized
// methods are rejected instead of silently skipped.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodLocal:
		return PaymentMethodLocal, nil
	case PaymentMethodMomo:
		return PaymentMethodMomo, nil
	default:
		return "", ErrUnknownPaymentMethod
	}
}

// PaymentRecord is an entry of the order's payment history. It is a value
// snapshot keyed by payment id, never an owned pointer back to the order.
type PaymentRecord struct {
	ID            string          `json:"id"`
	Method        PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Status        StatusValue     `json:"status"`
	Phone         string          `json:"phone,omitempty"`
	MethodTitle   string          `json:"method_title,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	DatePaid      time.Time       `json:"date_paid"`
}

// Eligible reports whether the payment may impact order amounts: mobile-money
// payments always do, local payments only once validated.
func (p PaymentRecord) Eligible() bool {
	if p.Method == PaymentMethodMomo {
		return true
	}
	return p.Method == PaymentMethodLocal && p.Status.ID == PaymentStatusValidated
}

// DedupePayments collapses a payment history by payment identity, last write
// wins. Positions of first occurrence are kept so the history stays ordered.
// This is the idempotency guard against the same external confirmation being
// merged twice.
func DedupePayments(history []PaymentRecord) []PaymentRecord {
	result := make([]PaymentRecord, 0, len(history))
	index := make(map[string]int, len(history))
	for _, p := range history {
		if at, seen := index[p.ID]; seen {
			result[at] = p
			continue
		}
		index[p.ID] = len(result)
		result = append(result, p)
	}
	return result
}

// PaymentInput is a payment event as submitted over the wire. The amount may
// arrive as a number or as a numeric string depending on the producing
// client, so it stays untyped until the normalizer runs.
type PaymentInput struct {
	ID            string      `json:"id"`
	Method        string      `json:"method"`
	Amount        any         `json:"amount"`
	Status        StatusValue `json:"status"`
	Phone         string      `json:"phone"`
	MethodTitle   string      `json:"method_title"`
	TransactionID string      `json:"transaction_id"`
	DatePaid      time.Time   `json:"date_paid"`
}

// Empty reports whether no payment was submitted at all.
func (in PaymentInput) Empty() bool {
	return in.ID == "" && in.Method == "" && in.Amount == nil
}

// Record validates the input and materializes the history entry: the method
// must belong to the tagged set, the amount is normalized, identity and paid
// date are defaulted.
func (in PaymentInput) Record() (PaymentRecord, error) {
	method, err := ParsePaymentMethod(in.Method)
	if err != nil {
		return PaymentRecord{}, err
	}

	rec := PaymentRecord{
		ID:            in.ID,
		Method:        method,
		Amount:        NormalizeAmount(in.Amount),
		Status:        in.Status,
		Phone:         in.Phone,
		MethodTitle:   in.MethodTitle,
		TransactionID: in.TransactionID,
		DatePaid:      in.DatePaid,
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.DatePaid.IsZero() {
		rec.DatePaid = time.Now()
	}
	return rec, nil
}

// PaymentCode is the out-of-band code obtained for a local payment.
type PaymentCode struct {
	Code       string          `json:"code"`
	Amount     decimal.Decimal `json:"amount"`
	DateExpire time.Time       `json:"dateExpire"`
}
