package domain_test

import (
	"testing"
	"time"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePaymentMethod(t *testing.T) {
	m, err := domain.ParsePaymentMethod("momo")
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodMomo, m)

	m, err = domain.ParsePaymentMethod("localPayment")
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodLocal, m)

	_, err = domain.ParsePaymentMethod("cash")
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentMethod)

	_, err = domain.ParsePaymentMethod("")
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentMethod)
}

func TestPaymentRecord_Eligible(t *testing.T) {
	tests := []struct {
		name    string
		payment domain.PaymentRecord
		exp     bool
	}{
		{
			name:    "momo is always eligible",
			payment: domain.PaymentRecord{Method: domain.PaymentMethodMomo},
			exp:     true,
		},
		{
			name:    "local without validation is not",
			payment: domain.PaymentRecord{Method: domain.PaymentMethodLocal},
			exp:     false,
		},
		{
			name: "validated local is eligible",
			payment: domain.PaymentRecord{
				Method: domain.PaymentMethodLocal,
				Status: domain.StatusValue{ID: domain.PaymentStatusValidated},
			},
			exp: true,
		},
		{
			name: "validation on momo is redundant but harmless",
			payment: domain.PaymentRecord{
				Method: domain.PaymentMethodMomo,
				Status: domain.StatusValue{ID: domain.PaymentStatusValidated},
			},
			exp: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, test.payment.Eligible())
		})
	}
}

func TestDedupePayments(t *testing.T) {
	amount := func(s string) decimal.Decimal { return decimal.MustParse(s) }

	history := []domain.PaymentRecord{
		{ID: "a", Amount: amount("10")},
		{ID: "b", Amount: amount("20")},
		{ID: "a", Amount: amount("15"), TransactionID: "tx-2"},
		{ID: "c", Amount: amount("30")},
	}

	result := domain.DedupePayments(history)

	assert.Len(t, result, 3)
	// first position kept, last write wins
	assert.Equal(t, "a", result[0].ID)
	assert.Equal(t, amount("15"), result[0].Amount)
	assert.Equal(t, "tx-2", result[0].TransactionID)
	assert.Equal(t, "b", result[1].ID)
	assert.Equal(t, "c", result[2].ID)
}

func TestDedupePayments_Empty(t *testing.T) {
	assert.Empty(t, domain.DedupePayments(nil))
}

func TestPaymentInput_Record(t *testing.T) {
	in := domain.PaymentInput{
		Method: "momo",
		Amount: "40",
		Phone:  "770000000",
	}

	rec, err := in.Record()
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodMomo, rec.Method)
	assert.Equal(t, decimal.MustParse("40"), rec.Amount)
	// identity and paid date are defaulted
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.DatePaid.IsZero())
}

func TestPaymentInput_Record_KeepsSubmittedIdentity(t *testing.T) {
	paid := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	in := domain.PaymentInput{
		ID:       "pay-1",
		Method:   "localPayment",
		Amount:   60,
		DatePaid: paid,
	}

	rec, err := in.Record()
	assert.NoError(t, err)
	assert.Equal(t, "pay-1", rec.ID)
	assert.Equal(t, paid, rec.DatePaid)
}

func TestPaymentInput_Record_UnknownMethod(t *testing.T) {
	_, err := domain.PaymentInput{Method: "cash", Amount: 10}.Record()
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentMethod)
}

func TestPaymentInput_Empty(t *testing.T) {
	assert.True(t, domain.PaymentInput{}.Empty())
	assert.False(t, domain.PaymentInput{Method: "momo"}.Empty())
	assert.False(t, domain.PaymentInput{Amount: 0}.Empty())
}
