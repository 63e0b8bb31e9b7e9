package domain_test

import (
	"testing"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSourceKind_Label(t *testing.T) {
	assert.Equal(t, domain.OrderTypePurchase, domain.SourceKindCart.Label())
	assert.Equal(t, domain.OrderTypeCommand, domain.SourceKindList.Label())
	// unknown kinds default to a purchase
	assert.Equal(t, domain.OrderTypePurchase, domain.SourceKind("").Label())
}

func TestOrder_LeftToPay(t *testing.T) {
	order := &domain.Order{
		TotalAmount: decimal.MustParse("100"),
		AmountPaid:  decimal.MustParse("40"),
	}
	assert.Equal(t, decimal.MustParse("60"), order.LeftToPay())

	order.AmountPaid = decimal.MustParse("140")
	assert.Equal(t, decimal.MustParse("-40"), order.LeftToPay())
}
