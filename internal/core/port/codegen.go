package port

import (
	"context"

	"github.com/adiallo/orderflow/internal/core/domain"
)

//go:generate mockgen -source=codegen.go -destination=mock/codegen.go -package=mock
type CodeGenerator interface {
	// Generate obtains an out-of-band payment code for a local payment.
	// Callers treat a failure as non-fatal.
	Generate(ctx context.Context, payment *domain.PaymentRecord, order *domain.Order, userID string) (*domain.PaymentCode, error)
}
