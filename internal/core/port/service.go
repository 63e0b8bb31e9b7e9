package port

import (
	"context"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/govalues/decimal"
)

// CreateOrderRequest carries the checkout submission.
type CreateOrderRequest struct {
	SourceKind domain.SourceKind
	Payment    domain.PaymentInput
}

// SearchRequest is the flat, query-string-shaped search input. Numeric
// fields stay strings here, the builder owns their parsing.
type SearchRequest struct {
	Order          string
	SortBy         string
	Limit          string
	Offset         string
	Search         string
	Price          []string
	Dates          []string
	Status         string
	LocalStatus    string
	SearchInFields []string
	Extra          map[string]string
}

// PaymentHistory is the per-order installment listing.
type PaymentHistory struct {
	Payments    []domain.PaymentRecord `json:"payment"`
	TotalAmount decimal.Decimal        `json:"totalAmount"`
	AmountPaid  decimal.Decimal        `json:"amountPaid"`
	LeftToPay   decimal.Decimal        `json:"leftToPay"`
}

type Service interface {
	CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*domain.Order, error)

	ApplyInstallmentPayment(ctx context.Context, orderID string, userID string, payment domain.PaymentInput) (*domain.Order, error)
	MergeQrPaymentConfirmation(ctx context.Context, orderID string, userID string, payment domain.PaymentInput) (*domain.Order, error)

	CancelOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error)
	SoftDeleteOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, userID string, status domain.StatusValue) (*domain.Order, error)
	UpdateLocalStatus(ctx context.Context, orderID string, userID string, status domain.StatusValue) (*domain.Order, error)

	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, filter domain.UserListFilter) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, statusID string) ([]*domain.Order, error)
	ListInstallmentPayments(ctx context.Context, orderID string) (*PaymentHistory, error)

	Search(ctx context.Context, mode domain.SearchMode, req SearchRequest) (*domain.Page, error)
	PricesRange(ctx context.Context, req SearchRequest) ([2]decimal.Decimal, error)

	StatusEnumeration() domain.StatusSet
	LocalStatusEnumeration() domain.StatusSet
	TypeEnumeration() []domain.OrderType
}
