package port

import (
	"context"

	"github.com/adiallo/orderflow/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order, events []domain.Event) (*domain.Order, error)
	// UpdateOrder performs a compare-and-swap on the order's version and
	// returns domain.ErrConflictingData when a concurrent writer won.
	UpdateOrder(ctx context.Context, order *domain.Order, events []domain.Event) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string, filter domain.UserListFilter) ([]*domain.Order, error)
	ListOrdersByStatus(ctx context.Context, statusID string) ([]*domain.Order, error)
	SearchOrders(ctx context.Context, query *domain.SearchQuery) (*domain.Page, error)

	// Profile
	ReadProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// OutboxSource feeds the event dispatcher with pending records.
type OutboxSource interface {
	FetchPendingEvents(ctx context.Context, limit int) ([]domain.OutboxRecord, error)
	MarkEventSent(ctx context.Context, recordID int64) error
}
