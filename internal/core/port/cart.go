package port

import (
	"context"

	"github.com/adiallo/orderflow/internal/core/domain"
)

//go:generate mockgen -source=cart.go -destination=mock/cart.go -package=mock
type CartProvider interface {
	// GetContent resolves the requester's current cart and list.
	GetContent(ctx context.Context, userID string) (*domain.CartContent, error)
	// Remove deletes a source aggregate once its ownership has transferred
	// into an order snapshot.
	Remove(ctx context.Context, source *domain.SourceCart) error
}
