package repository

import (
	"context"
	"errors"

	"sliceco/internal/domain/entity"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when a cart is not found. This is a normal
	// outcome for writes racing the garbage collector, not a crash condition.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartAlreadyExists is returned when a freshly allocated cart id collides.
	ErrCartAlreadyExists = errors.New("cart already exists")
)

// CartRepository defines persistence for shopping carts.
type CartRepository interface {
	// Create persists a new cart.
	Create(ctx context.Context, cart *entity.Cart) error

	// FindByID retrieves a cart by its opaque id.
	FindByID(ctx context.Context, id string) (*entity.Cart, error)

	// Update fully replaces an existing cart.
	Update(ctx context.Context, cart *entity.Cart) error

	// Delete removes a cart, either after checkout or during garbage collection.
	Delete(ctx context.Context, id string) error
}
