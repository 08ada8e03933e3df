package repository

import (
	"context"
	"errors"

	"sliceco/internal/domain/entity"
)

// ErrOrderAlreadyExists is returned when an order number collides with an
// existing record. Order numbers are only probabilistically unique; the
// store's exclusive create is the real backstop.
var ErrOrderAlreadyExists = errors.New("order already exists")

// OrderRepository defines persistence for completed orders. Orders are
// written once at checkout and never modified or deleted by this system.
type OrderRepository interface {
	// Create persists a new order record.
	Create(ctx context.Context, order *entity.Order) error

	// FindByNumber retrieves an order by its human-readable number.
	FindByNumber(ctx context.Context, number string) (*entity.Order, error)
}
