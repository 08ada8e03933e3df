package usecase

import (
	"context"

	"sliceco/internal/domain/entity"
)

// MergeItemInput identifies a cart mutation: fold quantity of a catalog
// product into the cart owned by the calling user.
type MergeItemInput struct {
	CartID    string
	UserID    string
	ProductID int
	Quantity  int
}

// CartUsecase maintains the line-item set and derived totals of carts.
type CartUsecase interface {
	// Create allocates a new empty cart owned by the user.
	Create(ctx context.Context, userID string) (*entity.Cart, error)

	// Get returns the cart, verifying the caller owns it.
	Get(ctx context.Context, cartID, userID string) (*entity.Cart, error)

	// MergeItem folds a line item into the cart and recomputes the totals
	// from scratch.
	MergeItem(ctx context.Context, input *MergeItemInput) (*entity.Cart, error)
}
