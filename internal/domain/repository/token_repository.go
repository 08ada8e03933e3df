package repository

import (
	"context"
	"errors"

	"sliceco/internal/domain/entity"
)

// Domain-specific errors for token persistence.
var (
	// ErrTokenNotFound is returned when a token is not found.
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenAlreadyExists is returned when a freshly minted token id collides.
	ErrTokenAlreadyExists = errors.New("token already exists")
)

// TokenRepository defines persistence for opaque session tokens.
type TokenRepository interface {
	// Create persists a newly issued token.
	Create(ctx context.Context, token *entity.Token) error

	// FindByID retrieves a token by its opaque id.
	FindByID(ctx context.Context, id string) (*entity.Token, error)

	// Update replaces an existing token record, typically to extend expiry.
	Update(ctx context.Context, token *entity.Token) error

	// Delete removes a token, ending the session.
	Delete(ctx context.Context, id string) error
}
