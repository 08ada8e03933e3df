// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"sliceco/internal/domain/entity"
)

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
}

// UpdateAccountInput defines a partial profile update. Empty fields are left
// unchanged; a non-empty password is re-hashed before storage.
type UpdateAccountInput struct {
	UserID     string
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Get(ctx context.Context, userID string) (*entity.User, error)
	Update(ctx context.Context, input *UpdateAccountInput) error
	Delete(ctx context.Context, userID string) error
}
