package usecase

import (
	"context"

	"sliceco/internal/domain/entity"
)

// SessionUsecase manages the lifecycle of opaque bearer tokens. Validate is
// the single gate every authenticated operation goes through; callers must
// additionally check the token's owner against the resource where ownership
// matters.
type SessionUsecase interface {
	// Issue authenticates the user's credentials and mints a fresh token.
	Issue(ctx context.Context, userID, password string) (*entity.Token, error)

	// Validate resolves a token id to its record, rejecting absent and
	// expired tokens alike.
	Validate(ctx context.Context, tokenID string) (*entity.Token, error)

	// Renew extends an unexpired token's lifetime. Expired tokens cannot be
	// resurrected.
	Renew(ctx context.Context, tokenID string) (*entity.Token, error)

	// Revoke deletes the token, ending the session.
	Revoke(ctx context.Context, tokenID string) error
}
