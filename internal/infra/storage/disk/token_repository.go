package disk

import (
	"context"

	"sliceco/internal/domain/entity"
	"sliceco/internal/domain/repository"

	"github.com/pkg/errors"
)

// tokenRepository implements repository.TokenRepository on the document store.
type tokenRepository struct {
	store repository.DocumentStore
}

// NewTokenRepository is the constructor for tokenRepository.
func NewTokenRepository(store repository.DocumentStore) repository.TokenRepository {
	return &tokenRepository{store: store}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.Token) error {
	if err := r.store.Create(ctx, repository.CollectionTokens, token.ID, token); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.ErrTokenAlreadyExists
		}

		return errors.Wrap(err, "failed to create token document")
	}

	return nil
}

func (r *tokenRepository) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	var token entity.Token
	if err := r.store.Read(ctx, repository.CollectionTokens, id, &token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to read token document")
	}

	return &token, nil
}

func (r *tokenRepository) Update(ctx context.Context, token *entity.Token) error {
	if err := r.store.Update(ctx, repository.CollectionTokens, token.ID, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrTokenNotFound
		}

		return errors.Wrap(err, "failed to update token document")
	}

	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, repository.CollectionTokens, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrTokenNotFound
		}

		return errors.Wrap(err, "failed to delete token document")
	}

	return nil
}
