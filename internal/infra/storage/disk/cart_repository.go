package disk

import (
	"context"

	"sliceco/internal/domain/entity"
	"sliceco/internal/domain/repository"

	"github.com/pkg/errors"
)

// cartRepository implements repository.CartRepository on the document store.
type cartRepository struct {
	store repository.DocumentStore
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(store repository.DocumentStore) repository.CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	if err := r.store.Create(ctx, repository.CollectionCarts, cart.ID, cart); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.ErrCartAlreadyExists
		}

		return errors.Wrap(err, "failed to create cart document")
	}

	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id string) (*entity.Cart, error) {
	var cart entity.Cart
	if err := r.store.Read(ctx, repository.CollectionCarts, id, &cart); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to read cart document")
	}

	return &cart, nil
}

func (r *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	if err := r.store.Update(ctx, repository.CollectionCarts, cart.ID, cart); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrCartNotFound
		}

		return errors.Wrap(err, "failed to update cart document")
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, repository.CollectionCarts, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrCartNotFound
		}

		return errors.Wrap(err, "failed to delete cart document")
	}

	return nil
}
