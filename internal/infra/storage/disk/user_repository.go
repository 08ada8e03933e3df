package disk

import (
	"context"

	"sliceco/internal/domain/entity"
	"sliceco/internal/domain/repository"

	"github.com/pkg/errors"
)

// userRepository implements repository.UserRepository on the document store.
type userRepository struct {
	store repository.DocumentStore
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(store repository.DocumentStore) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.store.Create(ctx, repository.CollectionUsers, user.ID, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.ErrUserAlreadyExists
		}

		return errors.Wrap(err, "failed to create user document")
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.store.Read(ctx, repository.CollectionUsers, id, &user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to read user document")
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := r.store.Update(ctx, repository.CollectionUsers, user.ID, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update user document")
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, repository.CollectionUsers, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user document")
	}

	return nil
}
