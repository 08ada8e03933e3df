// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "sliceco/internal/delivery/context"
	"sliceco/internal/domain/entity"
	domainerrors "sliceco/internal/domain/errors"
	"sliceco/internal/domain/repository"
	"sliceco/internal/domain/service"
	"sliceco/internal/usecase"
	"sliceco/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const idLength = 20

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with a freshly allocated id and a salted
// password hash. The plaintext password is dropped here and never stored.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Registering account", slog.String("email", input.Email))

	userID, err := util.RandomID(idLength)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate user id")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to hash password")
	}

	user := &entity.User{
		ID:             userID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		HashedPassword: hashedPassword,
		Address1:       input.Address1,
		Address2:       input.Address2,
		City:           input.City,
		State:          input.State,
		PostalCode:     input.PostalCode,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "user id collision")
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("Account registered", slog.String("user_id", userID))

	return user, nil
}

// Get returns the account record.
func (srv *accountService) Get(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// Update applies a partial profile update through read-modify-write; the
// store layer replaces documents wholesale, so the current record is loaded
// first and only the supplied fields change.
func (srv *accountService) Update(ctx context.Context, input *usecase.UpdateAccountInput) error {
	srv.log(ctx).Info("Updating account", slog.String("user_id", input.UserID))

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to find user")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Address1 != "" {
		user.Address1 = input.Address1
	}
	if input.Address2 != "" {
		user.Address2 = input.Address2
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.State != "" {
		user.State = input.State
	}
	if input.PostalCode != "" {
		user.PostalCode = input.PostalCode
	}
	if input.Password != "" {
		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during update", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrInternalError, "failed to hash password")
		}
		user.HashedPassword = hashedPassword
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user deleted concurrently")
		}

		return errors.Wrap(err, "failed to update user")
	}

	return nil
}

// Delete removes the account.
func (srv *accountService) Delete(ctx context.Context, userID string) error {
	srv.log(ctx).Info("Deleting account", slog.String("user_id", userID))

	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}
