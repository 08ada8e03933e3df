package impl

import (
	"context"
	"log/slog"
	"time"

	"sliceco/config"
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

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	tokenTTL  time.Duration
	logger    *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Config    *config.Config
	TokenRepo repository.TokenRepository
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		tokenRepo: params.TokenRepo,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		tokenTTL:  params.Config.Auth.TokenTTL,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue authenticates the credentials and mints a fresh opaque token. A wrong
// password and an unknown user produce the same authentication error so the
// response does not leak which accounts exist.
func (srv *sessionService) Issue(ctx context.Context, userID, password string) (*entity.Token, error) {
	srv.log(ctx).Info("Issuing session token", slog.String("user_id", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAuthenticationFailed, "unknown user")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(password, user.HashedPassword) {
		return nil, errors.Wrap(domainerrors.ErrAuthenticationFailed, "password mismatch")
	}

	tokenID, err := util.RandomID(idLength)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate token id")
	}

	token := &entity.Token{
		ID:        tokenID,
		UserID:    userID,
		ExpiresAt: srv.now().Add(srv.tokenTTL),
	}

	if err := srv.tokenRepo.Create(ctx, token); err != nil {
		if errors.Is(err, repository.ErrTokenAlreadyExists) {
			return nil, errors.Wrap(domainerrors.ErrInternalError, "token id collision")
		}

		return nil, errors.Wrap(err, "failed to create token")
	}

	return token, nil
}

// Validate resolves the token and rejects it when expired. Expired tokens are
// left on disk for the garbage collector rather than deleted inline.
func (srv *sessionService) Validate(ctx context.Context, tokenID string) (*entity.Token, error) {
	token, err := srv.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTokenNotFound, "token not found")
		}

		return nil, errors.Wrap(err, "failed to find token")
	}

	if token.Expired(srv.now()) {
		return nil, errors.Wrap(domainerrors.ErrTokenExpired, "token expired")
	}

	return token, nil
}

// Renew pushes an unexpired token's expiry a full lifetime into the future.
func (srv *sessionService) Renew(ctx context.Context, tokenID string) (*entity.Token, error) {
	srv.log(ctx).Info("Renewing session token", slog.String("token_id", tokenID))

	token, err := srv.Validate(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	token.ExpiresAt = srv.now().Add(srv.tokenTTL)

	if err := srv.tokenRepo.Update(ctx, token); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTokenNotFound, "token revoked concurrently")
		}

		return nil, errors.Wrap(err, "failed to update token")
	}

	return token, nil
}

// Revoke deletes the token record, ending the session immediately.
func (srv *sessionService) Revoke(ctx context.Context, tokenID string) error {
	srv.log(ctx).Info("Revoking session token", slog.String("token_id", tokenID))

	if err := srv.tokenRepo.Delete(ctx, tokenID); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return errors.Wrap(domainerrors.ErrTokenNotFound, "token not found")
		}

		return errors.Wrap(err, "failed to delete token")
	}

	return nil
}
