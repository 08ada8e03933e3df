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
	"sliceco/internal/usecase"
	"sliceco/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo repository.CartRepository
	catalog  *entity.Catalog
	cartTTL  time.Duration
	logger   *slog.Logger

	now func() time.Time
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Config   *config.Config
	CartRepo repository.CartRepository
	Catalog  *entity.Catalog
	Logger   *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo: params.CartRepo,
		catalog:  params.Catalog,
		cartTTL:  params.Config.Cart.TTL,
		logger:   params.Logger,
		now:      time.Now,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create allocates an empty cart owned by the user. The cart carries an
// expiry so the garbage collector can sweep abandoned ones.
func (srv *cartService) Create(ctx context.Context, userID string) (*entity.Cart, error) {
	srv.log(ctx).Info("Creating cart", slog.String("user_id", userID))

	cartID, err := util.RandomID(idLength)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate cart id")
	}

	cart := &entity.Cart{
		ID:        cartID,
		UserID:    userID,
		Items:     []entity.LineItem{},
		Payment:   entity.Price{Currency: "USD"},
		ExpiresAt: srv.now().Add(srv.cartTTL),
	}

	if err := srv.cartRepo.Create(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrCartAlreadyExists) {
			return nil, errors.Wrap(domainerrors.ErrInternalError, "cart id collision")
		}

		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

// Get returns the cart after an ownership check. A cart owned by someone else
// is reported as forbidden, not as missing, so a legitimate owner debugging a
// shared id sees the real cause.
func (srv *cartService) Get(ctx context.Context, cartID, userID string) (*entity.Cart, error) {
	return srv.load(ctx, cartID, userID)
}

// MergeItem validates the product against the catalog, folds the line item
// into the cart, recomputes the totals from scratch and persists the result.
func (srv *cartService) MergeItem(ctx context.Context, input *usecase.MergeItemInput) (*entity.Cart, error) {
	srv.log(ctx).Info("Merging cart item",
		slog.String("cart_id", input.CartID),
		slog.Int("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity))

	if _, ok := srv.catalog.Lookup(input.ProductID); !ok {
		return nil, errors.Wrapf(domainerrors.ErrInvalidProduct, "unknown product %d", input.ProductID)
	}
	if input.Quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrInvalidProduct, "quantity must be positive")
	}

	cart, err := srv.load(ctx, input.CartID, input.UserID)
	if err != nil {
		return nil, err
	}

	cart.MergeItem(entity.LineItem{ProductID: input.ProductID, Quantity: input.Quantity})
	cart.RecomputeTotals(srv.catalog)

	if err := srv.cartRepo.Update(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartNotFound, "cart deleted concurrently")
		}

		return nil, errors.Wrap(err, "failed to update cart")
	}

	return cart, nil
}

// load fetches a cart and enforces ownership and expiry. An expired cart
// still on disk is treated as gone.
func (srv *cartService) load(ctx context.Context, cartID, userID string) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartNotFound, "cart not found")
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	if cart.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "cart owned by another user")
	}

	if cart.Expired(srv.now()) {
		return nil, errors.Wrap(domainerrors.ErrCartNotFound, "cart expired")
	}

	return cart, nil
}
