package impl

import (
	"context"
	"testing"
	"time"

	"sliceco/config"
	"sliceco/internal/domain/entity"
	domainerrors "sliceco/internal/domain/errors"
	"sliceco/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(cartRepo *fakeCartRepo, now time.Time) *cartService {
	cfg := &config.Config{}
	cfg.Cart.TTL = time.Hour

	service := NewCartService(CartServiceParams{
		Config:   cfg,
		CartRepo: cartRepo,
		Catalog:  entity.DefaultCatalog(),
		Logger:   testLogger(),
	}).(*cartService)
	service.now = func() time.Time { return now }

	return service
}

func TestCartService_Create(t *testing.T) {
	cartRepo := newFakeCartRepo()
	now := time.Now()
	service := newCartService(cartRepo, now)

	cart, err := service.Create(context.Background(), "user1")

	require.NoError(t, err)
	assert.Len(t, cart.ID, 20)
	assert.Equal(t, "user1", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "USD", cart.Payment.Currency)
	assert.True(t, cart.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestCartService_Get(t *testing.T) {
	cartRepo := newFakeCartRepo()
	service := newCartService(cartRepo, time.Now())

	created, err := service.Create(context.Background(), "user1")
	require.NoError(t, err)

	got, err := service.Get(context.Background(), created.ID, "user1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCartService_Get_NotFound(t *testing.T) {
	service := newCartService(newFakeCartRepo(), time.Now())

	_, err := service.Get(context.Background(), "missing", "user1")

	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}

func TestCartService_Get_WrongOwner(t *testing.T) {
	cartRepo := newFakeCartRepo()
	service := newCartService(cartRepo, time.Now())

	created, err := service.Create(context.Background(), "user1")
	require.NoError(t, err)

	_, err = service.Get(context.Background(), created.ID, "user2")

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCartService_Get_Expired(t *testing.T) {
	cartRepo := newFakeCartRepo()
	now := time.Now()
	service := newCartService(cartRepo, now)

	require.NoError(t, cartRepo.Create(context.Background(), &entity.Cart{
		ID:        "expiredcart123456789",
		UserID:    "user1",
		ExpiresAt: now.Add(-time.Minute),
	}))

	_, err := service.Get(context.Background(), "expiredcart123456789", "user1")

	// An expired cart still on disk behaves as if already collected.
	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}

func TestCartService_MergeItem(t *testing.T) {
	cartRepo := newFakeCartRepo()
	service := newCartService(cartRepo, time.Now())

	created, err := service.Create(context.Background(), "user1")
	require.NoError(t, err)

	cart, err := service.MergeItem(context.Background(), &usecase.MergeItemInput{
		CartID:    created.ID,
		UserID:    "user1",
		ProductID: 298740,
		Quantity:  2,
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 40.0, cart.Payment.Total, 0.001)
	assert.InDelta(t, 3.52, cart.Payment.Tax, 0.001)
}

func TestCartService_MergeItem_AccumulatesAndReprices(t *testing.T) {
	cartRepo := newFakeCartRepo()
	service := newCartService(cartRepo, time.Now())

	created, err := service.Create(context.Background(), "user1")
	require.NoError(t, err)

	_, err = service.MergeItem(context.Background(), &usecase.MergeItemInput{
		CartID: created.ID, UserID: "user1", ProductID: 298740, Quantity: 2,
	})
	require.NoError(t, err)

	cart, err := service.MergeItem(context.Background(), &usecase.MergeItemInput{
		CartID: created.ID, UserID: "user1", ProductID: 298740, Quantity: 1,
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 60.0, cart.Payment.Total, 0.001)
	assert.InDelta(t, 5.28, cart.Payment.Tax, 0.001)
}

func TestCartService_MergeItem_UnknownProduct(t *testing.T) {
	cartRepo := newFakeCartRepo()
	service := newCartService(cartRepo, time.Now())

	created, err := service.Create(context.Background(), "user1")
	require.NoError(t, err)

	_, err = service.MergeItem(context.Background(), &usecase.MergeItemInput{
		CartID: created.ID, UserID: "user1", ProductID: 999999, Quantity: 1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidProduct)
}

func TestCartService_MergeItem_InvalidQuantity(t *testing.T) {
	cartRepo := newFakeCartRepo()
	service := newCartService(cartRepo, time.Now())

	created, err := service.Create(context.Background(), "user1")
	require.NoError(t, err)

	// Zero and negative quantities are invalid product input, same as an
	// unknown catalog id.
	_, err = service.MergeItem(context.Background(), &usecase.MergeItemInput{
		CartID: created.ID, UserID: "user1", ProductID: 298740, Quantity: 0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProduct)

	_, err = service.MergeItem(context.Background(), &usecase.MergeItemInput{
		CartID: created.ID, UserID: "user1", ProductID: 298740, Quantity: -1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProduct)
}

func TestCartService_MergeItem_WrongOwner(t *testing.T) {
	cartRepo := newFakeCartRepo()
	service := newCartService(cartRepo, time.Now())

	created, err := service.Create(context.Background(), "user1")
	require.NoError(t, err)

	_, err = service.MergeItem(context.Background(), &usecase.MergeItemInput{
		CartID: created.ID, UserID: "user2", ProductID: 298740, Quantity: 1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
