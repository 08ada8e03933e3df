package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

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

const orderCodeLength = 5

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	catalog   *entity.Catalog
	payment   service.PaymentGateway
	mail      service.MailGateway
	oplog     service.OperationalLog
	logger    *slog.Logger

	now func() time.Time
}

// CheckoutServiceParams holds dependencies for checkoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	CartRepo  repository.CartRepository
	UserRepo  repository.UserRepository
	OrderRepo repository.OrderRepository
	Catalog   *entity.Catalog
	Payment   service.PaymentGateway
	Mail      service.MailGateway
	Oplog     service.OperationalLog
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		cartRepo:  params.CartRepo,
		userRepo:  params.UserRepo,
		orderRepo: params.OrderRepo,
		catalog:   params.Catalog,
		payment:   params.Payment,
		mail:      params.Mail,
		oplog:     params.Oplog,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts a cart into an order. Everything up to and including the
// charge can fail the request; once the charge clears the checkout has
// succeeded and the remaining steps (persist order, delete cart, email the
// receipt) only log on failure. A declined retry after a partial failure
// would double-charge, so the caller is told success instead.
func (srv *checkoutService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	srv.log(ctx).Info("Starting checkout", slog.String("cart_id", input.CartID))

	cart, err := srv.loadCart(ctx, input.CartID, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyCart, "cart has no items")
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	cart.RecomputeTotals(srv.catalog)

	chargeID, err := srv.payment.Charge(ctx, service.ChargeInput{
		Amount:       toMinorUnits(cart.Payment.Total),
		Currency:     cart.Payment.Currency,
		Source:       input.PaymentToken,
		ReceiptEmail: user.Email,
	})
	if err != nil {
		srv.log(ctx).Error("Charge failed",
			slog.String("cart_id", cart.ID),
			slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPaymentFailed, "charge declined")
	}

	order := srv.buildOrder(cart, user, chargeID)

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		// The charge already cleared; losing the order record is an
		// operational problem, not the customer's.
		srv.log(ctx).Error("Failed to persist order after successful charge",
			slog.String("order_number", order.Number),
			slog.String("charge_id", chargeID),
			slog.Any("error", err))
		srv.recordFailure(ctx, "order persist failed", map[string]any{
			"orderNumber": order.Number,
			"chargeId":    chargeID,
			"error":       err.Error(),
		})
	}

	if err := srv.cartRepo.Delete(ctx, cart.ID); err != nil {
		srv.log(ctx).Error("Failed to delete cart after checkout",
			slog.String("cart_id", cart.ID),
			slog.Any("error", err))
		srv.recordFailure(ctx, "cart cleanup failed", map[string]any{
			"cartId": cart.ID,
			"error":  err.Error(),
		})
	}

	if _, err := srv.mail.Send(ctx, user.Email, receiptSubject(order), receiptBody(user, order)); err != nil {
		srv.log(ctx).Error("Failed to send order receipt",
			slog.String("order_number", order.Number),
			slog.String("email", user.Email),
			slog.Any("error", err))
		srv.recordFailure(ctx, "receipt email failed", map[string]any{
			"orderNumber": order.Number,
			"error":       err.Error(),
		})
	}

	srv.log(ctx).Info("Checkout completed",
		slog.String("order_number", order.Number),
		slog.String("charge_id", chargeID))

	return &usecase.CheckoutOutput{OrderNumber: order.Number, ChargeID: chargeID}, nil
}

// recordFailure appends a best-effort failure to the durable error trail.
func (srv *checkoutService) recordFailure(ctx context.Context, message string, data map[string]any) {
	if err := srv.oplog.Error(message, data); err != nil {
		srv.log(ctx).Error("Failed to record operational error", slog.Any("error", err))
	}
}

// loadCart mirrors cartService.load; checkout needs the same ownership and
// expiry gates before it touches money.
func (srv *checkoutService) loadCart(ctx context.Context, cartID, userID string) (*entity.Cart, error) {
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

// buildOrder snapshots the cart into an immutable order record. The order
// number is a short random code plus the creation timestamp in milliseconds,
// readable over the phone yet unique enough for the store's exclusive create
// to backstop.
func (srv *checkoutService) buildOrder(cart *entity.Cart, user *entity.User, chargeID string) *entity.Order {
	createdAt := srv.now()

	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, ok := srv.catalog.Lookup(line.ProductID)
		if !ok {
			continue
		}
		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	code, err := util.RandomID(orderCodeLength)
	if err != nil {
		// crypto/rand failing is unrecoverable anyway; fall back to the
		// timestamp alone rather than abort a paid checkout.
		code = "ORDER"
	}

	return &entity.Order{
		Number:    strings.ToUpper(code) + "-" + strconv.FormatInt(createdAt.UnixMilli(), 10),
		Customer:  user.ID,
		ChargeID:  chargeID,
		Items:     items,
		Totals:    cart.Payment,
		CreatedAt: createdAt,
	}
}

// toMinorUnits converts a major-unit amount to integer minor units,
// rounding to absorb float drift.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func receiptSubject(order *entity.Order) string {
	return "Your order " + order.Number
}

func receiptBody(user *entity.User, order *entity.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\nThanks for your order %s.\n\n", user.FullName(), order.Number)
	for _, item := range order.Items {
		fmt.Fprintf(&sb, "%d x %s - %.2f %s\n", item.Quantity, item.Name, item.Price.Total, item.Price.Currency)
	}
	fmt.Fprintf(&sb, "\nTotal: %.2f %s (tax %.2f)\n", order.Totals.Total+order.Totals.Tax, order.Totals.Currency, order.Totals.Tax)

	return sb.String()
}
