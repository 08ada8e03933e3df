package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "sliceco/internal/delivery/context"
	"sliceco/internal/delivery/http/response"
	"sliceco/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// checkoutRequest is the payload for converting a cart into an order.
type checkoutRequest struct {
	CartID       string `json:"cartId" validate:"required"`
	PaymentToken string `json:"paymentToken" validate:"required"`
}

// checkoutResponse reports the completed checkout.
type checkoutResponse struct {
	OrderNumber string `json:"orderNumber"`
	ChargeID    string `json:"chargeId"`
}

// CheckoutHandler holds dependencies for the checkout handler.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, logger: logger}
}

// Checkout charges the cart and records the resulting order.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Checkout(c.Request().Context(), &usecase.CheckoutInput{
		CartID:       req.CartID,
		UserID:       deliverycontext.GetUserID(c),
		PaymentToken: req.PaymentToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, checkoutResponse{
		OrderNumber: output.OrderNumber,
		ChargeID:    output.ChargeID,
	}, "Order placed successfully")
}
