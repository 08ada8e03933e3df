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

// mergeItemRequest is the payload for folding a line item into a cart.
type mergeItemRequest struct {
	ProductID int `json:"id" validate:"required"`
	Quantity  int `json:"quantity" validate:"required,min=1"`
}

// CartHandler holds dependencies for cart-related handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

// Create allocates a new empty cart for the authenticated user.
func (h *CartHandler) Create(c echo.Context) error {
	cart, err := h.uc.Create(c.Request().Context(), deliverycontext.GetUserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, cart, "Cart created successfully")
}

// Get returns the authenticated user's cart.
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.uc.Get(c.Request().Context(), c.Param("id"), deliverycontext.GetUserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "")
}

// MergeItem folds a line item into the cart and returns the repriced cart.
func (h *CartHandler) MergeItem(c echo.Context) error {
	var req mergeItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	cart, err := h.uc.MergeItem(c.Request().Context(), &usecase.MergeItemInput{
		CartID:    c.Param("id"),
		UserID:    deliverycontext.GetUserID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart updated successfully")
}
