package usecase

import "context"

// CheckoutInput carries what the checkout workflow needs: the cart, the
// calling user, and the opaque client-supplied payment token.
type CheckoutInput struct {
	CartID       string
	UserID       string
	PaymentToken string
}

// CheckoutOutput reports the completed checkout.
type CheckoutOutput struct {
	OrderNumber string
	ChargeID    string
}

// CheckoutUsecase converts a non-empty cart into a durable order via an
// external charge. Success is defined by the charge clearing; order
// persistence, cart cleanup and the receipt email are best-effort steps whose
// failures are logged, never retried, and never surfaced to the caller.
type CheckoutUsecase interface {
	Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)
}
