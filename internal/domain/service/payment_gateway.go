package service

import "context"

// ChargeInput carries everything the payment collaborator needs for one charge.
type ChargeInput struct {
	// Amount is in minor currency units (cents for USD).
	Amount int64
	// Currency is the 3-letter ISO code.
	Currency string
	// Source is the opaque, client-supplied payment token.
	Source string
	// ReceiptEmail receives the gateway's own receipt.
	ReceiptEmail string
}

// PaymentGateway is the contract the checkout workflow requires from the
// external payment collaborator. A charge either yields an opaque charge
// reference or a definite failure; no partial or pending state is modeled,
// and there is no way to abort a charge in flight.
type PaymentGateway interface {
	// Charge submits a payment and returns the gateway's charge reference.
	Charge(ctx context.Context, input ChargeInput) (chargeID string, err error)
}
