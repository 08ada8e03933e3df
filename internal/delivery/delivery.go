// Package delivery defines the contract every inbound surface of the
// application implements, whether it serves requests or background loops.
package delivery

import "context"

// Delivery is a long-running server started by the application container.
type Delivery interface {
	// Serve runs until the delivery is stopped through its lifecycle hook.
	Serve(ctx context.Context) error
}
