// Package delivery defines the contract every transport adapter
// (HTTP today, others later) exposes to the application runner.
package delivery

import "context"

// Delivery is a long-running transport frontend. Serve blocks until the
// listener fails or the application shuts it down.
type Delivery interface {
	Serve(ctx context.Context) error
}
