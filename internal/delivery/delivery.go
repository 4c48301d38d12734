// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is implemented by every server the process can expose.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
