// Package lifecycle holds shared lifecycle constants for graceful startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks.
const DefaultTimeout = 10 * time.Second
