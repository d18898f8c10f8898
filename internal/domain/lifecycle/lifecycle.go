// Package lifecycle holds shared timeouts for graceful startup/shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of a delivery.
const DefaultTimeout = 10 * time.Second
