package core

import (
	"os"
	"time"
)

// File permissions.
const (
	// PermOwnerRW is used for generated files that only the invoking user needs.
	PermOwnerRW os.FileMode = 0o600

	// PermScript is used for the ephemeral build-tool script, which the
	// build tool may read from a different process.
	PermScript os.FileMode = 0o644
)

// Discovery limits.
const (
	// DefaultDiscoveryDepth is how deep recursive descriptor kinds are searched
	// when no depth is configured.
	DefaultDiscoveryDepth = 3

	// MaxDiscoveryDepth is the hard ceiling for a configured depth.
	MaxDiscoveryDepth = 10
)

// Timeouts for external tools.
const (
	// TimeoutDefault bounds a single build-tool invocation.
	TimeoutDefault = 5 * time.Minute
)
