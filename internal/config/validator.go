package config

import (
	"errors"
	"fmt"

	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/resolver"
)

// Validate checks every configured value and reports all problems at once.
// A nil Config is valid.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	var errs []error

	if _, err := resolver.ParsePolicy(c.Tiebreak()); err != nil {
		errs = append(errs, fmt.Errorf("discovery.tiebreak: %w", err))
	}

	if depth, ok := c.MaxDepth(); ok && (depth < 0 || depth > core.MaxDiscoveryDepth) {
		errs = append(errs, fmt.Errorf("discovery.max_depth: %d is out of range [0, %d]", depth, core.MaxDiscoveryDepth))
	}

	if _, err := c.TimeoutDuration(); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}

	if _, err := c.Commands(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration %q: %w", c.Path, err)
	}
	return nil
}
