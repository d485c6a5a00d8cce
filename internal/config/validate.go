package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Organic-Programming/swift-holons/internal/transport"
)

// Validate checks configuration invariants and returns a joined error
// describing every problem found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	errs = append(errs, validateDuration("holon.heartbeat_interval", cfg.Holon.HeartbeatInterval)...)
	errs = append(errs, validateDuration("holon.heartbeat_timeout", cfg.Holon.HeartbeatTimeout)...)
	errs = append(errs, validateDuration("holon.reconnect_min_delay", cfg.Holon.ReconnectMinDelay)...)
	errs = append(errs, validateDuration("holon.reconnect_max_delay", cfg.Holon.ReconnectMaxDelay)...)

	if cfg.Holon.ReconnectFactor < 1 {
		errs = append(errs, fmt.Errorf("holon.reconnect_factor: must be >= 1, got %v", cfg.Holon.ReconnectFactor))
	}
	if cfg.Holon.ReconnectJitter < 0 {
		errs = append(errs, fmt.Errorf("holon.reconnect_jitter: must be >= 0, got %v", cfg.Holon.ReconnectJitter))
	}

	if cfg.Transport.DefaultListen != "" {
		if _, err := transport.Parse(cfg.Transport.DefaultListen); err != nil {
			errs = append(errs, fmt.Errorf("transport.default_listen: %w", err))
		}
	}

	return errors.Join(errs...)
}

func validateDuration(field, value string) []error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid duration %q: %w", field, value, err)}
	}
	if d <= 0 {
		return []error{fmt.Errorf("%s: must be > 0, got %q", field, value)}
	}
	return nil
}

// ResolveDurations parses the HolonConfig's string durations into a
// Durations struct for use by the holonrpc package.
func ResolveDurations(cfg HolonConfig) (Durations, error) {
	var d Durations
	var err error

	if d.HeartbeatInterval, err = time.ParseDuration(cfg.HeartbeatInterval); err != nil {
		return d, fmt.Errorf("heartbeat_interval: %w", err)
	}
	if d.HeartbeatTimeout, err = time.ParseDuration(cfg.HeartbeatTimeout); err != nil {
		return d, fmt.Errorf("heartbeat_timeout: %w", err)
	}
	if d.ReconnectMinDelay, err = time.ParseDuration(cfg.ReconnectMinDelay); err != nil {
		return d, fmt.Errorf("reconnect_min_delay: %w", err)
	}
	if d.ReconnectMaxDelay, err = time.ParseDuration(cfg.ReconnectMaxDelay); err != nil {
		return d, fmt.Errorf("reconnect_max_delay: %w", err)
	}
	d.ReconnectFactor = cfg.ReconnectFactor
	d.ReconnectJitter = cfg.ReconnectJitter
	return d, nil
}

// Durations holds the HolonConfig fields parsed into time.Duration.
type Durations struct {
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration
	ReconnectMinDelay time.Duration
	ReconnectMaxDelay time.Duration
	ReconnectFactor   float64
	ReconnectJitter   float64
}
