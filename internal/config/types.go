package config

// Config is the top-level holons SDK configuration.
type Config struct {
	Holon     HolonConfig     `toml:"holon"`
	Transport TransportConfig `toml:"transport"`
}

// HolonConfig configures a Holon-RPC client session's timing.
type HolonConfig struct {
	HeartbeatInterval string  `toml:"heartbeat_interval"`
	HeartbeatTimeout  string  `toml:"heartbeat_timeout"`
	ReconnectMinDelay string  `toml:"reconnect_min_delay"`
	ReconnectMaxDelay string  `toml:"reconnect_max_delay"`
	ReconnectFactor   float64 `toml:"reconnect_factor"`
	ReconnectJitter   float64 `toml:"reconnect_jitter"`
}

// TransportConfig configures the transport façade's default listen URI.
type TransportConfig struct {
	DefaultListen string `toml:"default_listen"`
}

// Defaults returns the built-in defaults used for any zero-valued field.
func Defaults() Config {
	return Config{
		Holon: HolonConfig{
			HeartbeatInterval: "30s",
			HeartbeatTimeout:  "10s",
			ReconnectMinDelay: "250ms",
			ReconnectMaxDelay: "30s",
			ReconnectFactor:   2.0,
			ReconnectJitter:   0.1,
		},
		Transport: TransportConfig{
			DefaultListen: "tcp://:9090",
		},
	}
}

// withDefaults fills zero-valued fields of cfg from Defaults().
func withDefaults(cfg Config) Config {
	d := Defaults()
	if cfg.Holon.HeartbeatInterval == "" {
		cfg.Holon.HeartbeatInterval = d.Holon.HeartbeatInterval
	}
	if cfg.Holon.HeartbeatTimeout == "" {
		cfg.Holon.HeartbeatTimeout = d.Holon.HeartbeatTimeout
	}
	if cfg.Holon.ReconnectMinDelay == "" {
		cfg.Holon.ReconnectMinDelay = d.Holon.ReconnectMinDelay
	}
	if cfg.Holon.ReconnectMaxDelay == "" {
		cfg.Holon.ReconnectMaxDelay = d.Holon.ReconnectMaxDelay
	}
	if cfg.Holon.ReconnectFactor == 0 {
		cfg.Holon.ReconnectFactor = d.Holon.ReconnectFactor
	}
	if cfg.Holon.ReconnectJitter == 0 {
		cfg.Holon.ReconnectJitter = d.Holon.ReconnectJitter
	}
	if cfg.Transport.DefaultListen == "" {
		cfg.Transport.DefaultListen = d.Transport.DefaultListen
	}
	return cfg
}
