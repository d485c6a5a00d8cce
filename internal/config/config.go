package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/Organic-Programming/swift-holons/internal/paths"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the config file and returns the parsed Config.
// If the config file does not exist, it returns the built-in defaults
// (no error).
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads and parses a config file at the given path, expanding
// ${ENV_VAR} placeholders and filling unset fields with Defaults().
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Defaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	expandConfigEnvVars(&cfg)
	cfg = withDefaults(cfg)
	return &cfg, nil
}

func expandConfigEnvVars(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Holon.HeartbeatInterval = expandEnvVars(cfg.Holon.HeartbeatInterval)
	cfg.Holon.HeartbeatTimeout = expandEnvVars(cfg.Holon.HeartbeatTimeout)
	cfg.Holon.ReconnectMinDelay = expandEnvVars(cfg.Holon.ReconnectMinDelay)
	cfg.Holon.ReconnectMaxDelay = expandEnvVars(cfg.Holon.ReconnectMaxDelay)
	cfg.Transport.DefaultListen = expandEnvVars(cfg.Transport.DefaultListen)
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment variable.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match // leave unresolved vars as-is
	})
}
