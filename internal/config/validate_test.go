package config

import (
	"strings"
	"testing"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := Defaults()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestValidateRejectsBadDurationsAndFactor(t *testing.T) {
	cfg := Defaults()
	cfg.Holon.HeartbeatInterval = "not-a-duration"
	cfg.Holon.ReconnectFactor = 0.5
	cfg.Holon.ReconnectJitter = -1

	err := Validate(&cfg)
	if err == nil {
		t.Fatal("Validate() error = nil, want non-nil")
	}

	msg := err.Error()
	if !strings.Contains(msg, "holon.heartbeat_interval: invalid duration") {
		t.Fatalf("Validate() error = %q, want invalid duration message", msg)
	}
	if !strings.Contains(msg, "holon.reconnect_factor: must be >= 1") {
		t.Fatalf("Validate() error = %q, want reconnect_factor message", msg)
	}
	if !strings.Contains(msg, "holon.reconnect_jitter: must be >= 0") {
		t.Fatalf("Validate() error = %q, want reconnect_jitter message", msg)
	}
}

func TestValidateRejectsUnsupportedDefaultListenScheme(t *testing.T) {
	cfg := Defaults()
	cfg.Transport.DefaultListen = "ftp://example.com"

	err := Validate(&cfg)
	if err == nil {
		t.Fatal("Validate() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "transport.default_listen") {
		t.Fatalf("Validate() error = %q, want transport.default_listen message", err.Error())
	}
}

func TestResolveDurationsParsesAllFields(t *testing.T) {
	cfg := Defaults()
	d, err := ResolveDurations(cfg.Holon)
	if err != nil {
		t.Fatalf("ResolveDurations() error = %v", err)
	}
	if d.HeartbeatInterval.Seconds() != 30 {
		t.Fatalf("HeartbeatInterval = %v, want 30s", d.HeartbeatInterval)
	}
	if d.ReconnectFactor != 2.0 {
		t.Fatalf("ReconnectFactor = %v, want 2.0", d.ReconnectFactor)
	}
}
