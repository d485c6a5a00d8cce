// Package capability publishes the static capability manifest for this
// SDK, consumed by certification launchers to decide which cross-SDK
// scenarios apply.
package capability

import "encoding/json"

// Manifest declares what this SDK ships and supports. Routing mode names
// match the fabric's wire-level vocabulary, so they stay snake/kebab-cased
// as the certification suite expects them.
type Manifest struct {
	Executables    []string     `json:"executables"`
	HolonRPCServer bool         `json:"holon_rpc_server"`
	GRPCDialWS     bool         `json:"grpc_dial_ws"`
	RoutingModes   RoutingModes `json:"routing_modes"`
}

// RoutingModes lists the fan-out shapes the peer can participate in. The
// client only observes routing (the server performs it), so these flags
// describe what inbound patterns the SDK handles.
type RoutingModes struct {
	Unicast           bool `json:"unicast"`
	Fanout            bool `json:"fanout"`
	BroadcastResponse bool `json:"broadcast-response"`
	FullBroadcast     bool `json:"full-broadcast"`
}

// Current returns the manifest for this build. The SDK is a Holon-RPC
// client, not a server, and dials WebSocket carriers itself.
func Current() Manifest {
	return Manifest{
		Executables:    []string{"holonsd"},
		HolonRPCServer: false,
		GRPCDialWS:     true,
		RoutingModes: RoutingModes{
			Unicast:           true,
			Fanout:            true,
			BroadcastResponse: true,
			FullBroadcast:     true,
		},
	}
}

// JSON renders the manifest indented for publication.
func JSON() ([]byte, error) {
	return json.MarshalIndent(Current(), "", "  ")
}
