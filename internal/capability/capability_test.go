package capability

import (
	"encoding/json"
	"testing"
)

func TestJSONCarriesContractKeys(t *testing.T) {
	raw, err := JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("JSON() output does not parse: %v", err)
	}

	if _, ok := decoded["holon_rpc_server"]; !ok {
		t.Error("manifest missing holon_rpc_server")
	}
	if decoded["grpc_dial_ws"] != true {
		t.Errorf("grpc_dial_ws = %v, want true", decoded["grpc_dial_ws"])
	}

	modes, ok := decoded["routing_modes"].(map[string]any)
	if !ok {
		t.Fatalf("routing_modes = %T, want object", decoded["routing_modes"])
	}
	for _, key := range []string{"unicast", "fanout", "broadcast-response", "full-broadcast"} {
		if _, ok := modes[key]; !ok {
			t.Errorf("routing_modes missing %q", key)
		}
	}
}

func TestCurrentListsExecutables(t *testing.T) {
	m := Current()
	if len(m.Executables) == 0 {
		t.Fatal("Current().Executables is empty")
	}
	if m.HolonRPCServer {
		t.Fatal("HolonRPCServer = true; this SDK is a client only")
	}
}
