package holonrpc

import (
	"bytes"
	"encoding/json"
	"strings"
)

const jsonRPCVersion = "2.0"

// heartbeatMethod is the one method name every peer must answer without a
// registered handler.
const heartbeatMethod = "rpc.heartbeat"

// envelope is the wire form of every Holon-RPC frame. Requests carry
// Method (+ optional Params); responses carry exactly one of Result or
// Error. Id is absent on notifications.
type envelope struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

func decodeEnvelope(raw []byte) (*envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &SerializationError{Reason: "frame is not a JSON object"}
	}
	var e envelope
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return nil, &SerializationError{Reason: err.Error()}
	}
	return &e, nil
}

func encodeEnvelope(e envelope) ([]byte, error) {
	return json.Marshal(e)
}

func stringID(id string) json.RawMessage {
	b, _ := json.Marshal(id)
	return json.RawMessage(b)
}

func hasID(id json.RawMessage) bool {
	trimmed := bytes.TrimSpace(id)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func idString(id json.RawMessage) (string, bool) {
	if !hasID(id) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(id, &s); err == nil {
		return s, true
	}
	// Non-string ids (numbers) still participate in pending-table lookups
	// keyed by their raw textual form.
	return string(bytes.TrimSpace(id)), true
}

// serverOriginated reports whether id follows the convention that
// server-issued request ids begin with the byte 's'.
func serverOriginated(id string) bool {
	return strings.HasPrefix(id, "s")
}

func decodeParamsObject(raw json.RawMessage) map[string]any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}
	}
	var params map[string]any
	if err := json.Unmarshal(trimmed, &params); err != nil || params == nil {
		return map[string]any{}
	}
	return params
}

func decodeResultObject(raw json.RawMessage) map[string]any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}
	}
	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return map[string]any{}
	}
	if obj, ok := value.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

func marshalParams(params map[string]any) json.RawMessage {
	if params == nil {
		return json.RawMessage("{}")
	}
	b, err := json.Marshal(params)
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}
