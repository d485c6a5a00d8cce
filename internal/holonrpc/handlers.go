package holonrpc

import (
	"context"
	"sync"
)

// Handler handles one incoming Holon-RPC request or notification. params is
// always a JSON object, defaulted to empty. Returning a nil result is
// treated as an empty object; returning an *RPCError sends that error
// verbatim, any other error is reported as a handler-exception.
type Handler func(ctx context.Context, params map[string]any) (map[string]any, error)

// handlerTable is the registered-method lookup consulted by the receive
// task's request path. Registration is safe before or after connect, and a
// second Register for the same method replaces the first.
type handlerTable struct {
	mu     sync.Mutex
	byName map[string]Handler
}

func newHandlerTable() *handlerTable {
	return &handlerTable{byName: make(map[string]Handler)}
}

func (t *handlerTable) register(method string, h Handler) {
	t.mu.Lock()
	t.byName[method] = h
	t.mu.Unlock()
}

func (t *handlerTable) lookup(method string) (Handler, bool) {
	t.mu.Lock()
	h, ok := t.byName[method]
	t.mu.Unlock()
	return h, ok
}
