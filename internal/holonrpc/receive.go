package holonrpc

import (
	"context"
)

// receiveTask is the single-threaded dispatcher over the carrier: every
// inbound frame is decoded and routed to either the request path or the
// response path before the next frame is read.
func (c *Client) receiveTask(done chan struct{}) {
	defer close(done)

	for {
		c.mu.Lock()
		carrier := c.carrier
		c.mu.Unlock()
		if carrier == nil {
			return
		}

		_, raw, err := carrier.ReadMessage()
		if err != nil {
			c.disconnect()
			return
		}

		e, err := decodeEnvelope(raw)
		if err != nil {
			c.log.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}

		switch {
		case e.Method != "":
			c.handleRequest(e)
		case e.Result != nil || e.Error != nil:
			c.handleResponse(e)
		default:
			// Neither a request nor a response: drop silently.
		}
	}
}

func (c *Client) handleRequest(e *envelope) {
	id, hasReqID := idString(e.ID)

	if e.JSONRPC != jsonRPCVersion {
		if hasReqID {
			c.replyError(id, &RPCError{Code: codeInvalidRequest, Message: "invalid request"})
		}
		return
	}

	if e.Method == heartbeatMethod {
		if hasReqID {
			c.replyResult(id, map[string]any{})
		}
		return
	}

	if hasReqID && !serverOriginated(id) {
		c.replyError(id, &RPCError{Code: codeInvalidRequest, Message: "invalid request"})
		return
	}

	handler, ok := c.handlers.lookup(e.Method)
	if !ok {
		if hasReqID {
			c.replyError(id, &RPCError{Code: codeMethodNotFound, Message: "method " + e.Method + " not found"})
		}
		return
	}

	// Handlers run off the receive goroutine so a slow handler cannot
	// stall frame dispatch (or deadlock a handler that itself invokes).
	params := decodeParamsObject(e.Params)
	go func() {
		result, err := handler(context.Background(), params)
		if !hasReqID {
			return
		}
		if err != nil {
			if rerr, ok := err.(*RPCError); ok {
				c.replyError(id, rerr)
				return
			}
			c.replyError(id, &RPCError{Code: codeHandlerPanic, Message: err.Error()})
			return
		}
		if result == nil {
			result = map[string]any{}
		}
		c.replyResult(id, result)
	}()
}

func (c *Client) handleResponse(e *envelope) {
	id, ok := idString(e.ID)
	if !ok {
		return
	}

	if e.Error != nil {
		rerr := *e.Error
		if rerr.Code == 0 {
			rerr.Code = codeInternalError
		}
		if rerr.Message == "" {
			rerr.Message = "internal error"
		}
		c.pending.complete(id, pendingResult{err: &rerr})
		return
	}

	c.pending.complete(id, pendingResult{result: decodeResultObject(e.Result)})
}

func (c *Client) replyResult(id string, result map[string]any) {
	_ = c.send(envelope{JSONRPC: jsonRPCVersion, ID: stringID(id), Result: marshalParams(result)})
}

func (c *Client) replyError(id string, rerr *RPCError) {
	_ = c.send(envelope{JSONRPC: jsonRPCVersion, ID: stringID(id), Error: rerr})
}

// disconnect tears down the current carrier, fails every outstanding
// invoke, and, unless the client is closed, starts the reconnect task if
// one is not already running.
func (c *Client) disconnect() {
	c.mu.Lock()
	carrier := c.carrier
	c.carrier = nil
	closed := c.closed
	stopHeart := c.stopHeart
	c.mu.Unlock()

	// Stop the heartbeat task tied to the lost carrier; the reconnect
	// task starts a fresh one once the carrier is back.
	if stopHeart != nil {
		stopHeart()
	}
	if carrier != nil {
		_ = carrier.Close()
	}
	c.pending.failAll(ErrNotConnected)

	if closed {
		return
	}

	if c.reconnecting.CompareAndSwap(false, true) {
		c.reconnectWG.Add(1)
		go c.reconnectTask()
	}
}
