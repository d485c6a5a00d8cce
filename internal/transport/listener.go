// Package transport implements the URI-addressed transport substrate: a
// parse-only URI/Listener model plus four concrete runtime listener
// variants (TCP, Unix domain socket, stdio, in-process mem pair) behind a
// single façade.
package transport

import "github.com/Organic-Programming/swift-holons/internal/logging"

// log carries the package's component-scoped logger. Listeners log bind,
// accept, and close events; per-byte read/write calls never log.
var log = logging.Component("transport")

// Listener is the parse-only tagged union mirroring the six schemes. It is
// produced by Listen and carries no live resources, as opposed to
// RuntimeListener, which is bound and holds kernel (or in-process) state.
type Listener struct {
	URI URI
}

// Listen parses raw into a Listener descriptor without binding anything.
func Listen(raw string) (*Listener, error) {
	u, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Listener{URI: *u}, nil
}

// RuntimeListener is a bound, live listener. Implementations dispatch on
// their own concrete type rather than through an inheritance hierarchy:
// tcpListener, unixListener, stdioListener, and memListener are the only
// four variants; ws/wss never produce one.
type RuntimeListener interface {
	// Accept blocks until a connection arrives or the listener is closed.
	Accept() (*Connection, error)
	// Close is idempotent and unblocks any concurrent Accept with
	// *ListenerClosedError.
	Close() error
	// BoundURI reports the concrete, fully-resolved URI this listener is
	// bound to (e.g. a TCP listener bound to port 0 reports its actual
	// ephemeral port).
	BoundURI() string
}

// ListenRuntime parses raw and binds a live RuntimeListener. ws and wss
// return *RuntimeUnsupportedError: this SDK's transport layer is a byte
// pipe factory, not a WebSocket server. The Holon-RPC client dials
// WebSocket URLs directly, without going through this façade.
func ListenRuntime(raw string) (RuntimeListener, error) {
	u, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case SchemeTCP:
		return newTCPListener(u)
	case SchemeUnix:
		return newUnixListener(u)
	case SchemeStdio:
		return newStdioListener(), nil
	case SchemeMem:
		return newMemListener(u.Path), nil
	case SchemeWS, SchemeWSS:
		return nil, &RuntimeUnsupportedError{
			Scheme: u.Scheme,
			Reason: "ws/wss is a WebSocket client carrier in this SDK; listenRuntime never serves WebSocket traffic",
		}
	default:
		return nil, &UnsupportedURIError{Raw: raw, Scheme: string(u.Scheme)}
	}
}
