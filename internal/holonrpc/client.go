package holonrpc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Organic-Programming/swift-holons/internal/logging"
)

// subprotocol is the single WebSocket subprotocol token this SDK
// negotiates. A server that does not select it fails the handshake.
const subprotocol = "holon-rpc"

// Config tunes a Client's heartbeat and reconnect behavior. New uses the
// fields exactly as given and does not fill zero-valued ones; DefaultConfig
// returns a fully populated Config.
type Config struct {
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration
	ReconnectMinDelay time.Duration
	ReconnectMaxDelay time.Duration
	ReconnectFactor   float64
	ReconnectJitter   float64
}

// DefaultConfig mirrors internal/config's SDK defaults so a Client can be
// built without threading the config package through call sites that only
// need the RPC client.
func DefaultConfig() Config {
	return Config{
		HeartbeatInterval: 30 * time.Second,
		HeartbeatTimeout:  10 * time.Second,
		ReconnectMinDelay: 250 * time.Millisecond,
		ReconnectMaxDelay: 30 * time.Second,
		ReconnectFactor:   2.0,
		ReconnectJitter:   0.1,
	}
}

// Client is a bidirectional Holon-RPC peer. Its carrier, closed flag, and
// id counter are only ever mutated while holding mu, and the pending and
// handler tables each guard their own map with their own mutex; no task
// reaches into this state without the matching lock, which gives the
// single-actor discipline the protocol assumes without needing a separate
// goroutine to own the state.
type Client struct {
	cfg Config
	log *zerolog.Logger
	url string

	mu       sync.Mutex
	carrier  *websocket.Conn
	writeMu  sync.Mutex
	closed   bool
	nextID   uint64
	pending  *pendingTable
	handlers *handlerTable

	receiveDone  chan struct{}
	stopHeart    context.CancelFunc
	closeCh      chan struct{}
	reconnectWG  sync.WaitGroup
	reconnecting atomic.Bool
}

// New creates a Client with the given configuration. Call Register before
// or after Connect; call Connect to open the carrier.
func New(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		log:      logging.Component("holonrpc"),
		pending:  newPendingTable(),
		handlers: newHandlerTable(),
		closeCh:  make(chan struct{}),
	}
}

// Register installs a server-call handler for method. Safe to call before
// Connect; a later Register for the same method replaces the former.
func (c *Client) Register(method string, h Handler) {
	c.handlers.register(method, h)
}

// Connect opens a WebSocket to url, requiring the server to select the
// holon-rpc subprotocol, then starts the receive and heartbeat tasks.
// Close is terminal: a closed Client cannot be reconnected.
func (c *Client) Connect(ctx context.Context, url string) error {
	if c.isClosed() {
		return ErrNotConnected
	}

	conn, err := c.dial(ctx, url)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.url = url
	c.carrier = conn
	c.mu.Unlock()

	c.startTasks()
	return nil
}

func (c *Client) dial(ctx context.Context, rawURL string) (*websocket.Conn, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &InvalidURLError{URL: rawURL, Err: err}
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, &InvalidURLError{URL: rawURL, Err: fmt.Errorf("scheme %q is not ws or wss", u.Scheme)}
	}

	dialer := websocket.Dialer{
		Subprotocols:     []string{subprotocol},
		HandshakeTimeout: 10 * time.Second,
	}

	conn, resp, err := dialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) {
			return nil, &ProtocolError{Reason: "websocket handshake failed: " + err.Error()}
		}
		return nil, &IOError{Op: "dial", Err: err}
	}

	if resp == nil || resp.Header.Get("Sec-WebSocket-Protocol") != subprotocol {
		_ = conn.Close()
		return nil, &ProtocolError{Reason: "server did not negotiate holon-rpc"}
	}

	return conn, nil
}

func (c *Client) startTasks() {
	c.mu.Lock()
	done := make(chan struct{})
	c.receiveDone = done
	heartCtx, cancel := context.WithCancel(context.Background())
	c.stopHeart = cancel
	c.mu.Unlock()

	go c.receiveTask(done)
	go c.heartbeatTask(heartCtx)
}

// Invoke assigns a client-originated id (c1, c2, …), sends a JSON-RPC
// request, and blocks until the matching response arrives or ctx is done.
func (c *Client) Invoke(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	if method == "" {
		return nil, &ProtocolError{Reason: "method is required"}
	}

	c.mu.Lock()
	carrier := c.carrier
	closed := c.closed
	if carrier == nil || closed {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	c.nextID++
	id := "c" + strconv.FormatUint(c.nextID, 10)
	c.mu.Unlock()

	slot := c.pending.register(id)

	req := envelope{
		JSONRPC: jsonRPCVersion,
		ID:      stringID(id),
		Method:  method,
		Params:  marshalParams(params),
	}
	if err := c.send(req); err != nil {
		c.pending.forget(id)
		return nil, err
	}

	select {
	case res := <-slot:
		if res.err != nil {
			return nil, res.err
		}
		return res.result, nil
	case <-ctx.Done():
		c.pending.forget(id)
		return nil, &TimeoutError{Method: method}
	}
}

func (c *Client) send(e envelope) error {
	c.mu.Lock()
	carrier := c.carrier
	c.mu.Unlock()
	if carrier == nil {
		return ErrNotConnected
	}

	body, err := encodeEnvelope(e)
	if err != nil {
		return &SerializationError{Reason: err.Error()}
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := carrier.WriteMessage(websocket.TextMessage, body); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

// Close marks the client closed, cancels the background tasks, fails all
// pending invokes with not-connected, and closes the carrier with a normal
// closure frame. Idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	carrier := c.carrier
	c.carrier = nil
	stopHeart := c.stopHeart
	recvDone := c.receiveDone
	c.mu.Unlock()

	close(c.closeCh)
	if stopHeart != nil {
		stopHeart()
	}
	if carrier != nil {
		deadline := time.Now().Add(time.Second)
		_ = carrier.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = carrier.Close()
	}
	c.pending.failAll(ErrNotConnected)
	if recvDone != nil {
		<-recvDone
	}
	c.reconnectWG.Wait()
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
