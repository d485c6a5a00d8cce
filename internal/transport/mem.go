package transport

import (
	"os"
	"sync"
)

// memRegistry maps a mem:// name to its listener so that DialMem can find a
// counterpart without any out-of-band coordination.
var (
	memRegistryMu sync.Mutex
	memRegistry   = map[string]*memListener{}
)

// memListener pairs dial() and accept() calls FIFO: each dial enqueues one
// endpoint and signals, each accept waits for the queue to be non-empty
// (or the listener to close) and dequeues the oldest entry.
type memListener struct {
	name string

	mu      sync.Mutex
	cond    *sync.Cond
	pending []*Connection
	closed  bool
}

func newMemListener(name string) RuntimeListener {
	l := &memListener{name: name}
	l.cond = sync.NewCond(&l.mu)

	memRegistryMu.Lock()
	memRegistry[name] = l
	memRegistryMu.Unlock()

	return l
}

// DialMem connects to a previously-listened mem:// name. It returns
// *ListenerClosedError if no listener is registered under name or the
// registered listener has since closed.
func DialMem(name string) (*Connection, error) {
	memRegistryMu.Lock()
	l, ok := memRegistry[name]
	memRegistryMu.Unlock()
	if !ok {
		return nil, &ListenerClosedError{Reason: "no mem listener registered under " + name}
	}
	return l.dial()
}

// dial builds the full-duplex pair from two unidirectional pipes: the
// client side reads toClient and writes toServer, the server side reads
// toServer and writes toClient. All four fds are owned by the connection
// that references them, so closing one side drops its peer's incoming
// stream and the peer observes EOF.
func (l *memListener) dial() (*Connection, error) {
	toServerR, toServerW, err := os.Pipe()
	if err != nil {
		return nil, &IOFailureError{Message: err.Error()}
	}
	toClientR, toClientW, err := os.Pipe()
	if err != nil {
		toServerR.Close()
		toServerW.Close()
		return nil, &IOFailureError{Message: err.Error()}
	}

	client := newConnection(toClientR, toServerW, toClientR, toServerW, true, true, false)
	server := newConnection(toServerR, toClientW, toServerR, toClientW, true, true, false)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		client.Close()
		server.Close()
		return nil, &ListenerClosedError{Reason: "mem listener " + l.name + " is closed"}
	}
	l.pending = append(l.pending, server)
	l.cond.Signal()
	l.mu.Unlock()

	log.Debug().Str("name", l.name).Msg("mem pair dialed")
	return client, nil
}

func (l *memListener) Accept() (*Connection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for len(l.pending) == 0 && !l.closed {
		l.cond.Wait()
	}
	if len(l.pending) == 0 {
		return nil, &ListenerClosedError{Reason: "mem listener " + l.name + " closed"}
	}

	conn := l.pending[0]
	l.pending = l.pending[1:]
	return conn, nil
}

func (l *memListener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	drained := l.pending
	l.pending = nil
	l.cond.Broadcast()
	l.mu.Unlock()

	for _, c := range drained {
		c.Close()
	}

	memRegistryMu.Lock()
	if memRegistry[l.name] == l {
		delete(memRegistry, l.name)
	}
	memRegistryMu.Unlock()

	log.Debug().Str("name", l.name).Msg("mem listener closed")
	return nil
}

func (l *memListener) BoundURI() string { return "mem://" + l.name }
