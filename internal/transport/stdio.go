package transport

import (
	"os"
	"sync"
)

// stdioState tracks the single-accept lifecycle of a stdio listener: it
// starts Fresh, Accept moves it to Consumed and hands back the one
// Connection it will ever produce, and Close moves it to Closed from
// either state.
type stdioState int

const (
	stdioFresh stdioState = iota
	stdioConsumed
	stdioClosed
)

type stdioListener struct {
	mu    sync.Mutex
	state stdioState
}

func newStdioListener() RuntimeListener {
	return &stdioListener{}
}

// Accept returns a Connection over os.Stdin/os.Stdout exactly once. A
// second call returns *AcceptFailedError rather than blocking forever,
// since stdio never produces a second peer; once the listener is closed,
// Accept reports *ListenerClosedError instead.
func (l *stdioListener) Accept() (*Connection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case stdioClosed:
		return nil, &ListenerClosedError{Reason: "stdio listener closed"}
	case stdioConsumed:
		return nil, &AcceptFailedError{Message: "stdio:// accepts exactly one connection"}
	}

	l.state = stdioConsumed
	log.Debug().Msg("stdio connection accepted")
	// Neither side is owned: the process, not this SDK, owns stdin/stdout.
	return newConnection(os.Stdin, os.Stdout, nil, nil, false, false, false), nil
}

func (l *stdioListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = stdioClosed
	return nil
}

func (l *stdioListener) BoundURI() string { return "stdio://" }
