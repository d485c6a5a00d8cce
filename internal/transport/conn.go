package transport

import (
	"io"
	"sync"
)

// Connection is a blocking byte-stream connection produced by a listener's
// Accept (or the mem listener's Dial). Ownership of the read and write
// sides is tracked independently with two booleans rather than relying on
// a single implicit close-on-drop fd. Stdio is the case that needs this:
// the process retains ownership of stdin/stdout, so neither side is ever
// closed by this type.
type Connection struct {
	mu          sync.Mutex
	closed      bool
	reader      io.Reader
	writer      io.Writer
	readCloser  io.Closer
	writeCloser io.Closer
	ownsRead    bool
	ownsWrite   bool
	// sameFD is true when readCloser and writeCloser refer to the same
	// underlying resource (a single net.Conn serving both directions), so
	// Close must not attempt to close it twice.
	sameFD bool
}

func newConnection(r io.Reader, w io.Writer, rc, wc io.Closer, ownsRead, ownsWrite, sameFD bool) *Connection {
	return &Connection{
		reader:      r,
		writer:      w,
		readCloser:  rc,
		writeCloser: wc,
		ownsRead:    ownsRead,
		ownsWrite:   ownsWrite,
		sameFD:      sameFD,
	}
}

// Read returns up to maxBytes from a single underlying read. A zero-length
// result with a nil error indicates the peer reached EOF.
func (c *Connection) Read(maxBytes int) ([]byte, error) {
	if c.isClosed() {
		return nil, ErrConnectionClosed
	}

	buf := make([]byte, maxBytes)
	n, err := c.reader.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err == nil || err == io.EOF {
		return nil, nil
	}
	return nil, &IOFailureError{Message: err.Error()}
}

// Write loops until every byte of p has been written. Partial success is
// never surfaced to the caller: either the whole buffer lands, or an error
// is returned.
func (c *Connection) Write(p []byte) error {
	if c.isClosed() {
		return ErrConnectionClosed
	}

	remaining := p
	for len(remaining) > 0 {
		n, err := c.writer.Write(remaining)
		if err != nil {
			return &IOFailureError{Message: err.Error()}
		}
		if n == 0 {
			return &IOFailureError{Message: "zero-byte write"}
		}
		remaining = remaining[n:]
	}
	return nil
}

// Close is idempotent. It closes readCloser only if owned, and writeCloser
// only if owned and distinct from readCloser.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var firstErr error
	if c.ownsRead && c.readCloser != nil {
		if err := c.readCloser.Close(); err != nil {
			firstErr = err
		}
	}
	if c.ownsWrite && !c.sameFD && c.writeCloser != nil {
		if err := c.writeCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Connection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
