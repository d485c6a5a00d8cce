//go:build !windows

package transport

import (
	"net"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

type unixListener struct {
	ln     *net.UnixListener
	path   string
	closed atomic.Bool
}

func newUnixListener(u *URI) (RuntimeListener, error) {
	if len(u.Path) >= len(unix.RawSockaddrUnix{}.Path) {
		return nil, &ListenFailedError{Message: "unix socket path exceeds sun_path length"}
	}

	if _, err := os.Lstat(u.Path); err == nil {
		if err := os.Remove(u.Path); err != nil {
			return nil, &ListenFailedError{Message: "removing stale socket: " + err.Error()}
		}
	}

	addr := &net.UnixAddr{Name: u.Path, Net: "unix"}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, &ListenFailedError{Message: err.Error()}
	}

	log.Info().Str("path", u.Path).Msg("unix listener bound")
	return &unixListener{ln: ln, path: u.Path}, nil
}

func (l *unixListener) Accept() (*Connection, error) {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if l.closed.Load() {
				return nil, &ListenerClosedError{Reason: "unix listener closed"}
			}
			return nil, &AcceptFailedError{Message: err.Error()}
		}
		log.Debug().Str("path", l.path).Msg("unix connection accepted")
		return newConnection(conn, conn, conn, conn, true, true, true), nil
	}
}

func (l *unixListener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	log.Debug().Str("path", l.path).Msg("unix listener closed")
	err := l.ln.Close()
	os.Remove(l.path)
	return err
}

func (l *unixListener) BoundURI() string { return "unix://" + l.path }
