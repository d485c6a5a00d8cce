//go:build !windows

package transport

import (
	"net"
	"os"
	"strconv"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

type tcpListener struct {
	ln     *net.TCPListener
	closed atomic.Bool
	bound  string
}

func newTCPListener(u *URI) (RuntimeListener, error) {
	ips, err := net.LookupIP(hostOrWildcard(u.Host))
	if err != nil {
		return nil, &ListenFailedError{Message: err.Error()}
	}

	family := unix.AF_INET
	var sa unix.Sockaddr
	if len(ips) > 0 && ips[0].To4() == nil {
		family = unix.AF_INET6
		var addr [16]byte
		copy(addr[:], ips[0].To16())
		sa = &unix.SockaddrInet6{Port: u.Port, Addr: addr}
	} else {
		var addr [4]byte
		if len(ips) > 0 {
			copy(addr[:], ips[0].To4())
		}
		sa = &unix.SockaddrInet4{Port: u.Port, Addr: addr}
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, &ListenFailedError{Message: err.Error()}
	}
	if err := setReuseAddr(fd); err != nil {
		unix.Close(fd)
		return nil, &ListenFailedError{Message: err.Error()}
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, &ListenFailedError{Message: err.Error()}
	}
	if err := unix.Listen(fd, listenBacklog); err != nil {
		unix.Close(fd)
		return nil, &ListenFailedError{Message: err.Error()}
	}

	f := os.NewFile(uintptr(fd), "tcp-listener")
	defer f.Close()
	netLn, err := net.FileListener(f)
	if err != nil {
		return nil, &ListenFailedError{Message: err.Error()}
	}
	tcpLn, ok := netLn.(*net.TCPListener)
	if !ok {
		netLn.Close()
		return nil, &ListenFailedError{Message: "unexpected listener type from FileListener"}
	}

	addr := tcpLn.Addr().(*net.TCPAddr)
	bound := "tcp://" + net.JoinHostPort(displayHost(u.Host, addr), strconv.Itoa(addr.Port))

	log.Info().Str("uri", bound).Msg("tcp listener bound")
	return &tcpListener{ln: tcpLn, bound: bound}, nil
}

func hostOrWildcard(host string) string {
	if host == "" {
		return "0.0.0.0"
	}
	return host
}

func displayHost(configured string, addr *net.TCPAddr) string {
	if configured != "" {
		return configured
	}
	return addr.IP.String()
}

func (l *tcpListener) Accept() (*Connection, error) {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if l.closed.Load() {
				return nil, &ListenerClosedError{Reason: "tcp listener closed"}
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				continue
			}
			return nil, &AcceptFailedError{Message: err.Error()}
		}
		log.Debug().Str("peer", conn.RemoteAddr().String()).Msg("tcp connection accepted")
		return newConnection(conn, conn, conn, conn, true, true, true), nil
	}
}

func (l *tcpListener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	log.Debug().Str("uri", l.bound).Msg("tcp listener closed")
	return l.ln.Close()
}

func (l *tcpListener) BoundURI() string { return l.bound }
