//go:build !windows

package transport

import "golang.org/x/sys/unix"

// setReuseAddr and the explicit listen backlog below exist because the
// standard net package exposes neither: net.Listen always uses an
// implementation-chosen backlog and leaves SO_REUSEADDR to its own
// platform defaults. The TCP listener therefore builds its socket by hand
// with x/sys/unix.
func setReuseAddr(fd int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
}

const listenBacklog = 16
