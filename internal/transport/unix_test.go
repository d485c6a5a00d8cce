package transport

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnixListenerAcceptRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holon.sock")
	ln, err := ListenRuntime("unix://" + path)
	if err != nil {
		t.Fatalf("ListenRuntime() error = %v", err)
	}
	defer ln.Close()

	accepted := make(chan *Connection, 1)
	acceptErr := make(chan error, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			acceptErr <- err
			return
		}
		accepted <- c
	}()

	dial, err := net.Dial("unix", path)
	if err != nil {
		t.Fatalf("dial error = %v", err)
	}
	defer dial.Close()

	select {
	case err := <-acceptErr:
		t.Fatalf("Accept() error = %v", err)
	case conn := <-accepted:
		defer conn.Close()
		if _, err := dial.Write([]byte("unix")); err != nil {
			t.Fatalf("client write error = %v", err)
		}
		got, err := conn.Read(4)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if string(got) != "unix" {
			t.Fatalf("Read() = %q, want unix", got)
		}
	}
}

func TestUnixListenerRejectsOverlongPath(t *testing.T) {
	long := "/tmp/" + strings.Repeat("h", 200) + ".sock"
	_, err := ListenRuntime("unix://" + long)
	if _, ok := err.(*ListenFailedError); !ok {
		t.Fatalf("ListenRuntime() error = %v (%T), want *ListenFailedError", err, err)
	}
}

func TestUnixListenerRemovesStaleSocketOnListenAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holon.sock")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seeding stale file: %v", err)
	}

	ln, err := ListenRuntime("unix://" + path)
	if err != nil {
		t.Fatalf("ListenRuntime() error = %v", err)
	}
	if err := ln.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("socket path still exists after Close(): %v", err)
	}
}
