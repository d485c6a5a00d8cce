package transport

import (
	"errors"
	"os"
	"testing"
)

func TestStdioListenerAcceptsOnceThenCloses(t *testing.T) {
	ln, err := ListenRuntime("stdio://")
	if err != nil {
		t.Fatalf("ListenRuntime() error = %v", err)
	}

	conn, err := ln.Accept()
	if err != nil {
		t.Fatalf("first Accept() error = %v", err)
	}
	defer conn.Close()

	_, err = ln.Accept()
	if _, ok := err.(*AcceptFailedError); !ok {
		t.Fatalf("second Accept() error = %v (%T), want *AcceptFailedError", err, err)
	}

	if err := ln.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	_, err = ln.Accept()
	if _, ok := err.(*ListenerClosedError); !ok {
		t.Fatalf("Accept() after Close() error = %v (%T), want *ListenerClosedError", err, err)
	}
}

func TestStdioListenerCloseDoesNotOwnStdStreams(t *testing.T) {
	ln, err := ListenRuntime("stdio://")
	if err != nil {
		t.Fatalf("ListenRuntime() error = %v", err)
	}
	conn, err := ln.Accept()
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("Connection Close() error = %v", err)
	}
	if err := ln.Close(); err != nil {
		t.Fatalf("Listener Close() error = %v", err)
	}

	for name, f := range map[string]*os.File{"stdin": os.Stdin, "stdout": os.Stdout} {
		if _, err := f.Stat(); errors.Is(err, os.ErrClosed) {
			t.Fatalf("%s was closed by Connection/Listener Close()", name)
		}
	}
}
