package transport

import (
	"errors"
	"net"
	"testing"
)

func TestConnectionReadWriteRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	sc := newConnection(server, server, server, server, true, true, true)
	cc := newConnection(client, client, client, client, true, true, true)
	defer sc.Close()
	defer cc.Close()

	done := make(chan error, 1)
	go func() { done <- cc.Write([]byte("hello")) }()

	got, err := sc.Read(16)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("Read() = %q, want hello", got)
	}
	if err := <-done; err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

func TestConnectionReadAfterCloseReturnsClosedError(t *testing.T) {
	server, client := net.Pipe()
	c := newConnection(server, server, server, server, true, true, true)
	client.Close()
	c.Close()

	_, err := c.Read(16)
	if !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("Read() error = %v, want ErrConnectionClosed", err)
	}
}

func TestConnectionCloseIsIdempotent(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	c := newConnection(server, server, server, server, true, true, true)

	if err := c.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v, want nil", err)
	}
}

func TestConnectionDoesNotCloseUnownedSides(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := newConnection(server, server, nil, nil, false, false, false)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	readDone := make(chan error, 1)
	buf := make([]byte, 32)
	go func() {
		_, err := server.Read(buf)
		readDone <- err
	}()

	if _, err := client.Write([]byte("still open")); err != nil {
		t.Fatalf("peer write after unowned Close() error = %v, want nil", err)
	}
	if err := <-readDone; err != nil {
		t.Fatalf("server Read() error = %v, want nil", err)
	}
}
