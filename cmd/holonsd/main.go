package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Organic-Programming/swift-holons/internal/capability"
	"github.com/Organic-Programming/swift-holons/internal/config"
	"github.com/Organic-Programming/swift-holons/internal/holonrpc"
	"github.com/Organic-Programming/swift-holons/internal/identity"
	"github.com/Organic-Programming/swift-holons/internal/logging"
	"github.com/Organic-Programming/swift-holons/internal/serveflags"
	"github.com/Organic-Programming/swift-holons/internal/transport"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = serve(os.Args[2:])
	case "connect":
		err = connect(os.Args[2:])
	case "capabilities":
		err = printCapabilities()
	case "identity":
		err = printIdentity(os.Args[2:])
	case "help", "--help", "-h":
		usage()
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "holonsd: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: holonsd <command>

commands:
  serve [--listen URI | --port N]   accept connections and echo bytes
  connect URL                       dial a Holon-RPC server and heartbeat once
  capabilities                      print the capability manifest
  identity FILE                     parse an identity file header`)
}

// serve binds the listen URI and echoes every accepted connection's bytes
// back to it, one goroutine per connection. It is the byte-level smoke
// service the certification harness drives against each transport.
func serve(args []string) error {
	uri, err := serveflags.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if uri == serveflags.DefaultListen && cfg.Transport.DefaultListen != "" {
		uri = cfg.Transport.DefaultListen
	}

	log := logging.Component("holonsd")
	ln, err := transport.ListenRuntime(uri)
	if err != nil {
		return err
	}
	defer ln.Close()
	log.Info().Str("uri", ln.BoundURI()).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if _, closed := err.(*transport.ListenerClosedError); closed {
				return nil
			}
			return err
		}
		go echo(conn, log)
	}
}

func echo(conn *transport.Connection, log *zerolog.Logger) {
	defer conn.Close()
	for {
		buf, err := conn.Read(4096)
		if err != nil {
			log.Debug().Err(err).Msg("read failed")
			return
		}
		if len(buf) == 0 {
			return
		}
		if err := conn.Write(buf); err != nil {
			log.Debug().Err(err).Msg("write failed")
			return
		}
	}
}

// connect dials a Holon-RPC server with the configured timing and proves
// the carrier with one explicit heartbeat round trip.
func connect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("connect takes exactly one URL argument")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	d, err := config.ResolveDurations(cfg.Holon)
	if err != nil {
		return err
	}

	client := holonrpc.New(holonrpc.Config{
		HeartbeatInterval: d.HeartbeatInterval,
		HeartbeatTimeout:  d.HeartbeatTimeout,
		ReconnectMinDelay: d.ReconnectMinDelay,
		ReconnectMaxDelay: d.ReconnectMaxDelay,
		ReconnectFactor:   d.ReconnectFactor,
		ReconnectJitter:   d.ReconnectJitter,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Connect(ctx, args[0]); err != nil {
		return err
	}

	hbCtx, hbCancel := context.WithTimeout(context.Background(), d.HeartbeatTimeout)
	defer hbCancel()
	if _, err := client.Invoke(hbCtx, "rpc.heartbeat", map[string]any{}); err != nil {
		return err
	}

	fmt.Println("connected:", args[0])
	return nil
}

func printCapabilities() error {
	raw, err := capability.JSON()
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func printIdentity(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("identity takes exactly one FILE argument")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	id, err := identity.Parse(f)
	if err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return err
	}

	fmt.Printf("uuid:   %s\n", id.UUID)
	fmt.Printf("name:   %s %s\n", id.GivenName, id.FamilyName)
	fmt.Printf("status: %s\n", id.Status)
	fmt.Printf("lang:   %s\n", id.Lang)
	if len(id.Parents) > 0 {
		fmt.Printf("parents: %v\n", id.Parents)
	}
	return nil
}
