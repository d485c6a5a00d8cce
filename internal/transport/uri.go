package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Scheme identifies one of the six URI schemes this SDK recognizes.
type Scheme string

const (
	SchemeTCP   Scheme = "tcp"
	SchemeUnix  Scheme = "unix"
	SchemeStdio Scheme = "stdio"
	SchemeMem   Scheme = "mem"
	SchemeWS    Scheme = "ws"
	SchemeWSS   Scheme = "wss"
)

const (
	defaultTCPPort = 9090
	defaultWSPort  = 80
	defaultWSSPort = 443
	defaultWSPath  = "/grpc"
)

// URI is the immutable, parsed form of a scheme-tagged transport address.
type URI struct {
	Raw    string
	Scheme Scheme
	Host   string
	Port   int
	Path   string
}

// SchemeOf returns the prefix before "://", or raw itself if there is no
// "://" separator. It performs no validation.
func SchemeOf(raw string) string {
	if idx := strings.Index(raw, "://"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

// Parse decodes raw into a URI, or returns an *InvalidURIError /
// *UnsupportedURIError. Parse is pure: it performs no I/O.
func Parse(raw string) (*URI, error) {
	idx := strings.Index(raw, "://")
	if idx < 0 {
		return nil, &UnsupportedURIError{Raw: raw, Scheme: raw}
	}
	scheme := raw[:idx]
	rest := raw[idx+3:]

	switch Scheme(scheme) {
	case SchemeTCP:
		return parseTCPLike(raw, rest, SchemeTCP, defaultTCPPort, false)
	case SchemeUnix:
		return parseUnix(raw, rest)
	case SchemeStdio:
		return parseStdio(raw, rest)
	case SchemeMem:
		return &URI{Raw: raw, Scheme: SchemeMem, Path: rest}, nil
	case SchemeWS:
		return parseTCPLike(raw, rest, SchemeWS, defaultWSPort, true)
	case SchemeWSS:
		return parseTCPLike(raw, rest, SchemeWSS, defaultWSSPort, true)
	default:
		return nil, &UnsupportedURIError{Raw: raw, Scheme: scheme}
	}
}

func parseTCPLike(raw, rest string, scheme Scheme, defaultPort int, withPath bool) (*URI, error) {
	hostport := rest
	path := ""

	if withPath {
		if slash := strings.Index(rest, "/"); slash >= 0 {
			hostport = rest[:slash]
			path = rest[slash:]
		}
		if path == "" {
			path = defaultWSPath
		}
	}

	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		if strings.Contains(err.Error(), "missing port") {
			host = strings.TrimSuffix(strings.TrimPrefix(hostport, "["), "]")
			portStr = ""
		} else {
			return nil, &InvalidURIError{Raw: raw, Reason: fmt.Sprintf("bad host:port %q: %v", hostport, err)}
		}
	}

	port := defaultPort
	if portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p < 0 || p > 65535 {
			return nil, &InvalidURIError{Raw: raw, Reason: fmt.Sprintf("bad port %q", portStr)}
		}
		port = p
	}

	return &URI{Raw: raw, Scheme: scheme, Host: host, Port: port, Path: path}, nil
}

func parseUnix(raw, rest string) (*URI, error) {
	if rest == "" {
		return nil, &InvalidURIError{Raw: raw, Reason: "unix:// requires a non-empty path"}
	}
	return &URI{Raw: raw, Scheme: SchemeUnix, Path: rest}, nil
}

func parseStdio(raw, rest string) (*URI, error) {
	if rest != "" {
		return nil, &InvalidURIError{Raw: raw, Reason: "stdio:// accepts no host, port, or path"}
	}
	return &URI{Raw: raw, Scheme: SchemeStdio}, nil
}

// String renders the canonical form of u. For well-formed inputs,
// Parse(u.String()) reproduces an equivalent URI.
func (u *URI) String() string {
	switch u.Scheme {
	case SchemeTCP, SchemeWS, SchemeWSS:
		hostport := net.JoinHostPort(u.Host, strconv.Itoa(u.Port))
		if u.Scheme == SchemeTCP {
			return "tcp://" + hostport
		}
		path := u.Path
		if path == "" {
			path = defaultWSPath
		}
		return string(u.Scheme) + "://" + hostport + path
	case SchemeUnix:
		return "unix://" + u.Path
	case SchemeStdio:
		return "stdio://"
	case SchemeMem:
		return "mem://" + u.Path
	default:
		return u.Raw
	}
}
