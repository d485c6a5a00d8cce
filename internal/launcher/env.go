// Package launcher holds the environment lookups the cross-SDK
// certification harness reads when it shells out to helper binaries. The
// harness itself lives outside this repo; only its environment contract is
// implemented here.
package launcher

import (
	"os"
	"strings"
)

// GoBin returns the helper binary path from GO_BIN, trimmed of
// surrounding whitespace. Empty when unset.
func GoBin() string {
	return strings.TrimSpace(os.Getenv("GO_BIN"))
}

// GoCache returns GOCACHE, defaulting to /tmp/go-cache when the variable
// is absent or blank.
func GoCache() string {
	if v := strings.TrimSpace(os.Getenv("GOCACHE")); v != "" {
		return v
	}
	return "/tmp/go-cache"
}
