// Package identity parses the frontmatter header of a holon identity
// file. The header is a "---"-delimited block of key: value pairs at the
// very start of the file; everything after the closing delimiter is the
// holon's body and is not interpreted here.
package identity

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrMissingFrontmatter is returned when the file does not begin with
	// a --- delimiter line.
	ErrMissingFrontmatter = errors.New("identity: missing frontmatter")
	// ErrUnterminatedFrontmatter is returned when the opening ---
	// delimiter is never matched by a closing one.
	ErrUnterminatedFrontmatter = errors.New("identity: unterminated frontmatter")
)

const delimiter = "---"

// Identity is the decoded frontmatter of a holon identity file. String
// fields are empty when the corresponding key is absent; list fields are
// nil.
type Identity struct {
	UUID         string
	GivenName    string
	FamilyName   string
	Motto        string
	Composer     string
	Clade        string
	Status       string
	Born         string
	Lang         string
	Reproduction string
	GeneratedBy  string
	ProtoStatus  string
	Parents      []string
	Aliases      []string

	// Extra preserves keys the parser does not recognize, so a newer
	// header survives a round trip through an older SDK.
	Extra map[string]string
}

// Parse reads an identity file from r and decodes its frontmatter block.
func Parse(r io.Reader) (*Identity, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, ErrMissingFrontmatter
	}
	if strings.TrimRight(scanner.Text(), " \t\r") != delimiter {
		return nil, ErrMissingFrontmatter
	}

	id := &Identity{}
	terminated := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == delimiter {
			terminated = true
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		id.assign(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("identity: reading frontmatter: %w", err)
	}
	if !terminated {
		return nil, ErrUnterminatedFrontmatter
	}

	return id, nil
}

func (id *Identity) assign(key, value string) {
	switch key {
	case "uuid":
		id.UUID = unquote(value)
	case "given_name":
		id.GivenName = unquote(value)
	case "family_name":
		id.FamilyName = unquote(value)
	case "motto":
		id.Motto = unquote(value)
	case "composer":
		id.Composer = unquote(value)
	case "clade":
		id.Clade = unquote(value)
	case "status":
		id.Status = unquote(value)
	case "born":
		id.Born = unquote(value)
	case "lang":
		id.Lang = unquote(value)
	case "reproduction":
		id.Reproduction = unquote(value)
	case "generated_by":
		id.GeneratedBy = unquote(value)
	case "proto_status":
		id.ProtoStatus = unquote(value)
	case "parents":
		id.Parents = parseList(value)
	case "aliases":
		id.Aliases = parseList(value)
	default:
		if id.Extra == nil {
			id.Extra = map[string]string{}
		}
		id.Extra[key] = unquote(value)
	}
}

// Validate checks the fields that have a constrained format. Only the
// uuid is format-checked; everything else is free-form text chosen by the
// holon's composer.
func (id *Identity) Validate() error {
	if id.UUID == "" {
		return nil
	}
	if _, err := uuid.Parse(id.UUID); err != nil {
		return fmt.Errorf("identity: bad uuid %q: %w", id.UUID, err)
	}
	return nil
}

// unquote strips one pair of ASCII double quotes if value carries them.
func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// parseList decodes the [a, b, c] list syntax. A bare value outside
// brackets is treated as a single-element list.
func parseList(value string) []string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		value = value[1 : len(value)-1]
	}
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = unquote(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
