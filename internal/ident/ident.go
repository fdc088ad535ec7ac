// Package ident provides namespaced block, item and entity identifiers.
//
// An ID is the "namespace:path" pair used by registries and templates. The
// zero ID means "absent" and is what lookups return when nothing is known,
// for example a template whose origin was never recorded.
package ident

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known namespaces.
const (
	Minecraft = "minecraft"
	TFC       = "tfc"
	Beneath   = "beneath"
)

// InfestedPrefix marks the silverfish variants of stone blocks.
const InfestedPrefix = "infested_"

// ErrInvalid is returned when a string is not a valid identifier.
var ErrInvalid = errors.New("invalid identifier")

// ID is an immutable namespaced identifier.
type ID struct {
	Namespace string
	Path      string
}

// New builds an ID from its parts without validation.
func New(namespace, path string) ID {
	return ID{Namespace: namespace, Path: path}
}

// Parse parses "namespace:path". A missing namespace defaults to minecraft.
func Parse(s string) (ID, error) {
	ns, path, found := strings.Cut(s, ":")
	if !found {
		ns, path = Minecraft, s
	}
	if ns == "" {
		ns = Minecraft
	}
	if path == "" {
		return ID{}, fmt.Errorf("%w %q: empty path", ErrInvalid, s)
	}
	if i := strings.IndexFunc(ns, func(r rune) bool { return !validNamespaceRune(r) }); i >= 0 {
		return ID{}, fmt.Errorf("%w %q: bad namespace character %q", ErrInvalid, s, ns[i])
	}
	if i := strings.IndexFunc(path, func(r rune) bool { return !validPathRune(r) }); i >= 0 {
		return ID{}, fmt.Errorf("%w %q: bad path character %q", ErrInvalid, s, path[i])
	}
	return ID{Namespace: ns, Path: path}, nil
}

// TryParse is Parse that reports failure as false.
func TryParse(s string) (ID, bool) {
	id, err := Parse(s)
	if err != nil {
		return ID{}, false
	}
	return id, true
}

// MustParse is Parse that panics on error. Intended for tables and tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func validNamespaceRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.'
}

func validPathRune(r rune) bool {
	return validNamespaceRune(r) || r == '/'
}

// String returns "namespace:path", or "" for the zero ID.
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Namespace + ":" + id.Path
}

// IsZero reports whether the ID is absent.
func (id ID) IsZero() bool {
	return id.Namespace == "" && id.Path == ""
}

// In reports whether the ID belongs to namespace ns.
func (id ID) In(ns string) bool {
	return id.Namespace == ns
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the zero ID.
func (id *ID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = ID{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// StripInfested removes the infested prefix from a path.
func StripInfested(path string) (string, bool) {
	return CutPrefix(path, InfestedPrefix)
}

// CutPrefix returns path without prefix and whether the prefix was present.
func CutPrefix(path, prefix string) (string, bool) {
	return strings.CutPrefix(path, prefix)
}

// CutSuffix returns path without suffix and whether the suffix was present.
func CutSuffix(path, suffix string) (string, bool) {
	return strings.CutSuffix(path, suffix)
}

// TrimSuffix removes suffix if present.
func TrimSuffix(path, suffix string) string {
	return strings.TrimSuffix(path, suffix)
}

// LastSegment returns the part of path after the final '/'.
func LastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
