// Package ident parses and validates namespaced identifiers of the form
// "namespace:path", as used for blocks, items and entity kinds.
package ident

import (
	"fmt"
	"strings"
)

// DefaultNamespace is assumed when an identifier carries no explicit
// namespace.
const DefaultNamespace = "gridkit"

type Identifier struct {
	Namespace string
	Path      string
}

func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}

func (id Identifier) IsZero() bool {
	return id.Namespace == "" && id.Path == ""
}

// Parse splits s on the first colon. A missing namespace falls back to
// DefaultNamespace. Namespaces allow [a-z0-9_.-]; paths additionally allow
// '/'.
func Parse(s string) (Identifier, error) {
	ns := DefaultNamespace
	path := s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		ns = s[:i]
		path = s[i+1:]
	}
	if ns == "" {
		return Identifier{}, fmt.Errorf("identifier %q: empty namespace", s)
	}
	if path == "" {
		return Identifier{}, fmt.Errorf("identifier %q: empty path", s)
	}
	if j := invalidAt(ns, false); j >= 0 {
		return Identifier{}, fmt.Errorf("identifier %q: bad namespace char %q", s, ns[j])
	}
	if j := invalidAt(path, true); j >= 0 {
		return Identifier{}, fmt.Errorf("identifier %q: bad path char %q", s, path[j])
	}
	return Identifier{Namespace: ns, Path: path}, nil
}

// MustParse is for identifiers known valid at compile time, typically
// package-level constants.
func MustParse(s string) Identifier {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func invalidAt(s string, allowSlash bool) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '.' || c == '-':
		case c == '/' && allowSlash:
		default:
			return i
		}
	}
	return -1
}
