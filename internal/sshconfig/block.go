// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshconfig reads and writes an OpenSSH client configuration file
// as an ordered sequence of blocks. Every block keeps the exact lines it was
// parsed from, so a read-modify-write cycle leaves untouched blocks
// byte-identical.
package sshconfig // import "github.com/toeirei/sshdesk/internal/sshconfig"

import (
	"fmt"
	"strings"
)

// Kind tags a Block as either the implicit leading Global section or a
// section opened by a `Host` line.
type Kind int

const (
	// KindGlobal is the run of lines before the first Host header.
	KindGlobal Kind = iota
	// KindHost is a block opened by a `Host <patterns>` line.
	KindHost
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindHost:
		return "host"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Block is one contiguous run of configuration lines. The raw lines are the
// source of truth; params is a cache derived from them.
type Block struct {
	kind   Kind
	alias  string
	lines  []string
	params map[string]string
	order  []string
}

// NewGlobalBlock builds a Global block from raw lines (newlines included).
func NewGlobalBlock(lines []string) *Block {
	b := &Block{kind: KindGlobal}
	b.SetLines(lines)
	return b
}

// NewHostBlock builds a Host block. The first line is expected to be the
// `Host` header; it is never treated as a directive.
func NewHostBlock(alias string, lines []string) *Block {
	b := &Block{kind: KindHost, alias: strings.TrimSpace(alias)}
	b.SetLines(lines)
	return b
}

// Kind reports whether b is a Global or Host block.
func (b *Block) Kind() Kind { return b.kind }

// IsHost is shorthand for b.Kind() == KindHost.
func (b *Block) IsHost() bool { return b.kind == KindHost }

// Alias returns the verbatim pattern list that follows the Host keyword.
// It is empty for Global blocks and for a bare `Host` line.
func (b *Block) Alias() string { return b.alias }

// ID returns the first pattern of the header. Lookups by alias compare
// against this value.
func (b *Block) ID() string {
	if f := strings.Fields(b.alias); len(f) > 0 {
		return f[0]
	}
	return ""
}

// Patterns returns every whitespace-separated pattern of the header.
func (b *Block) Patterns() []string { return strings.Fields(b.alias) }

// Lines returns a copy of the raw lines.
func (b *Block) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text joins the raw lines back into a single string.
func (b *Block) Text() string { return strings.Join(b.lines, "") }

// SetLines replaces the raw lines wholesale and rebuilds params.
func (b *Block) SetLines(lines []string) {
	b.lines = make([]string, len(lines))
	copy(b.lines, lines)
	b.rebuildParams()
}

// Params returns a copy of the directive map derived from the raw lines.
func (b *Block) Params() map[string]string {
	out := make(map[string]string, len(b.params))
	for k, v := range b.params {
		out[k] = v
	}
	return out
}

// Param looks up a single directive by its case-sensitive name.
func (b *Block) Param(name string) (string, bool) {
	v, ok := b.params[name]
	return v, ok
}

// ParamNames lists directive names in the order they first appear.
func (b *Block) ParamNames() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// String renders a short, human readable label for listings.
func (b *Block) String() string {
	switch b.kind {
	case KindHost:
		return "Host " + b.alias
	default:
		return fmt.Sprintf("Global (%d lines)", len(b.lines))
	}
}

func (b *Block) rebuildParams() {
	b.params = make(map[string]string)
	b.order = b.order[:0]
	for i, line := range b.lines {
		if i == 0 && b.kind == KindHost {
			continue
		}
		key, value, ok := splitDirective(line)
		if !ok {
			continue
		}
		if _, seen := b.params[key]; !seen {
			b.order = append(b.order, key)
		}
		b.params[key] = value
	}
}

// splitDirective splits `Name value...` on the first whitespace run.
// Blank lines, comments and single-token lines yield ok == false.
func splitDirective(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	idx := strings.IndexAny(trimmed, " \t")
	if idx < 0 {
		return "", "", false
	}
	value = strings.TrimSpace(trimmed[idx:])
	if value == "" {
		return "", "", false
	}
	return trimmed[:idx], value, true
}
