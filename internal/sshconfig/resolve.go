// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"fmt"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// CommonDirectives are resolved by Effective when no names are given.
var CommonDirectives = []string{
	"HostName",
	"User",
	"Port",
	"IdentityFile",
	"ProxyJump",
	"ForwardAgent",
	"ServerAliveInterval",
}

// Effective resolves directives for alias the way ssh itself would:
// wildcard patterns apply and the first obtained value wins. Names with no
// value are omitted from the result.
func (d *Directory) Effective(alias string, names ...string) ([]Param, error) {
	text, err := d.store.ReadText()
	if err != nil {
		return nil, err
	}
	return ResolveText(text, alias, names...)
}

// ResolveText is Effective over in-memory config text.
func ResolveText(text, alias string, names ...string) ([]Param, error) {
	cfg, err := ssh_config.Decode(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	if len(names) == 0 {
		names = CommonDirectives
	}
	var out []Param
	for _, name := range names {
		v, err := cfg.Get(alias, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrResolve, name, err)
		}
		if v != "" {
			out = append(out, Param{Name: name, Value: v})
		}
	}
	return out, nil
}
