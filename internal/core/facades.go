// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core holds the validated entry points shared by the CLI and the
// TUI. The packages below it (sshconfig, keys) trust their input; core is
// where user input is checked.
package core // import "github.com/toeirei/sshdesk/internal/core"

import (
	"context"
	"errors"
	"strings"

	"github.com/toeirei/sshdesk/internal/keys"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

// ErrHostInGlobal is returned when replacement Global text contains a Host
// line, which would split it into several blocks on the next read.
var ErrHostInGlobal = errors.New("global section must not contain Host lines")

// SaveHost validates entry.Host and writes the entry.
func SaveHost(dir *sshconfig.Directory, entry sshconfig.HostEntry) error {
	entry.Host = strings.TrimSpace(entry.Host)
	if err := ValidateHostAlias(entry.Host); err != nil {
		return err
	}
	return dir.AddOrUpdateHost(entry)
}

// UpdateHost merges changes into the entry for alias and saves it. A change
// with an empty value removes that directive. With replace set, the
// existing directives are dropped first.
func UpdateHost(dir *sshconfig.Directory, alias string, changes []sshconfig.Param, replace bool) error {
	alias = strings.TrimSpace(alias)
	if err := ValidateHostAlias(alias); err != nil {
		return err
	}
	entry := sshconfig.HostEntry{Host: alias}
	if !replace {
		existing, ok, err := dir.GetHostEntry(alias)
		if err != nil {
			return err
		}
		if ok {
			entry = existing
		}
	}
	for _, c := range changes {
		if c.Value == "" {
			entry.Del(c.Name)
			continue
		}
		entry.Set(c.Name, c.Value)
	}
	return dir.AddOrUpdateHost(entry)
}

// CreateKey validates req.Name and generates the key pair.
func CreateKey(ctx context.Context, kd *keys.Directory, req keys.Request) error {
	if err := ValidateKeyName(req.Name); err != nil {
		return err
	}
	return kd.GenerateKeypair(ctx, req)
}

// GlobalText returns the raw text of the leading Global block, or "".
func GlobalText(dir *sshconfig.Directory) (string, error) {
	blocks, err := dir.ReadAll()
	if err != nil {
		return "", err
	}
	if len(blocks) > 0 && !blocks[0].IsHost() {
		return blocks[0].Text(), nil
	}
	return "", nil
}

// ReplaceGlobal swaps the lines of the leading Global block for text. A
// file without one gets a new Global block at the head. Host blocks are
// written back untouched.
func ReplaceGlobal(dir *sshconfig.Directory, text string) error {
	blocks, err := dir.ReadAll()
	if err != nil {
		return err
	}
	lines := sshconfig.SplitLines(text)
	for _, l := range lines {
		if sshconfig.IsHostHeader(l) {
			return ErrHostInGlobal
		}
	}
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n"
	}

	switch {
	case len(blocks) > 0 && !blocks[0].IsHost():
		if len(lines) == 0 {
			blocks = blocks[1:]
		} else {
			blocks[0].SetLines(lines)
		}
	case len(lines) > 0:
		blocks = append([]*sshconfig.Block{sshconfig.NewGlobalBlock(lines)}, blocks...)
	default:
		return nil
	}
	return dir.WriteAll(blocks)
}
