// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"strings"
)

// Parse splits config text into blocks. It never fails: malformed lines are
// kept verbatim in whichever block they fall into.
func Parse(text string) []*Block {
	blocks := []*Block{}

	var (
		kind    Kind
		alias   string
		pending []string
		open    bool
	)
	flush := func() {
		if !open || len(pending) == 0 {
			return
		}
		if kind == KindHost {
			blocks = append(blocks, NewHostBlock(alias, pending))
		} else {
			blocks = append(blocks, NewGlobalBlock(pending))
		}
		pending = nil
		open = false
	}

	for _, line := range SplitLines(text) {
		if a, ok := hostHeader(line); ok {
			flush()
			kind, alias, open = KindHost, a, true
			pending = append(pending, line)
			continue
		}
		if !open {
			kind, alias, open = KindGlobal, "", true
		}
		pending = append(pending, line)
	}
	flush()

	return blocks
}

// SplitLines splits text after every "\n", keeping the newline on each line.
// A trailing fragment without a newline is returned as the last line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// IsHostHeader reports whether line opens a Host block.
func IsHostHeader(line string) bool {
	_, ok := hostHeader(line)
	return ok
}

// hostHeader reports whether line opens a Host block and returns the
// trimmed remainder after the keyword. `HostName x` is not a header.
func hostHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	idx := strings.IndexAny(trimmed, " \t")
	keyword := trimmed
	if idx >= 0 {
		keyword = trimmed[:idx]
	}
	if !strings.EqualFold(keyword, "host") {
		return "", false
	}
	if idx < 0 {
		return "", true
	}
	return strings.TrimSpace(trimmed[idx:]), true
}
