// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"fmt"
	"strings"
)

// Serialize concatenates the raw lines of every block in order. A block
// whose last line lacks a newline is terminated with one, so the next
// block always starts on a fresh line.
func Serialize(blocks []*Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b == nil {
			continue
		}
		for _, line := range b.lines {
			sb.WriteString(line)
		}
		if n := len(b.lines); n > 0 && !strings.HasSuffix(b.lines[n-1], "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderHostLines produces the canonical lines for a host entry: the header
// followed by one indented directive per param.
func RenderHostLines(entry HostEntry) []string {
	lines := []string{fmt.Sprintf("Host %s\n", entry.Host)}
	for _, p := range entry.Params {
		if p.Name == "" || p.Value == "" || strings.EqualFold(p.Name, "host") {
			continue
		}
		lines = append(lines, fmt.Sprintf("    %s %s\n", p.Name, p.Value))
	}
	return lines
}
