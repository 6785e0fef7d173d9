// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

// The textarea expands tabs and drops control characters. globalEdit keeps
// the raw line behind every line it shows, so lines the user did not touch
// are written back byte for byte.
type globalEdit struct {
	shown string
	raw   map[string][]string
}

func newGlobalEdit(text string) globalEdit {
	san := runeutil.NewSanitizer()
	g := globalEdit{raw: make(map[string][]string)}
	var shown []string
	for _, line := range sshconfig.SplitLines(text) {
		raw := strings.TrimSuffix(line, "\n")
		disp := string(san.Sanitize([]rune(strings.TrimSuffix(raw, "\r"))))
		shown = append(shown, disp)
		g.raw[disp] = append(g.raw[disp], raw)
	}
	g.shown = strings.Join(shown, "\n")
	return g
}

func (g globalEdit) unchanged(value string) bool {
	return value == g.shown
}

// restore maps edited text back onto the raw lines. Repeated lines take
// their raw forms in order.
func (g globalEdit) restore(value string) string {
	used := make(map[string]int)
	lines := strings.Split(value, "\n")
	for i, l := range lines {
		raws := g.raw[l]
		if len(raws) == 0 {
			continue
		}
		n := min(used[l], len(raws)-1)
		lines[i] = raws[n]
		used[l]++
	}
	return strings.Join(lines, "\n")
}
