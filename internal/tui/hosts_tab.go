// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/sshdesk/internal/core"
	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

// hostsTabModel lists every block of the config file, the Global block
// included, in file order.
type hostsTabModel struct {
	blocks  []*sshconfig.Block
	visible []int // indexes into blocks that pass the filter
	cursor  int
	filter  string
}

func (h *hostsTabModel) setBlocks(blocks []*sshconfig.Block) {
	h.blocks = blocks
	h.rebuild()
}

func (h *hostsTabModel) setFilter(f string) {
	h.filter = f
	h.rebuild()
}

func (h *hostsTabModel) rebuild() {
	h.visible = h.visible[:0]
	needle := strings.ToLower(h.filter)
	for i, b := range h.blocks {
		if needle != "" && !strings.Contains(strings.ToLower(b.Alias()), needle) {
			continue
		}
		h.visible = append(h.visible, i)
	}
	if h.cursor >= len(h.visible) {
		h.cursor = max(len(h.visible)-1, 0)
	}
}

func (h hostsTabModel) hostCount() int {
	n := 0
	for _, b := range h.blocks {
		if b.IsHost() {
			n++
		}
	}
	return n
}

func (h hostsTabModel) selected() *sshconfig.Block {
	if h.cursor < 0 || h.cursor >= len(h.visible) {
		return nil
	}
	return h.blocks[h.visible[h.cursor]]
}

func (h hostsTabModel) global() *sshconfig.Block {
	if len(h.blocks) > 0 && !h.blocks[0].IsHost() {
		return h.blocks[0]
	}
	return nil
}

// duplicates reports how many Host blocks are named alias and the line
// number of the first one, which is the one host operations act on.
func (h hostsTabModel) duplicates(alias string) (count, line int) {
	line = 1
	seen := false
	for _, b := range h.blocks {
		if b.IsHost() && b.ID() == alias {
			count++
			seen = true
		}
		if !seen {
			line += len(b.Lines())
		}
	}
	return count, line
}

func (m Model) updateHostsList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	switch {
	case key.Matches(msg, km.Up):
		if m.hosts.cursor > 0 {
			m.hosts.cursor--
		}
	case key.Matches(msg, km.Down):
		if m.hosts.cursor < len(m.hosts.visible)-1 {
			m.hosts.cursor++
		}
	case key.Matches(msg, km.Open):
		if m.hosts.selected() != nil {
			m.mode = modeDetail
		}
	case key.Matches(msg, km.Filter):
		m.mode = modeFilter
		m.hosts.setFilter("")
	case key.Matches(msg, km.Add):
		cmd := m.openForm(newHostForm(nil))
		return m, cmd
	case key.Matches(msg, km.Edit):
		if b := m.hosts.selected(); b != nil && b.IsHost() {
			entry := sshconfig.EntryFromBlock(b)
			cmd := m.openForm(newHostForm(&entry))
			return m, cmd
		}
		text := ""
		if g := m.hosts.global(); g != nil {
			text = g.Text()
		}
		m.global = newGlobalEdit(text)
		m.editor.SetValue(m.global.shown)
		m.mode = modeEditGlobal
		cmd := m.editor.Focus()
		return m, cmd
	case key.Matches(msg, km.Delete):
		b := m.hosts.selected()
		if b == nil {
			return m, nil
		}
		if !b.IsHost() {
			m.setStatus(i18n.T("tui.cannot_delete_global"), true)
			return m, nil
		}
		m.pending = b.ID()
		m.mode = modeConfirmDelete
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.hosts.setFilter("")
	case tea.KeyEnter:
		m.mode = modeList
	case tea.KeyBackspace:
		if f := []rune(m.hosts.filter); len(f) > 0 {
			m.hosts.setFilter(string(f[:len(f)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.hosts.setFilter(m.hosts.filter + string(msg.Runes))
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Save):
		value := m.editor.Value()
		m.editor.Blur()
		m.mode = modeList
		if m.global.unchanged(value) {
			m.setStatus(i18n.T("global.unchanged"), false)
			return m, nil
		}
		cmd := m.saveGlobal(m.global.restore(value))
		return m, cmd
	case key.Matches(msg, m.keyMap.Back):
		m.editor.Blur()
		m.mode = modeList
		m.setStatus(i18n.T("common.aborted"), false)
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) deleteHost(alias string) tea.Cmd {
	hd := m.deps.Hosts
	return m.run(func() (string, error) {
		ok, err := hd.DeleteHost(alias)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s", i18n.T("host.not_found", alias))
		}
		return i18n.T("host.deleted", alias), nil
	})
}

func (m *Model) saveGlobal(text string) tea.Cmd {
	hd := m.deps.Hosts
	return m.run(func() (string, error) {
		if err := core.ReplaceGlobal(hd, text); err != nil {
			return "", err
		}
		return i18n.T("global.saved"), nil
	})
}

func (m Model) hostsView() string {
	h := m.hosts
	if m.mode == modeDetail {
		if b := h.selected(); b != nil {
			return paneStyle.Render(titleStyle.Render(b.String()) + "\n" + strings.TrimRight(b.Text(), "\n"))
		}
	}

	var rows []string
	if len(h.visible) == 0 {
		rows = append(rows, helpStyle.Render(i18n.T("tui.hosts_empty")))
	}
	for i, idx := range h.visible {
		b := h.blocks[idx]
		var line string
		switch b.Kind() {
		case sshconfig.KindGlobal:
			line = globalItemStyle.Render(i18n.T("tui.global_item", len(b.Lines())))
		case sshconfig.KindHost:
			line = b.Alias()
			if hn, ok := b.Param("HostName"); ok {
				line += helpStyle.Render("  " + hn)
			}
		}
		if i == h.cursor {
			rows = append(rows, selectedItemStyle.Render("▸ ")+line)
		} else {
			rows = append(rows, itemStyle.Render("  ")+line)
		}
	}
	if m.mode == modeFilter {
		rows = append(rows, "", titleStyle.Render(i18n.T("tui.filter_prompt")+" "+h.filter+"█"))
	}
	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
