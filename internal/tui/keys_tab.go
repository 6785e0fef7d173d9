// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/internal/keys"
)

type keysTabModel struct {
	items  []keys.KeyInfo
	cursor int
	// detail is the public key shown in detail mode, read when it opens.
	detail string
}

func (k *keysTabModel) setKeys(items []keys.KeyInfo) {
	k.items = items
	if k.cursor >= len(items) {
		k.cursor = max(len(items)-1, 0)
	}
}

func (k keysTabModel) selected() (keys.KeyInfo, bool) {
	if k.cursor < 0 || k.cursor >= len(k.items) {
		return keys.KeyInfo{}, false
	}
	return k.items[k.cursor], true
}

func (m Model) updateKeysList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	switch {
	case key.Matches(msg, km.Up):
		if m.keys.cursor > 0 {
			m.keys.cursor--
		}
	case key.Matches(msg, km.Down):
		if m.keys.cursor < len(m.keys.items)-1 {
			m.keys.cursor++
		}
	case key.Matches(msg, km.Open):
		if k, ok := m.keys.selected(); ok {
			m.keys.detail = i18n.T("key.no_public")
			if pub, found, err := m.deps.Keys.PublicKey(k.Name); err == nil && found {
				m.keys.detail = pub
			}
			m.mode = modeDetail
		}
	case key.Matches(msg, km.Add):
		cmd := m.openForm(newKeyForm(m.deps.DefaultKeyType))
		return m, cmd
	case key.Matches(msg, km.Copy):
		if k, ok := m.keys.selected(); ok {
			cmd := m.copyKey(k.Name)
			return m, cmd
		}
	case key.Matches(msg, km.Delete):
		if k, ok := m.keys.selected(); ok {
			m.pending = k.Name
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m *Model) copyKey(name string) tea.Cmd {
	kd, clip := m.deps.Keys, m.deps.Clipboard
	m.busy = true
	return func() tea.Msg {
		if clip == nil {
			return opDoneMsg{err: errNoClipboard}
		}
		pub, ok, err := kd.PublicKey(name)
		if err == nil && !ok {
			err = fmt.Errorf("%w: %s.pub", keys.ErrKeyNotFound, name)
		}
		if err == nil {
			err = clip(pub)
		}
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: i18n.T("key.copied")}
	}
}

func (m *Model) deleteKey(name string) tea.Cmd {
	kd := m.deps.Keys
	return m.run(func() (string, error) {
		if err := kd.DeleteKeypair(name); err != nil {
			return "", err
		}
		return i18n.T("key.deleted", name), nil
	})
}

func (m Model) keysView() string {
	k := m.keys
	if m.mode == modeDetail {
		if info, ok := k.selected(); ok {
			return paneStyle.Width(80).Render(titleStyle.Render(info.Name) + "\n" + k.detail)
		}
	}

	var rows []string
	if len(k.items) == 0 {
		rows = append(rows, helpStyle.Render(i18n.T("tui.keys_empty")))
	}
	for i, info := range k.items {
		line := fmt.Sprintf("%-24s %-20s", info.Name, info.Type)
		if info.HasPublic {
			line += " " + helpStyle.Render(info.Fingerprint)
		} else {
			line += " " + specialStyle.Render(i18n.T("key.no_public"))
		}
		if i == k.cursor {
			rows = append(rows, selectedItemStyle.Render("▸ ")+line)
		} else {
			rows = append(rows, itemStyle.Render("  ")+line)
		}
	}
	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
