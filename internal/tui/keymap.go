// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/toeirei/sshdesk/internal/i18n"
)

// keyMap holds every binding the TUI reacts to.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Tab       key.Binding
	Open      key.Binding
	Back      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Filter    key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Reload    key.Binding
	Save      key.Binding
	Yes       key.Binding
	No        key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", i18n.T("help.up"))),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", i18n.T("help.down"))),
		Tab:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", i18n.T("help.tab"))),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", i18n.T("help.open"))),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", i18n.T("help.back"))),
		Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", i18n.T("help.next"))),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", i18n.T("help.prev"))),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", i18n.T("help.filter"))),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", i18n.T("help.add"))),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", i18n.T("help.edit"))),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", i18n.T("help.delete"))),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", i18n.T("help.copy"))),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", i18n.T("help.reload"))),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", i18n.T("help.save"))),
		Yes:       key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", i18n.T("help.yes"))),
		No:        key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", i18n.T("help.no"))),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", i18n.T("help.quit"))),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// contextHelp is the footer for the current tab and mode.
type contextHelp []key.Binding

func (c contextHelp) ShortHelp() []key.Binding  { return c }
func (c contextHelp) FullHelp() [][]key.Binding { return [][]key.Binding{c} }
