// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the terminal user interface for sshdesk: a Hosts tab
// over the blocks of the SSH client config and a Keys tab over the key pairs
// in the SSH directory.
package tui // import "github.com/toeirei/sshdesk/internal/tui"

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/internal/keys"
	"github.com/toeirei/sshdesk/internal/logging"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

// Deps are the services the TUI operates on.
type Deps struct {
	Hosts *sshconfig.Directory
	Keys  *keys.Directory
	// Clipboard copies text; nil disables copying.
	Clipboard func(string) error
	// DefaultKeyType prefills the key generation form.
	DefaultKeyType string
}

type tab int

const (
	hostsTab tab = iota
	keysTab
)

// mode is what the active tab is currently doing.
type mode int

const (
	modeList mode = iota
	modeDetail
	modeFilter
	modeConfirmDelete
	modeEditGlobal
	modeForm
)

// loadedMsg carries a fresh snapshot of the config and key directory.
type loadedMsg struct {
	blocks []*sshconfig.Block
	keys   []keys.KeyInfo
	err    error
}

// opDoneMsg reports the outcome of a mutating operation.
type opDoneMsg struct {
	status string
	err    error
	reload bool
}

var errNoClipboard = errors.New("clipboard is not available")

// Model is the top-level bubbletea model.
type Model struct {
	deps   Deps
	keyMap keyMap
	help   help.Model
	editor textarea.Model
	global globalEdit
	form   *form

	tab  tab
	mode mode
	busy bool

	hosts hostsTabModel
	keys  keysTabModel

	// pending is the alias or key name awaiting delete confirmation.
	pending string

	status    string
	statusErr bool

	width  int
	height int
}

// New builds the model. Data is loaded by the command returned from Init.
func New(deps Deps) Model {
	ed := textarea.New()
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.ShowLineNumbers = true
	ed.SetWidth(72)
	ed.SetHeight(12)

	return Model{
		deps:   deps,
		keyMap: newKeyMap(),
		help:   help.New(),
		editor: ed,
		busy:   true,
	}
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init loads the initial data.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	hd, kd := m.deps.Hosts, m.deps.Keys
	return func() tea.Msg {
		var msg loadedMsg
		var errs []error
		if hd != nil {
			blocks, err := hd.ReadAll()
			msg.blocks = blocks
			errs = append(errs, err)
		}
		if kd != nil {
			infos, err := kd.Describe()
			msg.keys = infos
			errs = append(errs, err)
		}
		msg.err = errors.Join(errs...)
		return msg
	}
}

// run executes op off the UI goroutine and reports its outcome. Further
// input is ignored until the result arrives.
func (m *Model) run(op func() (string, error)) tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		status, err := op()
		return opDoneMsg{status: status, err: err, reload: true}
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if msg.Width > 8 {
			m.editor.SetWidth(min(msg.Width-8, 100))
		}
		if msg.Height > 14 {
			m.editor.SetHeight(msg.Height - 12)
		}
		return m, nil

	case loadedMsg:
		m.busy = false
		m.hosts.setBlocks(msg.blocks)
		m.keys.setKeys(msg.keys)
		if msg.err != nil {
			logging.L.Error("load failed", "err", msg.err)
			m.setStatus(i18n.T("tui.error", msg.err), true)
		}
		return m, nil

	case opDoneMsg:
		m.busy = false
		if msg.err != nil {
			logging.L.Error("operation failed", "err", msg.err)
			m.setStatus(i18n.T("tui.error", msg.err), true)
		} else {
			m.setStatus(msg.status, false)
		}
		if msg.reload {
			m.busy = true
			return m, m.load()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.ForceQuit) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.handleKey(msg)
	}

	switch {
	case m.mode == modeEditGlobal:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	case m.mode == modeForm && m.form != nil:
		var cmd tea.Cmd
		f := m.form
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEditGlobal:
		return m.updateEditor(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeFilter:
		return m.updateFilter(msg)
	case modeDetail:
		if key.Matches(msg, m.keyMap.Back, m.keyMap.Open, m.keyMap.Quit) {
			m.mode = modeList
		}
		return m, nil
	}

	km := m.keyMap
	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.Tab):
		if m.tab == hostsTab {
			m.tab = keysTab
		} else {
			m.tab = hostsTab
		}
		m.setStatus("", false)
		return m, nil
	case key.Matches(msg, km.Reload):
		m.busy = true
		m.setStatus(i18n.T("tui.reloaded"), false)
		return m, m.load()
	case key.Matches(msg, km.Back):
		if m.tab == hostsTab && m.hosts.filter != "" {
			m.hosts.setFilter("")
		}
		return m, nil
	}

	if m.tab == hostsTab {
		return m.updateHostsList(msg)
	}
	return m.updateKeysList(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Yes):
		m.mode = modeList
		name := m.pending
		m.pending = ""
		var cmd tea.Cmd
		if m.tab == hostsTab {
			cmd = m.deleteHost(name)
		} else {
			cmd = m.deleteKey(name)
		}
		return m, cmd
	case key.Matches(msg, m.keyMap.No):
		m.mode = modeList
		m.pending = ""
		m.setStatus(i18n.T("common.aborted"), false)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	switch {
	case m.mode == modeEditGlobal:
		b.WriteString(titleStyle.Render(i18n.T("tui.edit_global_title")))
		b.WriteString("\n")
		b.WriteString(m.editor.View())
	case m.mode == modeForm && m.form != nil:
		b.WriteString(m.form.view())
	case m.mode == modeConfirmDelete:
		b.WriteString(dialogBoxStyle.Render(specialStyle.Render(m.confirmText())))
	case m.tab == hostsTab:
		b.WriteString(m.hostsView())
	default:
		b.WriteString(m.keysView())
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.footerView())
	return docStyle.Render(b.String())
}

func (m Model) tabsView() string {
	render := func(t tab, label string) string {
		if m.tab == t {
			return activeTabStyle.Render(label)
		}
		return inactiveTabStyle.Render(label)
	}
	hosts := fmt.Sprintf("%s (%d)", i18n.T("tui.tab_hosts"), m.hosts.hostCount())
	ks := fmt.Sprintf("%s (%d)", i18n.T("tui.tab_keys"), len(m.keys.items))
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, render(hostsTab, hosts), render(keysTab, ks))
	if m.busy {
		tabs += " " + statusMessageStyle.Render(i18n.T("tui.loading"))
	}
	return tabs
}

func (m Model) confirmText() string {
	if m.tab == hostsTab {
		text := i18n.T("tui.confirm_delete_host", m.pending)
		if n, line := m.hosts.duplicates(m.pending); n > 1 {
			text += "\n" + i18n.T("tui.confirm_delete_duplicate", n, m.pending, line)
		}
		return text
	}
	return i18n.T("tui.confirm_delete_key", m.pending)
}

func (m Model) footerView() string {
	var bindings contextHelp
	km := m.keyMap
	switch m.mode {
	case modeEditGlobal:
		bindings = contextHelp{km.Save, km.Back}
	case modeForm:
		bindings = contextHelp{km.Next, km.Prev, km.Save, km.Back}
	case modeConfirmDelete:
		bindings = contextHelp{km.Yes, km.No}
	case modeFilter:
		bindings = contextHelp{km.Open, km.Back}
	case modeDetail:
		bindings = contextHelp{km.Back}
	default:
		if m.tab == hostsTab {
			bindings = contextHelp{km.Up, km.Down, km.Open, km.Filter, km.Add, km.Edit, km.Delete, km.Tab, km.Reload, km.Quit}
		} else {
			bindings = contextHelp{km.Up, km.Down, km.Open, km.Add, km.Copy, km.Delete, km.Tab, km.Reload, km.Quit}
		}
	}
	right := ""
	if m.tab == hostsTab && m.hosts.filter != "" {
		right = helpStyle.Render(i18n.T("tui.filter_active", m.hosts.filter))
	}
	return alignFooter(m.help.View(bindings), right, m.width)
}
