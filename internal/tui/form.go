// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/sshdesk/internal/core"
	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/internal/keys"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

type formKind int

const (
	hostForm formKind = iota
	keyForm
)

// Field names. Host directive fields use the directive name itself.
const (
	fieldAlias      = "alias"
	fieldName       = "name"
	fieldType       = "type"
	fieldComment    = "comment"
	fieldPassphrase = "passphrase"
)

// hostFormDirectives are the directives the host form edits, in order.
var hostFormDirectives = []string{"HostName", "User", "Port", "IdentityFile"}

type formField struct {
	name  string
	label string
	input textinput.Model
}

// form is a small stack of text inputs for adding or editing a host or
// generating a key pair.
type form struct {
	kind  formKind
	title string
	// alias is the host being edited; empty when adding.
	alias  string
	fields []formField
	focus  int
	err    string
}

func newFormField(name, label, value string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(value)
	return formField{name: name, label: label, input: ti}
}

// newHostForm builds the add form when entry is nil and the edit form for
// entry otherwise.
func newHostForm(entry *sshconfig.HostEntry) *form {
	f := &form{kind: hostForm, title: i18n.T("tui.form_add_host")}
	if entry != nil {
		f.alias = entry.Host
		f.title = i18n.T("tui.form_edit_host", entry.Host)
	} else {
		f.fields = append(f.fields, newFormField(fieldAlias, i18n.T("tui.field_alias"), ""))
	}
	for _, name := range hostFormDirectives {
		value := ""
		if entry != nil {
			value, _ = entry.Get(name)
		}
		f.fields = append(f.fields, newFormField(name, name, value))
	}
	return f
}

func newKeyForm(defaultType string) *form {
	if defaultType == "" {
		defaultType = "ed25519"
	}
	pass := newFormField(fieldPassphrase, i18n.T("tui.field_passphrase"), "")
	pass.input.EchoMode = textinput.EchoPassword
	return &form{
		kind:  keyForm,
		title: i18n.T("tui.form_generate_key"),
		fields: []formField{
			newFormField(fieldName, i18n.T("tui.field_name"), ""),
			newFormField(fieldType, i18n.T("tui.field_type"), defaultType),
			newFormField(fieldComment, i18n.T("tui.field_comment"), ""),
			pass,
		},
	}
}

// setFocus moves the cursor to field i.
func (f *form) setFocus(i int) tea.Cmd {
	f.focus = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
	return f.fields[f.focus].input.Focus()
}

func (f *form) get(name string) string {
	for _, fld := range f.fields {
		if fld.name == name {
			if name == fieldPassphrase {
				return fld.input.Value()
			}
			return strings.TrimSpace(fld.input.Value())
		}
	}
	return ""
}

func (f *form) view() string {
	width := 0
	for _, fld := range f.fields {
		width = max(width, lipgloss.Width(fld.label))
	}
	rows := []string{titleStyle.Render(f.title), ""}
	for i, fld := range f.fields {
		label := lipgloss.NewStyle().Width(width + 2).Render(fld.label)
		if i == f.focus {
			label = selectedItemStyle.Render(label)
		} else {
			label = itemStyle.Render(label)
		}
		rows = append(rows, label+fld.input.View())
	}
	if f.err != "" {
		rows = append(rows, "", errorStyle.Render(f.err))
	}
	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) openForm(f *form) tea.Cmd {
	m.form = f
	m.mode = modeForm
	return f.setFocus(0)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	f := m.form
	switch {
	case key.Matches(msg, km.Back):
		m.form = nil
		m.mode = modeList
		m.setStatus(i18n.T("common.aborted"), false)
		return m, nil
	case key.Matches(msg, km.Save):
		cmd := m.submitForm()
		return m, cmd
	case key.Matches(msg, km.Open):
		if f.focus == len(f.fields)-1 {
			cmd := m.submitForm()
			return m, cmd
		}
		return m, f.setFocus(f.focus + 1)
	case key.Matches(msg, km.Next):
		return m, f.setFocus(f.focus + 1)
	case key.Matches(msg, km.Prev):
		return m, f.setFocus(f.focus - 1)
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return m, cmd
}

// submitForm checks the input and starts the operation. Invalid input keeps
// the form open with the problem shown under it.
func (m *Model) submitForm() tea.Cmd {
	f := m.form
	f.err = ""
	switch f.kind {
	case hostForm:
		alias := f.alias
		if alias == "" {
			alias = f.get(fieldAlias)
		}
		if err := core.ValidateHostAlias(alias); err != nil {
			f.err = i18n.T("tui.error", err)
			return nil
		}
		if port := f.get("Port"); port != "" {
			if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
				f.err = i18n.T("tui.invalid_port", port)
				return nil
			}
		}
		changes := make([]sshconfig.Param, 0, len(hostFormDirectives))
		for _, name := range hostFormDirectives {
			changes = append(changes, sshconfig.Param{Name: name, Value: f.get(name)})
		}
		m.form, m.mode = nil, modeList
		return m.saveHost(alias, changes)

	default:
		req := keys.Request{
			Name:       f.get(fieldName),
			Type:       f.get(fieldType),
			Comment:    f.get(fieldComment),
			Passphrase: f.get(fieldPassphrase),
		}
		if err := core.ValidateKeyName(req.Name); err != nil {
			f.err = i18n.T("tui.error", err)
			return nil
		}
		m.form, m.mode = nil, modeList
		return m.generateKey(req)
	}
}

func (m *Model) saveHost(alias string, changes []sshconfig.Param) tea.Cmd {
	hd := m.deps.Hosts
	return m.run(func() (string, error) {
		if err := core.UpdateHost(hd, alias, changes, false); err != nil {
			return "", err
		}
		return i18n.T("host.saved", alias), nil
	})
}

func (m *Model) generateKey(req keys.Request) tea.Cmd {
	kd := m.deps.Keys
	return m.run(func() (string, error) {
		if err := core.CreateKey(context.Background(), kd, req); err != nil {
			return "", err
		}
		return i18n.T("key.generated", req.Name), nil
	})
}
