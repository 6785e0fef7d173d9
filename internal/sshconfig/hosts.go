// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/toeirei/sshdesk/internal/logging"
)

// Param is a single `Name Value` directive.
type Param struct {
	Name  string
	Value string
}

// HostEntry is the editable view of a Host block: the alias plus its
// directives in insertion order.
type HostEntry struct {
	Host   string
	Params []Param
}

// Get returns the value of the first param called name.
func (e HostEntry) Get(name string) (string, bool) {
	for _, p := range e.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Set overwrites name in place, or appends it when absent.
func (e *HostEntry) Set(name, value string) {
	for i := range e.Params {
		if e.Params[i].Name == name {
			e.Params[i].Value = value
			return
		}
	}
	e.Params = append(e.Params, Param{Name: name, Value: value})
}

// Del removes every param called name.
func (e *HostEntry) Del(name string) {
	kept := e.Params[:0]
	for _, p := range e.Params {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	e.Params = kept
}

// EntryFromBlock builds the merged view of a Host block. Params come in
// first-seen order with last-wins values.
func EntryFromBlock(b *Block) HostEntry {
	e := HostEntry{Host: b.ID()}
	for _, name := range b.order {
		e.Params = append(e.Params, Param{Name: name, Value: b.params[name]})
	}
	return e
}

// FindHost returns the index of the first Host block whose ID equals alias,
// or -1.
func FindHost(blocks []*Block, alias string) int {
	for i, b := range blocks {
		if b.IsHost() && b.ID() == alias {
			return i
		}
	}
	return -1
}

// Directory performs host operations as one read-mutate-write cycle per
// call. It holds no document between calls.
type Directory struct {
	store *Store
	log   *log.Logger
}

// NewDirectory returns a Directory backed by store. A nil logger falls back
// to the package-level application logger.
func NewDirectory(store *Store, logger *log.Logger) *Directory {
	if logger == nil {
		logger = logging.L
	}
	return &Directory{store: store, log: logger}
}

// Store exposes the backing store.
func (d *Directory) Store() *Store { return d.store }

// ReadAll returns every block of the current file in file order.
func (d *Directory) ReadAll() ([]*Block, error) {
	return d.store.Load()
}

// WriteAll replaces the file with blocks as given. Callers use it after
// editing a block's raw lines, which keeps the formatting of every block.
func (d *Directory) WriteAll(blocks []*Block) error {
	if err := d.store.Save(blocks); err != nil {
		return err
	}
	d.log.Debug("ssh config written", "path", d.store.Path(), "blocks", len(blocks))
	return nil
}

// Hosts returns the merged view of every Host block in file order.
func (d *Directory) Hosts() ([]HostEntry, error) {
	blocks, err := d.store.Load()
	if err != nil {
		return nil, err
	}
	var out []HostEntry
	for _, b := range blocks {
		if b.IsHost() {
			out = append(out, EntryFromBlock(b))
		}
	}
	return out, nil
}

// AddOrUpdateHost writes entry as a freshly rendered Host block. An
// existing block with the same alias is replaced wholesale, dropping its
// comments and formatting; otherwise the block is appended.
func (d *Directory) AddOrUpdateHost(entry HostEntry) error {
	entry.Host = strings.TrimSpace(entry.Host)
	if entry.Host == "" {
		return ErrEmptyAlias
	}
	blocks, err := d.store.Load()
	if err != nil {
		return err
	}

	lines := RenderHostLines(entry)
	if i := FindHost(blocks, entry.Host); i >= 0 {
		blocks[i] = NewHostBlock(entry.Host, lines)
		d.log.Info("updating host", "alias", entry.Host)
	} else {
		blocks = append(blocks, NewHostBlock(entry.Host, lines))
		d.log.Info("adding host", "alias", entry.Host)
	}
	return d.WriteAll(blocks)
}

// DeleteHost removes the first Host block matching alias. It reports false,
// and leaves the file untouched, when no block matches.
func (d *Directory) DeleteHost(alias string) (bool, error) {
	blocks, err := d.store.Load()
	if err != nil {
		return false, err
	}
	i := FindHost(blocks, alias)
	if i < 0 {
		d.log.Debug("host not found", "alias", alias)
		return false, nil
	}
	blocks = append(blocks[:i], blocks[i+1:]...)
	if err := d.WriteAll(blocks); err != nil {
		return false, err
	}
	d.log.Info("deleted host", "alias", alias)
	return true, nil
}

// GetHostEntry returns the merged view of the first Host block matching
// alias.
func (d *Directory) GetHostEntry(alias string) (HostEntry, bool, error) {
	blocks, err := d.store.Load()
	if err != nil {
		return HostEntry{}, false, err
	}
	i := FindHost(blocks, alias)
	if i < 0 {
		return HostEntry{}, false, nil
	}
	return EntryFromBlock(blocks[i]), true, nil
}
