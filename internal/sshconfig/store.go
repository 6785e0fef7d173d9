// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Sentinel errors returned by this package. Wrapped errors keep the
// underlying cause, so errors.Is(err, fs.ErrPermission) still works.
var (
	ErrIO         = errors.New("ssh config i/o failure")
	ErrEmptyAlias = errors.New("host alias is required")
	ErrResolve    = errors.New("ssh config resolution failed")
)

const (
	dirPerm  os.FileMode = 0o700
	filePerm os.FileMode = 0o600

	maxLinkHops = 40
)

// Store is the backing file of a configuration document.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a Store for the config file at path on fsys. A nil fsys
// means the operating system filesystem.
func NewStore(fsys afero.Fs, path string) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys, path: path}
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// Fs returns the filesystem the store operates on.
func (s *Store) Fs() afero.Fs { return s.fs }

// Provision creates the parent directory (0700) and an empty config file
// (0600) if they do not exist yet. It is safe to call repeatedly.
func (s *Store) Provision() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, filepath.Dir(s.path), err)
	}
	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, s.path, err)
	}
	return nil
}

// ReadText returns the raw file content. An absent file is provisioned and
// reads as "".
func (s *Store) ReadText() (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", s.Provision()
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrIO, s.path, err)
	}
	return string(data), nil
}

// Load reads and parses the backing file.
func (s *Store) Load() ([]*Block, error) {
	text, err := s.ReadText()
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}

// Save serializes blocks and replaces the backing file.
func (s *Store) Save(blocks []*Block) error {
	return s.WriteText(Serialize(blocks))
}

// WriteText replaces the backing file with text. The content is written to
// a temporary file in the same directory and renamed over the target, so
// the old content survives any failure. A symlinked config is written
// through: the file the link points to is replaced and the link stays.
func (s *Store) WriteText(text string) error {
	target, err := s.target()
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %w", ErrIO, dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: sync %s: %w", ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close %s: %w", ErrIO, tmpName, err)
	}
	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmpName, err)
	}
	if err := s.fs.Rename(tmpName, target); err != nil {
		cleanup()
		return fmt.Errorf("%w: replace %s: %w", ErrIO, target, err)
	}
	return nil
}

// target returns the file a write must replace: the configured path with
// every symlink along the chain followed. Filesystems without symlink
// support return the path unchanged.
func (s *Store) target() (string, error) {
	sl, ok := s.fs.(afero.Symlinker)
	if !ok {
		return s.path, nil
	}
	path := s.path
	for range maxLinkHops {
		fi, lstatCalled, err := sl.LstatIfPossible(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
		}
		if !lstatCalled || fi.Mode()&fs.ModeSymlink == 0 {
			return path, nil
		}
		dest, err := sl.ReadlinkIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("%w: readlink %s: %w", ErrIO, path, err)
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", fmt.Errorf("%w: %s: too many levels of symbolic links", ErrIO, s.path)
}
