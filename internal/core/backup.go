// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/sshdesk/internal/keys"
	"github.com/toeirei/sshdesk/internal/logging"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

// BackupFormatVersion is written into every backup and checked on read.
const BackupFormatVersion = 1

// ErrBackupVersion is returned when a backup was written by a newer format.
var ErrBackupVersion = errors.New("unsupported backup format version")

// KeyBackup holds one key pair.
type KeyBackup struct {
	Name    string `json:"name"`
	Private []byte `json:"private"`
	Public  []byte `json:"public,omitempty"`
}

// BackupData is the content of a backup file.
type BackupData struct {
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	Config    string      `json:"config"`
	Keys      []KeyBackup `json:"keys"`
}

// RestoreSummary reports what Restore did.
type RestoreSummary struct {
	KeysWritten []string
	KeysSkipped []string
}

// Backup collects the config text and every listed key pair.
func Backup(hd *sshconfig.Directory, kd *keys.Directory) (*BackupData, error) {
	text, err := hd.Store().ReadText()
	if err != nil {
		return nil, err
	}
	data := &BackupData{
		Version:   BackupFormatVersion,
		CreatedAt: time.Now().UTC(),
		Config:    text,
		Keys:      []KeyBackup{},
	}
	names, err := kd.ListKeys()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		priv, pub, err := kd.ReadPair(name)
		if err != nil {
			return nil, err
		}
		data.Keys = append(data.Keys, KeyBackup{Name: name, Private: priv, Public: pub})
	}
	return data, nil
}

// WriteBackup writes compressed JSON backup data to w.
func WriteBackup(data *BackupData, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush backup: %w", err)
	}
	return nil
}

// ReadBackup decodes a zstd-compressed JSON backup.
func ReadBackup(r io.Reader) (*BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var data BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if data.Version < 1 || data.Version > BackupFormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBackupVersion, data.Version)
	}
	return &data, nil
}

// Restore writes the backed-up config through the atomic store and puts
// the key pairs back. Existing keys are skipped unless overwrite is set.
func Restore(hd *sshconfig.Directory, kd *keys.Directory, data *BackupData, overwrite bool) (RestoreSummary, error) {
	var sum RestoreSummary
	if err := hd.Store().WriteText(data.Config); err != nil {
		return sum, err
	}
	logging.L.Info("restored ssh config", "path", hd.Store().Path())

	for _, k := range data.Keys {
		err := kd.WritePair(k.Name, k.Private, k.Public, overwrite)
		if errors.Is(err, keys.ErrKeyExists) {
			sum.KeysSkipped = append(sum.KeysSkipped, k.Name)
			continue
		}
		if err != nil {
			return sum, err
		}
		sum.KeysWritten = append(sum.KeysWritten, k.Name)
	}
	return sum, nil
}
