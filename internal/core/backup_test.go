// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/sshdesk/internal/keys"
)

func TestBackupRestoreRoundTrip(t *testing.T) {
	src := newFixture(t, withGlobal)
	for _, name := range []string{"id_a", "id_b"} {
		if err := src.keys.GenerateKeypair(context.Background(), keys.Request{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	data, err := Backup(src.hosts, src.keys)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if data.Version != BackupFormatVersion || len(data.Keys) != 2 || data.Config != withGlobal {
		t.Fatalf("unexpected backup: version=%d keys=%d", data.Version, len(data.Keys))
	}

	var buf bytes.Buffer
	if err := WriteBackup(data, &buf); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}
	read, err := ReadBackup(&buf)
	if err != nil {
		t.Fatalf("ReadBackup: %v", err)
	}

	dst := newFixture(t, "Host stale\n")
	sum, err := Restore(dst.hosts, dst.keys, read, false)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(sum.KeysWritten) != 2 || len(sum.KeysSkipped) != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if dst.config(t) != withGlobal {
		t.Fatalf("config not restored: %q", dst.config(t))
	}
	for _, k := range data.Keys {
		priv, pub, err := dst.keys.ReadPair(k.Name)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(priv, k.Private) || !bytes.Equal(pub, k.Public) {
			t.Fatalf("key %s differs after restore", k.Name)
		}
		st, err := dst.fs.Stat(testSSHDir + "/" + k.Name)
		if err != nil {
			t.Fatal(err)
		}
		if st.Mode().Perm() != 0o600 {
			t.Fatalf("restored private key perm = %o", st.Mode().Perm())
		}
	}

	// A second restore without overwrite keeps the existing keys.
	sum, err = Restore(dst.hosts, dst.keys, read, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(sum.KeysSkipped) != 2 || len(sum.KeysWritten) != 0 {
		t.Fatalf("second restore summary = %+v", sum)
	}
	sum, err = Restore(dst.hosts, dst.keys, read, true)
	if err != nil || len(sum.KeysWritten) != 2 {
		t.Fatalf("overwrite restore = %+v, %v", sum, err)
	}
}

func TestReadBackup_RejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.NewEncoder(zw).Encode(BackupData{Version: BackupFormatVersion + 1}); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBackup(&buf); !errors.Is(err, ErrBackupVersion) {
		t.Fatalf("expected ErrBackupVersion, got %v", err)
	}
}

func TestReadBackup_Garbage(t *testing.T) {
	if _, err := ReadBackup(bytes.NewReader([]byte("not zstd"))); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestBackup_EmptyDirectory(t *testing.T) {
	src := newFixture(t, "")
	data, err := Backup(src.hosts, src.keys)
	if err != nil {
		t.Fatal(err)
	}
	if data.Config != "" || data.Keys == nil || len(data.Keys) != 0 {
		t.Fatalf("unexpected empty backup: %+v", data)
	}
}
