// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/toeirei/sshdesk/internal/keys"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

const (
	testSSHDir = "/home/tester/.ssh"
	testConfig = testSSHDir + "/config"
	hostsOnly  = "Host a\n    User x\n\nHost b\n  Port 22\n"
	withGlobal = "# top\nUser me\n\n" + hostsOnly
)

type fixture struct {
	fs    afero.Fs
	hosts *sshconfig.Directory
	keys  *keys.Directory
}

func newFixture(t *testing.T, content string) fixture {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(testSSHDir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, testConfig, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return fixture{
		fs:    fsys,
		hosts: sshconfig.NewDirectory(sshconfig.NewStore(fsys, testConfig), nil),
		keys:  keys.NewDirectory(fsys, testSSHDir, keys.NativeGenerator{}, nil),
	}
}

func (f fixture) config(t *testing.T) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, testConfig)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestSaveHost(t *testing.T) {
	f := newFixture(t, "")
	err := SaveHost(f.hosts, sshconfig.HostEntry{Host: " web ", Params: []sshconfig.Param{{Name: "Port", Value: "22"}}})
	if err != nil {
		t.Fatalf("SaveHost: %v", err)
	}
	if got := f.config(t); got != "Host web\n    Port 22\n" {
		t.Fatalf("config = %q", got)
	}

	if err := SaveHost(f.hosts, sshconfig.HostEntry{Host: "*"}); !errors.Is(err, ErrInvalidAlias) {
		t.Fatalf("expected ErrInvalidAlias, got %v", err)
	}
	if got := f.config(t); got != "Host web\n    Port 22\n" {
		t.Fatalf("rejected alias changed the file: %q", got)
	}
}

func TestUpdateHost(t *testing.T) {
	tests := []struct {
		name    string
		alias   string
		changes []sshconfig.Param
		replace bool
		want    string
	}{
		{
			name:    "merges into existing",
			alias:   "a",
			changes: []sshconfig.Param{{Name: "Port", Value: "2200"}},
			want:    "Host a\n    User x\n    Port 2200\nHost b\n  Port 22\n",
		},
		{
			name:    "empty value removes",
			alias:   "a",
			changes: []sshconfig.Param{{Name: "User", Value: ""}, {Name: "HostName", Value: "h"}},
			want:    "Host a\n    HostName h\nHost b\n  Port 22\n",
		},
		{
			name:    "replace drops existing",
			alias:   "b",
			changes: []sshconfig.Param{{Name: "User", Value: "y"}},
			replace: true,
			want:    "Host a\n    User x\n\nHost b\n    User y\n",
		},
		{
			name:    "new host is appended",
			alias:   "c",
			changes: []sshconfig.Param{{Name: "HostName", Value: "c.example"}},
			want:    hostsOnly + "Host c\n    HostName c.example\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, hostsOnly)
			if err := UpdateHost(f.hosts, tt.alias, tt.changes, tt.replace); err != nil {
				t.Fatalf("UpdateHost: %v", err)
			}
			if got := f.config(t); got != tt.want {
				t.Fatalf("config = %q, want %q", got, tt.want)
			}
		})
	}

	f := newFixture(t, hostsOnly)
	if err := UpdateHost(f.hosts, "localhost", nil, false); !errors.Is(err, ErrInvalidAlias) {
		t.Fatalf("expected ErrInvalidAlias, got %v", err)
	}
}

func TestCreateKey(t *testing.T) {
	f := newFixture(t, "")
	if err := CreateKey(context.Background(), f.keys, keys.Request{Name: "../x"}); !errors.Is(err, ErrInvalidKeyName) {
		t.Fatalf("expected ErrInvalidKeyName, got %v", err)
	}
	if err := CreateKey(context.Background(), f.keys, keys.Request{Name: "id_test"}); err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	if !f.keys.KeyExists("id_test") {
		t.Fatal("key pair missing")
	}
}

func TestReplaceGlobal(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		text    string
		want    string
	}{
		{"replace existing", withGlobal, "User ops\n", "User ops\n" + hostsOnly},
		{"insert at head", hostsOnly, "Include extra", "Include extra\n" + hostsOnly},
		{"remove", withGlobal, "", hostsOnly},
		{"empty file", "", "User me\n", "User me\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.initial)
			if err := ReplaceGlobal(f.hosts, tt.text); err != nil {
				t.Fatalf("ReplaceGlobal: %v", err)
			}
			if got := f.config(t); got != tt.want {
				t.Fatalf("config = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceGlobal_RejectsHostLines(t *testing.T) {
	f := newFixture(t, withGlobal)
	if err := ReplaceGlobal(f.hosts, "User me\nHost sneaky\n"); !errors.Is(err, ErrHostInGlobal) {
		t.Fatalf("expected ErrHostInGlobal, got %v", err)
	}
	if f.config(t) != withGlobal {
		t.Fatal("file changed on rejected edit")
	}
}

func TestGlobalText(t *testing.T) {
	f := newFixture(t, withGlobal)
	got, err := GlobalText(f.hosts)
	if err != nil || got != "# top\nUser me\n\n" {
		t.Fatalf("GlobalText = %q, %v", got, err)
	}
	f = newFixture(t, hostsOnly)
	if got, _ := GlobalText(f.hosts); got != "" {
		t.Fatalf("GlobalText without global = %q", got)
	}
}
