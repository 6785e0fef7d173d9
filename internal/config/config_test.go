package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/toeirei/sshdesk/internal/config"
)

// isolate points the user config dir at a temp dir and runs from another
// temp dir, so no real sshdesk.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	t.Setenv("HOME", filepath.Join(tmp, "home"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	work := filepath.Join(tmp, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		t.Fatalf("expected ConfigFileNotFoundError, got %T %v", err, err)
	}
	if got.Language != "en" {
		t.Fatalf("expected default language en, got %q", got.Language)
	}
	if got.Keys.Generator != "auto" || got.Keys.DefaultType != "ed25519" {
		t.Fatalf("unexpected key defaults: %+v", got.Keys)
	}
	if !got.Clipboard.AutoCopy {
		t.Fatal("expected auto_copy to default to true")
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "custom.yaml")
	content := "ssh_dir: /srv/ssh\nlanguage: ru\nkeys:\n  generator: native\nlog:\n  level: debug\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.SSHDir != "/srv/ssh" || got.Language != "ru" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.Keys.Generator != "native" || got.Keys.KeygenPath != "ssh-keygen" {
		t.Fatalf("unexpected keys section: %+v", got.Keys)
	}
	if got.Log.Level != "debug" {
		t.Fatalf("expected debug log level, got %q", got.Log.Level)
	}
}

func TestLoadConfig_EnvAndFlagsOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SSHDESK_LANGUAGE", "ru")
	t.Setenv("SSHDESK_KEYS_GENERATOR", "keygen")

	cmd := &cobra.Command{}
	cmd.Flags().String("ssh-dir", "", "")
	if err := cmd.Flags().Set("ssh-dir", "/tmp/flag-ssh"); err != nil {
		t.Fatal(err)
	}

	got, _ := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if got.Language != "ru" {
		t.Fatalf("expected env language ru, got %q", got.Language)
	}
	if got.Keys.Generator != "keygen" {
		t.Fatalf("expected env generator keygen, got %q", got.Keys.Generator)
	}
	if got.SSHDir != "/tmp/flag-ssh" {
		t.Fatalf("expected flag ssh dir, got %q", got.SSHDir)
	}
}

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	isolate(t)

	c := cfg.Config{SSHDir: "~/.ssh", Language: "en"}
	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	want, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %o", st.Mode().Perm())
	}

	loaded, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.SSHDir != "~/.ssh" {
		t.Fatalf("round trip lost ssh_dir: %+v", loaded)
	}
}

func TestResolvedPaths(t *testing.T) {
	tmp := isolate(t)
	home := filepath.Join(tmp, "home")

	c := cfg.Config{SSHDir: "~/.ssh"}
	dir, err := c.ResolvedSSHDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(home, ".ssh") {
		t.Fatalf("unexpected ssh dir %s", dir)
	}
	file, err := c.ResolvedConfigFile()
	if err != nil {
		t.Fatal(err)
	}
	if file != filepath.Join(home, ".ssh", "config") {
		t.Fatalf("unexpected config file %s", file)
	}

	c.ConfigFile = "/etc/ssh/ssh_config"
	if file, _ := c.ResolvedConfigFile(); file != "/etc/ssh/ssh_config" {
		t.Fatalf("explicit config file ignored: %s", file)
	}
}
