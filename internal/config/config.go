// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists sshdesk settings. Values come from
// defaults, sshdesk.yaml, SSHDESK_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the persisted application settings.
type Config struct {
	SSHDir     string          `mapstructure:"ssh_dir" yaml:"ssh_dir"`
	ConfigFile string          `mapstructure:"config_file" yaml:"config_file"`
	Language   string          `mapstructure:"language" yaml:"language"`
	Keys       KeysConfig      `mapstructure:"keys" yaml:"keys"`
	Clipboard  ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
	Log        LogConfig       `mapstructure:"log" yaml:"log"`
}

// KeysConfig selects how key pairs are generated.
type KeysConfig struct {
	Generator   string `mapstructure:"generator" yaml:"generator"`
	KeygenPath  string `mapstructure:"keygen_path" yaml:"keygen_path"`
	DefaultType string `mapstructure:"default_type" yaml:"default_type"`
}

// ClipboardConfig controls copying public keys.
type ClipboardConfig struct {
	AutoCopy bool `mapstructure:"auto_copy" yaml:"auto_copy"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Defaults returns the built-in values for every key.
func Defaults() map[string]any {
	return map[string]any{
		"ssh_dir":             "~/.ssh",
		"config_file":         "",
		"language":            "en",
		"keys.generator":      "auto",
		"keys.keygen_path":    "ssh-keygen",
		"keys.default_type":   "ed25519",
		"clipboard.auto_copy": true,
		"log.level":           "info",
		"log.file":            "",
	}
}

// FlagBindings maps config keys to the command-line flags that override them.
var FlagBindings = map[string]string{
	"ssh_dir":     "ssh-dir",
	"config_file": "ssh-config",
	"language":    "language",
	"log.level":   "log-level",
}

// ResolvedSSHDir returns SSHDir with a leading "~" expanded.
func (c Config) ResolvedSSHDir() (string, error) {
	return ExpandHome(c.SSHDir)
}

// ResolvedConfigFile returns the SSH client config path, defaulting to
// <ssh_dir>/config.
func (c Config) ResolvedConfigFile() (string, error) {
	if c.ConfigFile != "" {
		return ExpandHome(c.ConfigFile)
	}
	dir, err := c.ResolvedSSHDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "sshdesk")
		default:
			configDir = "/etc/sshdesk"
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(userDir, "sshdesk")
	}

	return filepath.Join(configDir, "sshdesk.yaml"), nil
}

// LoadConfig builds a T from defaults, the first sshdesk.yaml found (or
// explicitPath), the environment and cmd's flags. A missing config file is
// reported as viper.ConfigFileNotFoundError together with the loaded value.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("sshdesk")
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var readErr error
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return c, err
		}
		readErr = err
	}

	v.SetEnvPrefix("sshdesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, flag := range FlagBindings {
			if f := cmd.Flags().Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, readErr
}

// WriteConfigFile stores c as YAML in the user (or system) config location
// and returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo stores c as YAML at path.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
