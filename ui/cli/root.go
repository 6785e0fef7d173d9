// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// root.go sets up the command-line interface for sshdesk using the Cobra
// library. It defines the root command, shared flags, service wiring and the
// main entry point for execution.

package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/sshdesk/buildvars"
	"github.com/toeirei/sshdesk/internal/config"
	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/internal/keys"
	"github.com/toeirei/sshdesk/internal/logging"
	"github.com/toeirei/sshdesk/internal/sshconfig"
	"github.com/toeirei/sshdesk/internal/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// runTUI is swapped out in tests.
var runTUI = tui.Run

// app holds the services built from the loaded configuration. Every
// command receives the same instance from NewRootCmd.
type app struct {
	cfgFile string
	verbose bool

	cfg   config.Config
	hosts *sshconfig.Directory
	keys  *keys.Directory
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	explicit, err := a.configPathFromCli(cmd)
	if err != nil {
		return err
	}

	a.cfg, err = config.LoadConfig[config.Config](cmd, config.Defaults(), explicit)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run: persist the defaults so the user has a file to edit.
		if path, writeErr := config.WriteConfigFile(&a.cfg, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("wrote default config to %s", path)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	i18n.Init(a.cfg.Language)

	if err := logging.SetLevel(a.cfg.Log.Level); err != nil {
		logging.Warnf("%v", err)
	}
	if a.verbose {
		logging.SetDebug(true)
	}
	if a.cfg.Log.File != "" {
		path, err := config.ExpandHome(a.cfg.Log.File)
		if err == nil {
			err = logging.SetOutputFile(path)
		}
		if err != nil {
			logging.Warnf("could not open log file: %v", err)
		}
	}

	sshDir, err := a.cfg.ResolvedSSHDir()
	if err != nil {
		return err
	}
	configFile, err := a.cfg.ResolvedConfigFile()
	if err != nil {
		return err
	}
	gen, err := keys.NewGenerator(a.cfg.Keys.Generator, a.cfg.Keys.KeygenPath)
	if err != nil {
		return err
	}

	a.hosts = sshconfig.NewDirectory(sshconfig.NewStore(nil, configFile), logging.L)
	a.keys = keys.NewDirectory(nil, sshDir, gen, logging.L)
	logging.Debugf("ssh dir %s, config %s, generator %s", sshDir, configFile, gen.Name())
	return nil
}

func (a *app) configPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") || a.cfgFile == "" {
		return nil, nil
	}
	if _, err := os.Stat(a.cfgFile); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &a.cfgFile, nil
}

// Execute runs the CLI entrypoint.
func Execute() error {
	defer func() { _ = logging.Close() }()
	return NewRootCmd().Execute()
}

// NewRootCmd creates and configures a new root cobra command. Tests call it
// to get a fresh, isolated command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sshdesk",
		Short: "sshdesk manages your SSH client config and key pairs.",
		Long: `sshdesk edits ~/.ssh/config one Host block at a time and keeps every
other block exactly as you wrote it. It also lists, generates and removes
key pairs in your SSH directory.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(tui.Deps{
				Hosts:          a.hosts,
				Keys:           a.keys,
				Clipboard:      copyToClipboard,
				DefaultKeyType: a.cfg.Keys.DefaultType,
			})
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/sshdesk/sshdesk.yaml)")
	cmd.PersistentFlags().String("ssh-dir", "~/.ssh", "SSH directory holding keys and the client config")
	cmd.PersistentFlags().String("ssh-config", "", "SSH client config file (default is <ssh-dir>/config)")
	cmd.PersistentFlags().String("language", "en", `Interface language ("en", "ru")`)
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newHostCmd(a),
		newGlobalCmd(a),
		newKeyCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// No config or services are needed to print the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	if c != "" && c != "dev" && c != v {
		v += " (" + c + ")"
	}
	if d != "" {
		v += " built: " + d
	}
	return v
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}
	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/sshdesk" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && resolvedCommit != "" && resolvedCommit != "dev" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
