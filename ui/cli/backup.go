// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshdesk/internal/core"
	"github.com/toeirei/sshdesk/internal/i18n"
)

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of the config and keys",
		Long: `Writes the SSH client config and every key pair into a single,
Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if it's
not already present. If no output file is specified, a default filename
'sshdesk-backup-YYYY-MM-DD.json.zst' is used.

The file contains private keys. Keep it somewhere safe.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputFile string
			if len(args) == 0 {
				outputFile = fmt.Sprintf("sshdesk-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			} else {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}

			data, err := core.Backup(a.hosts, a.keys)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_export"), err)
			}
			f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			defer func() { _ = f.Close() }()
			if err := core.WriteBackup(data, f); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			printOK(cmd.OutOrStdout(), i18n.T("backup.success", outputFile, len(data.Keys)))
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the config and keys from a backup",
		Long: `Replaces the SSH client config with the one stored in the backup and
writes back its key pairs. Keys that already exist are skipped unless
--overwrite is given.

Example:
  sshdesk restore ./sshdesk-backup-2026-10-17.json.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_read"), err)
			}
			defer func() { _ = f.Close() }()

			data, err := core.ReadBackup(f)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_read"), err)
			}
			sum, err := core.Restore(a.hosts, a.keys, data, overwrite)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range sum.KeysSkipped {
				fmt.Fprintln(out, i18n.T("restore.key_skipped", name))
			}
			printOK(out, i18n.T("restore.success", len(sum.KeysWritten)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite keys that already exist")
	return cmd
}
