// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshdesk/internal/core"
	"github.com/toeirei/sshdesk/internal/i18n"
)

func newGlobalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global",
		Short: "Show or replace the lines before the first Host block",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the global section verbatim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := core.GlobalText(a.hosts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	replace := &cobra.Command{
		Use:   "replace [file|-]",
		Short: "Replace the global section with the content of file (or stdin)",
		Long: `Replaces every line before the first Host block. Host blocks are written
back unchanged. The new text must not contain Host lines.

Examples:
  sshdesk global replace global.conf
  printf 'AddKeysToAgent yes\n' | sshdesk global replace -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("global.read_error"), err)
			}
			if err := core.ReplaceGlobal(a.hosts, string(data)); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), i18n.T("global.saved"))
			return nil
		},
	}

	cmd.AddCommand(show, replace)
	return cmd
}
