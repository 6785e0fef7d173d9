// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshdesk/internal/core"
	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/internal/keys"
	"github.com/toeirei/sshdesk/internal/logging"
	"golang.org/x/term"
)

// stdinIsTerminal is swapped out in tests.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

func newKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "key",
		Aliases: []string{"keys"},
		Short:   "List, generate and delete key pairs in the SSH directory",
	}
	cmd.AddCommand(newKeyListCmd(a), newKeyGenerateCmd(a), newKeyDeleteCmd(a), newKeyPubCmd(a))
	return cmd
}

func newKeyListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List private keys with their fingerprints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := a.keys.Describe()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, i18n.T("key.list_empty", a.keys.Dir()))
				return nil
			}
			rows := make([][]string, 0, len(infos))
			for _, k := range infos {
				fp := k.Fingerprint
				if !k.HasPublic {
					fp = i18n.T("key.no_public")
				}
				rows = append(rows, []string{k.Name, k.Type, fp, k.Comment})
			}
			printTable(out, []string{
				i18n.T("key.col_name"),
				i18n.T("key.col_type"),
				i18n.T("key.col_fingerprint"),
				i18n.T("key.col_comment"),
			}, rows)
			return nil
		},
	}
}

func newKeyGenerateCmd(a *app) *cobra.Command {
	var (
		keyType    string
		bits       int
		comment    string
		passphrase string
	)
	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate a new key pair",
		Long: `Generates <name> and <name>.pub in the SSH directory. Existing files are
never overwritten.

When stdin is a terminal and --passphrase is not given, you are asked for
a passphrase; leave it empty for an unencrypted key.

Examples:
  sshdesk key generate id_work --comment me@work
  sshdesk key generate legacy --type rsa --bits 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyType == "" {
				keyType = a.cfg.Keys.DefaultType
			}
			if !cmd.Flags().Changed("passphrase") && stdinIsTerminal() {
				p, err := promptPassphrase(cmd)
				if err != nil {
					return err
				}
				passphrase = p
			}

			req := keys.Request{Name: args[0], Type: keyType, Bits: bits, Comment: comment, Passphrase: passphrase}
			if err := core.CreateKey(cmd.Context(), a.keys, req); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printOK(out, i18n.T("key.generated", args[0]))

			pub, ok, err := a.keys.PublicKey(args[0])
			if err != nil || !ok {
				return err
			}
			fmt.Fprintln(out, pub)
			if a.cfg.Clipboard.AutoCopy {
				if err := copyToClipboard(pub); err != nil {
					logging.Warnf("%s: %v", i18n.T("key.copy_failed"), err)
				} else {
					fmt.Fprintln(out, i18n.T("key.copied"))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyType, "type", "t", "", "Key type: ed25519, rsa or ecdsa (default from config)")
	cmd.Flags().IntVarP(&bits, "bits", "b", 0, "Key size for rsa (>= 2048) or ecdsa (256, 384, 521)")
	cmd.Flags().StringVarP(&comment, "comment", "C", "", "Key comment")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "N", "", "Passphrase for the private key (empty for none)")
	return cmd
}

func promptPassphrase(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	errOut := cmd.ErrOrStderr()
	fmt.Fprint(errOut, i18n.T("key.prompt_passphrase"))
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(errOut)
	if err != nil {
		return "", err
	}
	if len(first) == 0 {
		return "", nil
	}
	fmt.Fprint(errOut, i18n.T("key.prompt_passphrase_again"))
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(errOut)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New(i18n.T("key.passphrase_mismatch"))
	}
	return string(first), nil
}

func newKeyDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a key pair",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := core.ValidateKeyName(name); err != nil {
				return err
			}
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), i18n.T("key.confirm_delete", name))
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if ans := strings.ToLower(strings.TrimSpace(answer)); ans != "y" && ans != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("common.aborted"))
					return nil
				}
			}
			if err := a.keys.DeleteKeypair(name); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), i18n.T("key.deleted", name))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newKeyPubCmd(a *app) *cobra.Command {
	var copyFlag bool
	cmd := &cobra.Command{
		Use:   "pub <name>",
		Short: "Print the public key of <name>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, ok, err := a.keys.PublicKey(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", keys.ErrKeyNotFound, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), pub)
			if copyFlag {
				if err := copyToClipboard(pub); err != nil {
					return fmt.Errorf("%s: %w", i18n.T("key.copy_failed"), err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("key.copied"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Also copy the public key to the clipboard")
	return cmd
}
