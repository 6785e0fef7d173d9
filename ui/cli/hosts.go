// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshdesk/internal/core"
	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/internal/sshconfig"
)

func newHostCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "host",
		Aliases: []string{"hosts"},
		Short:   "List, show, add, update and delete Host blocks",
	}
	cmd.AddCommand(newHostListCmd(a), newHostShowCmd(a), newHostSetCmd(a), newHostDeleteCmd(a))
	return cmd
}

func newHostListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every Host block in file order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts, err := a.hosts.Hosts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(hosts) == 0 {
				fmt.Fprintln(out, i18n.T("host.list_empty"))
				return nil
			}
			rows := make([][]string, 0, len(hosts))
			for _, h := range hosts {
				hostname, _ := h.Get("HostName")
				user, _ := h.Get("User")
				port, _ := h.Get("Port")
				rows = append(rows, []string{h.Host, hostname, user, port})
			}
			printTable(out, []string{
				i18n.T("host.col_alias"),
				i18n.T("host.col_hostname"),
				i18n.T("host.col_user"),
				i18n.T("host.col_port"),
			}, rows)
			return nil
		},
	}
}

func newHostShowCmd(a *app) *cobra.Command {
	var effective bool
	cmd := &cobra.Command{
		Use:   "show <alias>",
		Short: "Print the directives of one Host block",
		Long: `Prints the directives written in the Host block for <alias>.

With --effective, prints what ssh would actually use for <alias> after
wildcard blocks such as "Host *" are applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]
			out := cmd.OutOrStdout()
			if effective {
				params, err := a.hosts.Effective(alias)
				if err != nil {
					return err
				}
				for _, p := range params {
					fmt.Fprintf(out, "%s %s\n", p.Name, p.Value)
				}
				return nil
			}
			entry, ok, err := a.hosts.GetHostEntry(alias)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("host.not_found", alias))
			}
			fmt.Fprintf(out, "Host %s\n", entry.Host)
			for _, p := range entry.Params {
				fmt.Fprintf(out, "    %s %s\n", p.Name, p.Value)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&effective, "effective", false, "Resolve values the way ssh would, including wildcard blocks")
	return cmd
}

func newHostSetCmd(a *app) *cobra.Command {
	var (
		hostname     string
		user         string
		port         int
		identityFile string
		options      []string
		replace      bool
	)
	cmd := &cobra.Command{
		Use:   "set <alias>",
		Short: "Add a Host block or update an existing one",
		Long: `Writes the Host block for <alias>. Existing directives are kept unless
--replace is given; flags and -o options override them. An option with an
empty value (-o Name=) removes that directive.

The block is rewritten in canonical form, so comments inside it are lost.
Every other block in the file is left byte for byte as it was.

Examples:
  sshdesk host set web --hostname 10.0.0.5 --user deploy --port 2222
  sshdesk host set web -o ServerAliveInterval=60 -o ForwardAgent=yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := strings.TrimSpace(args[0])
			if err := core.ValidateHostAlias(alias); err != nil {
				return err
			}

			var changes []sshconfig.Param
			flags := cmd.Flags()
			if flags.Changed("hostname") {
				changes = append(changes, sshconfig.Param{Name: "HostName", Value: hostname})
			}
			if flags.Changed("user") {
				changes = append(changes, sshconfig.Param{Name: "User", Value: user})
			}
			if flags.Changed("port") {
				if port < 1 || port > 65535 {
					return errors.New(i18n.T("host.invalid_port", port))
				}
				changes = append(changes, sshconfig.Param{Name: "Port", Value: strconv.Itoa(port)})
			}
			if flags.Changed("identity-file") {
				changes = append(changes, sshconfig.Param{Name: "IdentityFile", Value: identityFile})
			}
			for _, o := range options {
				name, value, ok := parseOption(o)
				if !ok {
					return errors.New(i18n.T("host.invalid_option", o))
				}
				changes = append(changes, sshconfig.Param{Name: name, Value: value})
			}

			if err := core.UpdateHost(a.hosts, alias, changes, replace); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), i18n.T("host.saved", alias))
			return nil
		},
	}
	cmd.Flags().StringVar(&hostname, "hostname", "", "HostName directive")
	cmd.Flags().StringVarP(&user, "user", "u", "", "User directive")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port directive")
	cmd.Flags().StringVarP(&identityFile, "identity-file", "i", "", "IdentityFile directive")
	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "Any directive as Name=Value (repeatable)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Start from an empty block instead of the existing directives")
	return cmd
}

// parseOption splits "Name=Value" or "Name Value".
func parseOption(o string) (name, value string, ok bool) {
	o = strings.TrimSpace(o)
	i := strings.IndexAny(o, "= \t")
	if i <= 0 {
		return "", "", false
	}
	name = o[:i]
	if strings.EqualFold(name, "host") {
		return "", "", false
	}
	return name, strings.TrimSpace(o[i+1:]), true
}

func newHostDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <alias>",
		Aliases: []string{"rm"},
		Short:   "Delete the first Host block matching <alias>",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.hosts.DeleteHost(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("host.not_found", args[0]))
			}
			printOK(cmd.OutOrStdout(), i18n.T("host.deleted", args[0]))
			return nil
		},
	}
}
