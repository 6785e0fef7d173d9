// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for sshdesk.
//
// Usage:
//
//	go run . [flags]
//	./sshdesk [flags]
//
// Without a subcommand the interactive TUI is started. See --help for
// the available commands.
package main

import (
	"fmt"
	"os"

	"github.com/toeirei/sshdesk/internal/i18n"
	"github.com/toeirei/sshdesk/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, i18n.T("tui.error", err))
		os.Exit(1)
	}
}
