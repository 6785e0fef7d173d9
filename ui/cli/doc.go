// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the sshdesk command line using Cobra. Commands stay
// thin: they parse flags, call into sshconfig, keys and core, and render the
// result with lipgloss.
package cli
