// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidAlias is returned for host aliases that cannot be written as
	// a single concrete Host pattern.
	ErrInvalidAlias = errors.New("invalid host alias")
	// ErrInvalidKeyName is returned for key names that are not plain file
	// names.
	ErrInvalidKeyName = errors.New("invalid key name")
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var reservedAliases = []string{"*", "localhost", "default"}

// ValidateHostAlias checks an alias before it reaches the config file.
func ValidateHostAlias(alias string) error {
	a := strings.TrimSpace(alias)
	for _, r := range reservedAliases {
		if strings.EqualFold(a, r) {
			return fmt.Errorf("%w: %q is reserved", ErrInvalidAlias, a)
		}
	}
	if !nameRe.MatchString(a) {
		return fmt.Errorf("%w: %q may only contain letters, digits, '_', '.' and '-'", ErrInvalidAlias, a)
	}
	return nil
}

// ValidateKeyName checks that name can be used as a file name inside the
// key directory.
func ValidateKeyName(name string) error {
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKeyName, name)
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: %q may only contain letters, digits, '_', '.' and '-'", ErrInvalidKeyName, name)
	}
	if strings.HasSuffix(name, ".pub") {
		return fmt.Errorf("%w: %q must not end in .pub", ErrInvalidKeyName, name)
	}
	return nil
}
