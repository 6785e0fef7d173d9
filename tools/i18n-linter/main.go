// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the translation files against the source tree. Keys
// used through i18n.T but missing from a locale fail the run; keys present
// in the primary locale but never used are reported as orphans.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

var usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

// report is the outcome of one lint run.
type report struct {
	used    []string
	orphans []string
	// missing maps a locale file name to the keys it lacks.
	missing map[string][]string
}

func (r report) failed() bool {
	for _, keys := range r.missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	r, err := lint(".", localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{missing: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, err
	}
	r.used = sortedKeys(used)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("load primary locale: %w", err)
	}

	for k := range primary {
		if _, ok := used[k]; !ok {
			r.orphans = append(r.orphans, k)
		}
	}
	sort.Strings(r.orphans)

	for _, file := range files {
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", file, err)
		}
		var missing []string
		for k := range used {
			if _, ok := keys[k]; !ok {
				missing = append(missing, k)
			}
		}
		if filepath.Base(file) != primaryLocale {
			for k := range primary {
				if _, ok := keys[k]; !ok {
					if _, dup := used[k]; !dup {
						missing = append(missing, k)
					}
				}
			}
		}
		sort.Strings(missing)
		r.missing[filepath.Base(file)] = missing
	}
	return r, nil
}

// findUsedKeys collects the literal message IDs passed to i18n.T in
// non-test Go files below root.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a YAML file and returns a flat set of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML turns nested maps into dot-separated keys.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			flattenYAML(p, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func printReport(w io.Writer, r report) {
	fmt.Fprintf(w, "%d translation keys used in source code\n\n", len(r.used))

	fmt.Fprintln(w, "--- Orphaned keys (in primary locale but not used in code) ---")
	if len(r.orphans) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, k := range r.orphans {
		fmt.Fprintf(w, "  - %s\n", k)
	}

	fmt.Fprintln(w, "\n--- Missing keys ---")
	locales := make([]string, 0, len(r.missing))
	for l := range r.missing {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	for _, l := range locales {
		if len(r.missing[l]) == 0 {
			fmt.Fprintf(w, "%s: all keys present\n", l)
			continue
		}
		fmt.Fprintf(w, "%s:\n", l)
		for _, k := range r.missing[l] {
			fmt.Fprintf(w, "  - %s\n", k)
		}
	}
}
