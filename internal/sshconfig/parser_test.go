// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"reflect"
	"testing"
)

const sample = `# managed by hand
Include ~/.ssh/conf.d/*

Host alpha
    HostName 10.0.0.1
    # jump through bastion
    User ops

Host beta gamma
  HostName beta.example.com
  Port 2222
  Port 2223
`

func TestParse_Empty(t *testing.T) {
	blocks := Parse("")
	if blocks == nil {
		t.Fatal("Parse(\"\") should return a non-nil slice")
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}

func TestParse_Blocks(t *testing.T) {
	blocks := Parse(sample)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	g := blocks[0]
	if g.Kind() != KindGlobal || g.IsHost() {
		t.Fatalf("first block should be global, got %v", g.Kind())
	}
	if got, want := g.Text(), "# managed by hand\nInclude ~/.ssh/conf.d/*\n\n"; got != want {
		t.Fatalf("global text = %q, want %q", got, want)
	}
	if v, _ := g.Param("Include"); v != "~/.ssh/conf.d/*" {
		t.Fatalf("global Include = %q", v)
	}

	a := blocks[1]
	if !a.IsHost() || a.Alias() != "alpha" || a.ID() != "alpha" {
		t.Fatalf("unexpected alpha block: %v", a)
	}
	if len(a.Lines()) != 5 {
		t.Fatalf("alpha should own 5 lines (including trailing blank), got %d", len(a.Lines()))
	}
	if _, ok := a.Param("Host"); ok {
		t.Fatal("header line must not become a param")
	}
	if !reflect.DeepEqual(a.ParamNames(), []string{"HostName", "User"}) {
		t.Fatalf("alpha param names = %v", a.ParamNames())
	}

	b := blocks[2]
	if b.Alias() != "beta gamma" || b.ID() != "beta" {
		t.Fatalf("beta alias=%q id=%q", b.Alias(), b.ID())
	}
	if !reflect.DeepEqual(b.Patterns(), []string{"beta", "gamma"}) {
		t.Fatalf("patterns = %v", b.Patterns())
	}
	if v, _ := b.Param("Port"); v != "2223" {
		t.Fatalf("duplicate Port should keep the last value, got %q", v)
	}
}

func TestParse_HostHeaderDetection(t *testing.T) {
	cases := []struct {
		line  string
		alias string
		ok    bool
	}{
		{"Host foo\n", "foo", true},
		{"host foo\n", "foo", true},
		{"  HOST   foo bar  \n", "foo bar", true},
		{"\tHost\tfoo\n", "foo", true},
		{"Host\n", "", true},
		{"HostName foo\n", "", false},
		{"# Host foo\n", "", false},
		{"Match host foo\n", "", false},
		{"\n", "", false},
	}
	for _, c := range cases {
		alias, ok := hostHeader(c.line)
		if ok != c.ok || alias != c.alias {
			t.Errorf("hostHeader(%q) = (%q, %v), want (%q, %v)", c.line, alias, ok, c.alias, c.ok)
		}
	}
}

func TestParse_NoGlobalWhenFileStartsWithHost(t *testing.T) {
	blocks := Parse("Host a\n  User x\nHost b\n")
	if len(blocks) != 2 || !blocks[0].IsHost() || !blocks[1].IsHost() {
		t.Fatalf("expected two host blocks, got %v", blocks)
	}
}

func TestParse_DuplicateAliasesKept(t *testing.T) {
	blocks := Parse("Host dup\n  Port 1\nHost dup\n  Port 2\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if i := FindHost(blocks, "dup"); i != 0 {
		t.Fatalf("FindHost should return the first match, got %d", i)
	}
}

func TestSplitLines(t *testing.T) {
	cases := map[string][]string{
		"":           nil,
		"a":          {"a"},
		"a\n":        {"a\n"},
		"a\nb":       {"a\n", "b"},
		"a\r\nb\r\n": {"a\r\n", "b\r\n"},
		"\n\n":       {"\n", "\n"},
	}
	for in, want := range cases {
		if got := SplitLines(in); !reflect.DeepEqual(got, want) {
			t.Errorf("SplitLines(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitDirective(t *testing.T) {
	cases := []struct {
		line       string
		key, value string
		ok         bool
	}{
		{"    HostName 10.0.0.1\n", "HostName", "10.0.0.1", true},
		{"IdentityFile  ~/.ssh/id one \n", "IdentityFile", "~/.ssh/id one", true},
		{"\tUser\tops\n", "User", "ops", true},
		{"# comment here\n", "", "", false},
		{"   \n", "", "", false},
		{"Lonely\n", "", "", false},
	}
	for _, c := range cases {
		k, v, ok := splitDirective(c.line)
		if k != c.key || v != c.value || ok != c.ok {
			t.Errorf("splitDirective(%q) = (%q, %q, %v)", c.line, k, v, ok)
		}
	}
}

func TestBlock_SetLinesRebuildsParams(t *testing.T) {
	b := NewHostBlock("x", []string{"Host x\n", "  User a\n"})
	b.SetLines([]string{"Host x\n", "  Port 22\n"})
	if _, ok := b.Param("User"); ok {
		t.Fatal("stale param after SetLines")
	}
	if v, _ := b.Param("Port"); v != "22" {
		t.Fatalf("Port = %q", v)
	}
}

func TestBlock_AccessorsReturnCopies(t *testing.T) {
	b := NewGlobalBlock([]string{"User me\n"})
	lines := b.Lines()
	lines[0] = "mutated\n"
	params := b.Params()
	params["User"] = "other"
	if b.Text() != "User me\n" {
		t.Fatal("Lines must return a copy")
	}
	if v, _ := b.Param("User"); v != "me" {
		t.Fatal("Params must return a copy")
	}
}

func TestKind_String(t *testing.T) {
	if KindGlobal.String() != "global" || KindHost.String() != "host" {
		t.Fatal("unexpected Kind names")
	}
	if Kind(9).String() != "Kind(9)" {
		t.Fatalf("unexpected unknown kind: %s", Kind(9))
	}
}
