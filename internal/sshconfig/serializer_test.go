// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"reflect"
	"testing"
)

func TestSerialize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		sample,
		"Host only\n",
		"User root\nHost a\n  Port 22",
		"  # odd   spacing\r\nhost  Lower\r\n\tUser\tx\r\n",
		"Host a\nHost a\nHost\n\n\n",
		"Match host foo\n  User bar\n",
	}
	for _, in := range inputs {
		got := Serialize(Parse(in))
		want := in
		if in != "" && in[len(in)-1] != '\n' {
			want = in + "\n"
		}
		if got != want {
			t.Errorf("round trip of %q gave %q", in, got)
		}
	}
}

func TestSerialize_TerminatesUnfinishedBlock(t *testing.T) {
	blocks := []*Block{
		NewGlobalBlock([]string{"User me"}),
		NewHostBlock("a", []string{"Host a\n"}),
		nil,
	}
	if got, want := Serialize(blocks), "User me\nHost a\n"; got != want {
		t.Fatalf("Serialize = %q, want %q", got, want)
	}
}

func TestRenderHostLines(t *testing.T) {
	entry := HostEntry{
		Host: "srv",
		Params: []Param{
			{Name: "HostName", Value: "10.0.0.5"},
			{Name: "Host", Value: "sneaky"},
			{Name: "User", Value: ""},
			{Name: "", Value: "nameless"},
			{Name: "ServerAliveInterval", Value: "60"},
		},
	}
	want := []string{
		"Host srv\n",
		"    HostName 10.0.0.5\n",
		"    ServerAliveInterval 60\n",
	}
	if got := RenderHostLines(entry); !reflect.DeepEqual(got, want) {
		t.Fatalf("RenderHostLines = %q, want %q", got, want)
	}
}
