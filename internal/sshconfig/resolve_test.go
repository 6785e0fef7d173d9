// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"errors"
	"reflect"
	"testing"
)

const layered = `Host web
    HostName web.example.com
    User deploy

Host *
    User nobody
    Port 2200
    ServerAliveInterval 30
`

func TestResolveText_FirstValueWins(t *testing.T) {
	got, err := ResolveText(layered, "web")
	if err != nil {
		t.Fatalf("ResolveText: %v", err)
	}
	want := []Param{
		{Name: "HostName", Value: "web.example.com"},
		{Name: "User", Value: "deploy"},
		{Name: "Port", Value: "2200"},
		{Name: "ServerAliveInterval", Value: "30"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolveText_SelectedNames(t *testing.T) {
	got, err := ResolveText(layered, "other", "User", "HostName")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []Param{{Name: "User", Value: "nobody"}}) {
		t.Fatalf("got %+v", got)
	}
}

func TestResolveText_MatchHost(t *testing.T) {
	got, err := ResolveText("Match host x\n    User y\n", "x", "User")
	if err != nil {
		t.Fatalf("ResolveText: %v", err)
	}
	if !reflect.DeepEqual(got, []Param{{Name: "User", Value: "y"}}) {
		t.Fatalf("got %+v", got)
	}
}

func TestResolveText_Unsupported(t *testing.T) {
	_, err := ResolveText("Match exec \"true\"\n    User y\n", "x")
	if !errors.Is(err, ErrResolve) {
		t.Fatalf("expected ErrResolve, got %v", err)
	}
}

func TestDirectory_Effective(t *testing.T) {
	d, _ := newMemDirectory(t, layered)
	got, err := d.Effective("web", "Port")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []Param{{Name: "Port", Value: "2200"}}) {
		t.Fatalf("got %+v", got)
	}
}
