// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/afero"
	cryptossh "github.com/toeirei/sshdesk/internal/crypto/ssh"
	"github.com/toeirei/sshdesk/internal/logging"
)

// Generator writes a new key pair to path and path+".pub".
type Generator interface {
	Name() string
	Generate(ctx context.Context, fsys afero.Fs, path string, req Request) error
}

// Runner executes an external command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// KeygenGenerator delegates to the ssh-keygen tool. It only works on the
// operating system filesystem.
type KeygenGenerator struct {
	Binary string
	Runner Runner
}

func (g KeygenGenerator) Name() string { return "ssh-keygen" }

// Args builds the ssh-keygen argument list for req.
func (g KeygenGenerator) Args(path string, req Request) []string {
	args := []string{"-q", "-t", cryptossh.NormalizeKeyType(req.Type)}
	if req.Bits > 0 {
		args = append(args, "-b", strconv.Itoa(req.Bits))
	}
	return append(args, "-f", path, "-C", req.Comment, "-N", req.Passphrase)
}

func (g KeygenGenerator) Generate(ctx context.Context, fsys afero.Fs, path string, req Request) error {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return fmt.Errorf("%w: ssh-keygen needs the OS filesystem", ErrGenerate)
	}
	switch cryptossh.NormalizeKeyType(req.Type) {
	case "ed25519", "rsa", "ecdsa":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, req.Type)
	}

	binary := g.Binary
	if binary == "" {
		binary = "ssh-keygen"
	}
	run := g.Runner
	if run == nil {
		run = execRunner
	}

	args := g.Args(path, req)
	logging.L.Debug("running key generator", "cmd", shellquote.Join(append([]string{binary}, redact(args)...)...))

	out, err := run(ctx, binary, args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%w: %s: %w", ErrGenerate, binary, err)
		}
		return fmt.Errorf("%w: %s: %s: %w", ErrGenerate, binary, msg, err)
	}
	return nil
}

// redact hides the value following -N.
func redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "-N" && out[i+1] != "" {
			out[i+1] = "********"
		}
	}
	return out
}

// NativeGenerator creates keys in-process with golang.org/x/crypto/ssh.
type NativeGenerator struct{}

func (NativeGenerator) Name() string { return "native" }

func (NativeGenerator) Generate(ctx context.Context, fsys afero.Fs, path string, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pub, priv, err := cryptossh.GenerateKeyPair(req.Type, req.Bits, req.Comment, req.Passphrase)
	if err != nil {
		if errors.Is(err, cryptossh.ErrUnsupportedKeyType) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	if err := afero.WriteFile(fsys, path, priv, privatePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrGenerate, path, err)
	}
	if err := afero.WriteFile(fsys, path+pubSuffix, []byte(pub+"\n"), publicPerm); err != nil {
		_ = fsys.Remove(path)
		return fmt.Errorf("%w: write %s%s: %w", ErrGenerate, path, pubSuffix, err)
	}
	return nil
}

// NewGenerator selects a generator by kind: "keygen", "native" or "auto".
// Auto prefers ssh-keygen when binary is found on PATH.
func NewGenerator(kind, binary string) (Generator, error) {
	if binary == "" {
		binary = "ssh-keygen"
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "keygen", "ssh-keygen":
		return KeygenGenerator{Binary: binary}, nil
	case "native":
		return NativeGenerator{}, nil
	case "", "auto":
		if _, err := exec.LookPath(binary); err == nil {
			return KeygenGenerator{Binary: binary}, nil
		}
		return NativeGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown key generator %q", kind)
	}
}
