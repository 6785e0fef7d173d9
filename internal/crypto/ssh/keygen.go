// Copyright (c) 2026 Keymaster Team
// sshdesk - SSH key and client config manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package ssh provides convenience wrappers around the golang.org/x/crypto/ssh package
// for generating key pairs and inspecting public keys.
package ssh // import "github.com/toeirei/sshdesk/internal/crypto/ssh"

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// FingerprintSHA256 returns the SHA256 fingerprint of the public key.
var FingerprintSHA256 = ssh.FingerprintSHA256

// ErrUnsupportedKeyType is returned for key types other than ed25519, rsa
// and ecdsa.
var ErrUnsupportedKeyType = errors.New("unsupported key type")

// DefaultRSABits is used when an rsa key is requested without a size.
const DefaultRSABits = 3072

// NormalizeKeyType lower-cases t and maps the empty string to ed25519.
func NormalizeKeyType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return "ed25519"
	}
	return t
}

// GenerateKeyPair creates a new key pair of keyType and returns the public
// key in authorized_keys format (with comment) and the private key as an
// OpenSSH PEM block. A non-empty passphrase encrypts the private key.
func GenerateKeyPair(keyType string, bits int, comment, passphrase string) (publicKey string, privateKey []byte, err error) {
	signer, err := newPrivateKey(NormalizeKeyType(keyType), bits)
	if err != nil {
		return "", nil, err
	}

	sshPub, err := ssh.NewPublicKey(signer.Public())
	if err != nil {
		return "", nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}
	publicKey = strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
	if comment != "" {
		publicKey += " " + comment
	}

	var block *pem.Block
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(signer, comment)
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(signer, comment, []byte(passphrase))
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return publicKey, pem.EncodeToMemory(block), nil
}

func newPrivateKey(keyType string, bits int) (crypto.Signer, error) {
	switch keyType {
	case "ed25519":
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ed25519 key pair: %w", err)
		}
		return priv, nil
	case "rsa":
		if bits == 0 {
			bits = DefaultRSABits
		}
		if bits < 2048 {
			return nil, fmt.Errorf("%w: rsa keys need at least 2048 bits, got %d", ErrUnsupportedKeyType, bits)
		}
		priv, err := rsa.GenerateKey(rand.Reader, bits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate rsa key pair: %w", err)
		}
		return priv, nil
	case "ecdsa":
		var curve elliptic.Curve
		switch bits {
		case 0, 256:
			curve = elliptic.P256()
		case 384:
			curve = elliptic.P384()
		case 521:
			curve = elliptic.P521()
		default:
			return nil, fmt.Errorf("%w: ecdsa size %d", ErrUnsupportedKeyType, bits)
		}
		priv, err := ecdsa.GenerateKey(curve, rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ecdsa key pair: %w", err)
		}
		return priv, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, keyType)
	}
}

// PublicKeyInfo describes an authorized_keys style public key line.
type PublicKeyInfo struct {
	Type        string
	Fingerprint string
	Comment     string
}

// InspectPublicKey parses line and returns its type, fingerprint and comment.
func InspectPublicKey(line string) (PublicKeyInfo, error) {
	pk, comment, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
	if err != nil {
		return PublicKeyInfo{}, fmt.Errorf("parse public key: %w", err)
	}
	return PublicKeyInfo{
		Type:        pk.Type(),
		Fingerprint: FingerprintSHA256(pk),
		Comment:     comment,
	}, nil
}
