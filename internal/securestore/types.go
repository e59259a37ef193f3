// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package securestore provides whole-file authenticated encryption for the
// audit log. Keys are derived from a password with PBKDF2-SHA256; payloads
// are sealed with an AEAD cipher and framed with a small header carrying
// the per-file salt.
package securestore

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
)

const (
	// KeySize is the derived key length in bytes (AES-256 / ChaCha20 key).
	KeySize = 32
	// SaltSize is the per-file random salt length in bytes.
	SaltSize = 32
	// Iterations is the PBKDF2 iteration count.
	Iterations = 100000
)

// Cipher identifies the AEAD used to seal a payload. The value is persisted
// in the file framing, so existing ids must never be renumbered.
type Cipher byte

const (
	// CipherAESGCM seals with AES-256-GCM.
	CipherAESGCM Cipher = 1
	// CipherChaCha20Poly1305 seals with ChaCha20-Poly1305.
	CipherChaCha20Poly1305 Cipher = 2
)

// String returns the configuration name of the cipher.
func (c Cipher) String() string {
	switch c {
	case CipherAESGCM:
		return "aes-gcm"
	case CipherChaCha20Poly1305:
		return "chacha20poly1305"
	default:
		return fmt.Sprintf("cipher(%d)", byte(c))
	}
}

// ParseCipher maps a configuration name to a Cipher.
func ParseCipher(
	s string,
) (Cipher, error) {
	switch s {
	case "", "aes-gcm":
		return CipherAESGCM, nil
	case "chacha20poly1305":
		return CipherChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("unsupported cipher %q", s)
	}
}

// Store performs whole-file encrypt and decrypt operations for the audit
// log through an afero filesystem.
type Store struct {
	appFs  afero.Fs
	logger *slog.Logger
	cipher Cipher
}

// New creates a new Store sealing with the given cipher.
func New(
	appFs afero.Fs,
	logger *slog.Logger,
	cipher Cipher,
) *Store {
	return &Store{
		appFs:  appFs,
		logger: logger,
		cipher: cipher,
	}
}
