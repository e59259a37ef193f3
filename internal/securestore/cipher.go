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

package securestore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// AvailableFunc returns the current capability probe for test inspection.
func AvailableFunc() func() bool {
	return availableFn
}

// SetAvailableFunc replaces the capability probe. Used by tests.
func SetAvailableFunc(
	fn func() bool,
) {
	availableFn = fn
}

// availableFn reports whether the AEAD capability can be constructed.
// Override in tests to exercise the plaintext fallback path.
var availableFn = func() bool {
	return true
}

// Available reports whether authenticated encryption is usable on this
// system. When false, callers must fall back to plaintext logging.
func Available() bool {
	return availableFn()
}

// aeadFor constructs the AEAD for the given cipher id and key.
func aeadFor(
	c Cipher,
	key []byte,
) (cipher.AEAD, error) {
	if !Available() {
		return nil, ErrCapabilityUnavailable
	}

	switch c {
	case CipherAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("creating cipher: %w", err)
		}

		return cipher.NewGCM(block)
	case CipherChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: unknown cipher id %d", ErrFormat, byte(c))
	}
}

// Encrypt seals plaintext with the given key and cipher. The returned blob
// is nonce || ciphertext; a fresh random nonce is generated per call.
func Encrypt(
	key []byte,
	plaintext []byte,
	c Cipher,
) ([]byte, error) {
	aead, err := aeadFor(c, key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt. A failed authentication tag
// check — wrong key or tampered data — returns ErrAuthFailed, never
// corrupted plaintext.
func Decrypt(
	key []byte,
	blob []byte,
	c Cipher,
) ([]byte, error) {
	aead, err := aeadFor(c, key)
	if err != nil {
		return nil, err
	}

	if len(blob) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: blob shorter than nonce", ErrFormat)
	}

	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuthFailed, err)
	}

	return plaintext, nil
}
