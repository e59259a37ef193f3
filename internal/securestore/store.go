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
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// Seal derives a key from the password with a fresh salt and returns the
// complete framed file content for the payload.
func (s *Store) Seal(
	payload []byte,
	password string,
) ([]byte, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}

	key := DeriveKey(password, salt)
	defer ZeroBytes(key)

	blob, err := Encrypt(key, payload, s.cipher)
	if err != nil {
		return nil, err
	}

	h := &header{
		Version: formatVersion,
		Cipher:  s.cipher,
		Salt:    salt,
	}

	return append(h.encode(), blob...), nil
}

// Open re-derives the key from the salt embedded in the framing and
// returns the decrypted payload.
func (s *Store) Open(
	data []byte,
	password string,
) ([]byte, error) {
	h, blob, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	key := DeriveKey(password, h.Salt)
	defer ZeroBytes(key)

	return Decrypt(key, blob, h.Cipher)
}

// EncryptFile seals the entire payload and atomically replaces path with
// the result. The payload is written to a temporary file in the same
// directory first; the temporary is removed on every failure path.
func (s *Store) EncryptFile(
	path string,
	payload []byte,
	password string,
) error {
	data, err := s.Seal(payload, password)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(s.appFs, dir, ".metascrub-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.appFs.Remove(tmpName)

		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = s.appFs.Remove(tmpName)

		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := s.appFs.Rename(tmpName, path); err != nil {
		_ = s.appFs.Remove(tmpName)

		return fmt.Errorf("replacing encrypted log: %w", err)
	}

	s.logger.Debug(
		"encrypted log written",
		slog.String("path", path),
		slog.String("cipher", s.cipher.String()),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// DecryptFile reads path in its entirety and returns the decrypted
// payload. Read errors are I/O failures, distinguishable from auth and
// format failures via errors.Is.
func (s *Store) DecryptFile(
	path string,
	password string,
) ([]byte, error) {
	data, err := afero.ReadFile(s.appFs, path)
	if err != nil {
		return nil, fmt.Errorf("reading encrypted log: %w", err)
	}

	return s.Open(data, password)
}
