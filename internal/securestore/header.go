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
	"bytes"
	"fmt"
)

// File layout: magic (4) | version (1) | cipher id (1) | salt (SaltSize) |
// nonce || ciphertext. The salt travels with the file so the key can be
// re-derived from the password alone.

var fileMagic = []byte("MSLG")

const formatVersion = 1

const headerSize = len("MSLG") + 1 + 1 + SaltSize

// header is the plaintext framing ahead of the sealed payload.
type header struct {
	Version byte
	Cipher  Cipher
	Salt    []byte
}

// encode serializes the header.
func (h *header) encode() []byte {
	buf := make([]byte, 0, headerSize)
	buf = append(buf, fileMagic...)
	buf = append(buf, h.Version, byte(h.Cipher))
	buf = append(buf, h.Salt...)

	return buf
}

// parseHeader splits a framed file into its header and sealed payload.
func parseHeader(
	data []byte,
) (*header, []byte, error) {
	if len(data) < headerSize {
		return nil, nil, fmt.Errorf("%w: file shorter than header", ErrFormat)
	}

	if !bytes.Equal(data[:len(fileMagic)], fileMagic) {
		return nil, nil, fmt.Errorf("%w: bad magic", ErrFormat)
	}

	h := &header{
		Version: data[len(fileMagic)],
		Cipher:  Cipher(data[len(fileMagic)+1]),
	}

	if h.Version != formatVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, h.Version)
	}

	saltStart := len(fileMagic) + 2
	h.Salt = data[saltStart : saltStart+SaltSize]

	return h, data[headerSize:], nil
}
