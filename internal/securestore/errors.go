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

import "errors"

var (
	// ErrAuthFailed indicates the authentication tag check failed: either
	// the password is wrong or the ciphertext was tampered with. The two
	// cases are indistinguishable by design.
	ErrAuthFailed = errors.New("wrong password or corrupted file")

	// ErrCapabilityUnavailable indicates the AEAD capability cannot be
	// constructed on this system. Callers fall back to plaintext logging.
	ErrCapabilityUnavailable = errors.New("encryption capability unavailable")

	// ErrFormat indicates the blob is not a validly framed encrypted log:
	// wrong magic, unsupported version, or truncation.
	ErrFormat = errors.New("malformed encrypted log")
)

// IsAuthFailure reports whether err is an authentication failure, as
// opposed to a capability, format, or I/O error.
func IsAuthFailure(
	err error,
) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsCapabilityUnavailable reports whether err indicates the encryption
// capability is missing.
func IsCapabilityUnavailable(
	err error,
) bool {
	return errors.Is(err, ErrCapabilityUnavailable)
}
