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

package auditlog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	logNamePrefix = "metadata_changes"

	// PlainExt and EncryptedExt are the log file extensions for the two
	// storage modes.
	PlainExt     = ".csv"
	EncryptedExt = ".enc"
)

// DefaultLogName returns a dated log path under dir that collides with
// no existing log in either storage mode. The first free candidate among
// metadata_changes_YYYYMMDD, metadata_changes_YYYYMMDD_1, ... wins.
func DefaultLogName(
	appFs afero.Fs,
	dir string,
	now time.Time,
) string {
	base := fmt.Sprintf("%s_%s", logNamePrefix, now.Format("20060102"))

	candidate := base
	for n := 1; ; n++ {
		if !nameTaken(appFs, dir, candidate) {
			return filepath.Join(dir, candidate+PlainExt)
		}

		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

// EncryptedName maps a log path to its encrypted variant. Paths already
// carrying the encrypted extension are returned unchanged.
func EncryptedName(
	path string,
) string {
	if strings.HasSuffix(path, EncryptedExt) {
		return path
	}

	return strings.TrimSuffix(path, PlainExt) + EncryptedExt
}

// nameTaken reports whether candidate exists under dir in either mode.
func nameTaken(
	appFs afero.Fs,
	dir string,
	candidate string,
) bool {
	for _, ext := range []string{PlainExt, EncryptedExt} {
		exists, err := afero.Exists(appFs, filepath.Join(dir, candidate+ext))
		if err == nil && exists {
			return true
		}
	}

	return false
}
