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

package validation

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxLogNameLen mirrors the audit log recorder's file name budget,
// leaving headroom for the encrypted extension on common filesystems.
const maxLogNameLen = 250

func init() {
	// Cannot error: tag is non-empty and function is non-nil.
	_ = instance.RegisterValidation("logpath", validLogPath)
}

// validLogPath checks that the value names a usable audit log file: no
// null bytes and a base name no longer than maxLogNameLen bytes.
func validLogPath(fl validator.FieldLevel) bool {
	path := fl.Field().String()

	if strings.ContainsRune(path, 0) {
		return false
	}

	base := filepath.Base(path)
	switch base {
	case ".", string(filepath.Separator):
		return false
	}

	return len(base) <= maxLogNameLen
}
