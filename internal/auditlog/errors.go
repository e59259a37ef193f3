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
	"strings"
)

// maxLogNameLen bounds the log file's base name.
const maxLogNameLen = 250

// ValidationError reports an unusable audit log file name. It is the only
// construction-time failure that propagates to the caller.
type ValidationError struct {
	// Name is the offending file name.
	Name string
	// Reason describes why the name was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid log file name %q: %s", e.Name, e.Reason)
}

// validateLogName rejects empty names, names containing null bytes, and
// names longer than maxLogNameLen bytes.
func validateLogName(
	name string,
) error {
	switch {
	case name == "" || name == "." || name == "/":
		return &ValidationError{Name: name, Reason: "empty name"}
	case strings.ContainsRune(name, 0):
		return &ValidationError{Name: name, Reason: "contains null byte"}
	case len(name) > maxLogNameLen:
		return &ValidationError{
			Name:   name,
			Reason: fmt.Sprintf("longer than %d bytes", maxLogNameLen),
		}
	default:
		return nil
	}
}
