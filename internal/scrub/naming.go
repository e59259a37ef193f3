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

package scrub

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// CleanName returns the output path for src, inserting _clean (or
// _clean_<n> for n > 0) before the extension. A non-empty dir overrides
// the source directory. The counter is owned by the caller.
func CleanName(
	src string,
	dir string,
	n int,
) string {
	return labeledName(src, dir, "clean", n)
}

// ModifiedName is CleanName for edit outputs, labeled _modified.
func ModifiedName(
	src string,
	dir string,
	n int,
) string {
	return labeledName(src, dir, "modified", n)
}

// labeledName inserts _<label> (or _<label>_<n> for n > 0) before the
// extension of src's base name, under dir or the source directory.
func labeledName(
	src string,
	dir string,
	label string,
	n int,
) string {
	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(filepath.Base(src), ext)

	name := stem + "_" + label + ext
	if n > 0 {
		name = fmt.Sprintf("%s_%s_%d%s", stem, label, n, ext)
	}

	if dir == "" {
		dir = filepath.Dir(src)
	}

	return filepath.Join(dir, name)
}

// FreeCleanName probes CleanName counters until an unused path is found.
func FreeCleanName(
	appFs afero.Fs,
	src string,
	dir string,
) string {
	return freeName(appFs, src, dir, CleanName)
}

// FreeModifiedName probes ModifiedName counters until an unused path is
// found.
func FreeModifiedName(
	appFs afero.Fs,
	src string,
	dir string,
) string {
	return freeName(appFs, src, dir, ModifiedName)
}

func freeName(
	appFs afero.Fs,
	src string,
	dir string,
	name func(src, dir string, n int) string,
) string {
	for n := 0; ; n++ {
		candidate := name(src, dir, n)

		exists, err := afero.Exists(appFs, candidate)
		if err != nil || !exists {
			return candidate
		}
	}
}
