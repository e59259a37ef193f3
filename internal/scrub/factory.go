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
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ProviderFor returns the provider handling path's extension.
func ProviderFor(
	appFs afero.Fs,
	logger *slog.Logger,
	path string,
) (Provider, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return NewJPEG(appFs, logger), nil
	case ".png":
		return NewPNG(appFs, logger), nil
	case ".pdf":
		return NewPDF(appFs, logger), nil
	case ".docx", ".xlsx":
		return NewOOXML(appFs, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}
}

// Supported reports whether path's extension has a provider.
func Supported(
	path string,
) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".pdf", ".docx", ".xlsx":
		return true
	}

	return false
}

// Inspect enumerates the metadata of path through its format provider.
func Inspect(
	appFs afero.Fs,
	logger *slog.Logger,
	path string,
) (*Inspection, error) {
	provider, err := ProviderFor(appFs, logger, path)
	if err != nil {
		return nil, err
	}

	return provider.Inspect(InspectParams{Path: path})
}
