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

// Package scrub removes and edits embedded metadata in supported file
// formats.
package scrub

import "sort"

// InspectParams describes a metadata inspection request.
type InspectParams struct {
	// Path is the file to inspect.
	Path string
}

// Inspection lists the metadata found by an inspect.
type Inspection struct {
	// Tags are the metadata tag names present in the file.
	Tags []string
}

// Params describes a scrub request.
type Params struct {
	// Source is the file to scrub. It is never modified.
	Source string
	// Dest receives the cleaned copy.
	Dest string
}

// Result reports what a scrub removed.
type Result struct {
	// RemovedTags are the names of the metadata tags stripped from the
	// source.
	RemovedTags []string
}

// EditParams describes a metadata edit request.
type EditParams struct {
	// Source is the file to edit. It is never modified.
	Source string
	// Dest receives the edited copy.
	Dest string
	// Set maps metadata tag names to their new values.
	Set map[string]string
}

// EditResult reports what an edit changed.
type EditResult struct {
	// ModifiedTags are the names of the metadata tags set on the copy.
	ModifiedTags []string
}

// Provider inspects, scrubs and edits one file format family.
type Provider interface {
	// Inspect enumerates metadata tag names without modifying the file.
	Inspect(params InspectParams) (*Inspection, error)
	// Scrub writes a cleaned copy of the source and reports the removed
	// tags.
	Scrub(params Params) (*Result, error)
	// Edit writes a copy of the source with the given tags set and
	// reports the modified tags. Tags the format cannot carry yield
	// ErrUnknownTag.
	Edit(params EditParams) (*EditResult, error)
	// OperationType labels the operation in the audit log.
	OperationType() string
	// MetadataType labels the removed metadata family in the audit log.
	MetadataType() string
}

// sortedKeys returns the keys of set in lexical order, for stable
// modified-tag reporting.
func sortedKeys(
	set map[string]string,
) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
