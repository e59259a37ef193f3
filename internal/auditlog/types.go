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

// Package auditlog records every metadata scrub operation to a tabular
// log file, optionally encrypted as a whole through securestore. The
// append path is strictly best-effort: it degrades to warnings and zeroed
// statistics, never failing the operation that triggered it.
package auditlog

import "time"

// Header is the fixed, ordered column schema. It never changes after a
// log's first creation; every row carries exactly these columns.
var Header = []string{
	"Timestamp",
	"Original File",
	"New File",
	"Operation Type",
	"Metadata Type Removed",
	"Specific Tags Removed",
	"Original File Size (bytes)",
	"New File Size (bytes)",
	"Original Metadata Count",
	"Remaining Metadata Count",
	"Size Reduction (bytes)",
	"Size Reduction Percentage",
	"Original Creation Date",
	"Original Modified Date",
	"Processing Date",
	"Original File Path",
	"New File Path",
	"Original EXIF Tags",
	"Remaining EXIF Tags",
	"Operation Success Status",
}

// timeLayout formats every timestamp column.
const timeLayout = "2006-01-02 15:04:05"

const (
	sentinelNone    = "None"
	sentinelUnknown = "Unknown"
	sentinelError   = "Error"

	statusSuccess = "Success"
)

// Operation describes one completed scrub, passed to Recorder.Append. All
// derived columns (sizes, timestamps, reductions) are computed by the
// recorder from the paths; failed operations are skipped by callers and
// never appear here.
type Operation struct {
	// OriginalPath is the path of the file that was scrubbed.
	OriginalPath string
	// NewPath is the path of the scrubbed copy.
	NewPath string
	// OperationType is free text, e.g. "Removal" or "Modification".
	OperationType string
	// MetadataType is the class of metadata affected, e.g. "EXIF".
	MetadataType string
	// RemovedTags are the tag names removed by the operation.
	RemovedTags []string
	// OriginalTags are the tag names present before the operation.
	OriginalTags []string
	// RemainingTags are the tag names still present afterwards.
	RemainingTags []string
	// TagsFailed marks tag enumeration as failed; the tag columns then
	// carry the "Error" sentinel instead of a joined list.
	TagsFailed bool
}

// Stats summarizes the size effect of one logged operation. Returned from
// every Append call, zero-valued when the underlying files could not be
// read.
type Stats struct {
	// OriginalSize is the source file size in bytes.
	OriginalSize int64 `json:"original_size"`
	// NewSize is the scrubbed file size in bytes.
	NewSize int64 `json:"new_size"`
	// SizeReduction is max(0, OriginalSize-NewSize).
	SizeReduction int64 `json:"size_reduction"`
	// SizeReductionPercent is 0 when OriginalSize is 0.
	SizeReductionPercent float64 `json:"size_reduction_percentage"`
}

// timeNow is the clock used for row timestamps. Override in tests.
var timeNow = time.Now

// TimeNowFunc returns the current clock for test inspection.
func TimeNowFunc() func() time.Time {
	return timeNow
}

// SetTimeNowFunc replaces the clock. Used by tests.
func SetTimeNowFunc(
	fn func() time.Time,
) {
	timeNow = fn
}
