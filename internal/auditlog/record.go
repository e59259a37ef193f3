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
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// buildRow computes every derived column for one operation. Each field is
// computed defensively: a stat error or missing file degrades that one
// field to its sentinel, never the whole row.
func buildRow(
	appFs afero.Fs,
	op Operation,
	now time.Time,
) ([]string, Stats) {
	stats := ComputeStats(appFs, op.OriginalPath, op.NewPath)
	created, modified := fileTimes(appFs, op.OriginalPath)
	timestamp := now.Format(timeLayout)

	row := []string{
		timestamp,
		filepath.Base(op.OriginalPath),
		filepath.Base(op.NewPath),
		op.OperationType,
		op.MetadataType,
		joinTags(op.RemovedTags, op.TagsFailed),
		strconv.FormatInt(stats.OriginalSize, 10),
		strconv.FormatInt(stats.NewSize, 10),
		strconv.Itoa(len(op.OriginalTags)),
		strconv.Itoa(len(op.RemainingTags)),
		strconv.FormatInt(stats.SizeReduction, 10),
		fmt.Sprintf("%.2f%%", stats.SizeReductionPercent),
		created,
		modified,
		timestamp,
		absPath(op.OriginalPath),
		absPath(op.NewPath),
		joinTags(op.OriginalTags, op.TagsFailed),
		joinTags(op.RemainingTags, op.TagsFailed),
		statusSuccess,
	}

	return row, stats
}

// ComputeStats derives the before and after size statistics for one
// operation. A size that cannot be determined counts as zero, a grown
// file floors the reduction at zero, and an empty original yields a zero
// percentage.
func ComputeStats(
	appFs afero.Fs,
	originalPath string,
	newPath string,
) Stats {
	originalSize := fileSize(appFs, originalPath)
	newSize := fileSize(appFs, newPath)

	reduction := originalSize - newSize
	if reduction < 0 {
		reduction = 0
	}

	percent := 0.0
	if originalSize > 0 {
		percent = float64(reduction) / float64(originalSize) * 100
	}

	return Stats{
		OriginalSize:         originalSize,
		NewSize:              newSize,
		SizeReduction:        reduction,
		SizeReductionPercent: percent,
	}
}

// fileSize returns the size of path in bytes, or 0 when it cannot be
// determined.
func fileSize(
	appFs afero.Fs,
	path string,
) int64 {
	info, err := appFs.Stat(path)
	if err != nil {
		return 0
	}

	return info.Size()
}

// fileTimes returns the formatted creation and modification timestamps of
// path, or "Unknown" for whichever cannot be determined.
func fileTimes(
	appFs afero.Fs,
	path string,
) (string, string) {
	info, err := appFs.Stat(path)
	if err != nil {
		return sentinelUnknown, sentinelUnknown
	}

	modified := info.ModTime().Format(timeLayout)

	created := sentinelUnknown
	if ctime, ok := statCtime(info); ok {
		created = ctime.Format(timeLayout)
	}

	return created, modified
}

// joinTags renders a tag list as a sorted "; "-joined string. Empty lists
// render as "None"; a failed enumeration renders as "Error".
func joinTags(
	tags []string,
	failed bool,
) string {
	if failed {
		return sentinelError
	}

	if len(tags) == 0 {
		return sentinelNone
	}

	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	return strings.Join(sorted, "; ")
}

// absPath resolves path to absolute form, falling back to the raw path.
func absPath(
	path string,
) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}
