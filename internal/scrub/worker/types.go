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

// Package worker runs scrub operations across a bounded goroutine pool.
package worker

import (
	"log/slog"

	"github.com/metascrub-io/metascrub/internal/scrub"
)

// Task is one file queued for scrubbing.
type Task struct {
	// ID identifies the task in logs.
	ID string
	// Path is the source file.
	Path string
}

// Summary aggregates the outcome of one pool run.
type Summary struct {
	// Processed counts successfully scrubbed files.
	Processed int
	// Failed counts files whose scrub returned an error.
	Failed int
	// BytesSaved totals the size reduction across processed files.
	BytesSaved int64
}

// Pool fans tasks out to a fixed number of scrub workers.
type Pool struct {
	logger   *slog.Logger
	scrubber *scrub.Scrubber
	workers  int
}

// outcome is one task's result on the collection channel.
type outcome struct {
	task   Task
	report *scrub.Report
	err    error
}
