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

package worker

import (
	"log/slog"

	"github.com/metascrub-io/metascrub/internal/scrub"
	"github.com/metascrub-io/metascrub/internal/sys"
)

// maxDefaultWorkers caps the pool size when no override is configured.
const maxDefaultWorkers = 4

// New creates a new scrub worker pool. A workers value of 0 sizes the
// pool from the host CPU count, capped at maxDefaultWorkers.
func New(
	logger *slog.Logger,
	scrubber *scrub.Scrubber,
	workers int,
) *Pool {
	return &Pool{
		logger:   logger,
		scrubber: scrubber,
		workers:  workers,
	}
}

// poolSize resolves the worker count for a run over files tasks.
func poolSize(
	override int,
	files int,
) int {
	if files < 1 {
		return 0
	}

	size := override
	if size <= 0 {
		size = sys.CPUCount()
		if size > maxDefaultWorkers {
			size = maxDefaultWorkers
		}
	}

	if size > files {
		size = files
	}

	if size < 1 {
		size = 1
	}

	return size
}
