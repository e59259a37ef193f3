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

package cli

import (
	"context"
	"time"
)

// drainTimeout bounds how long RunSchedule waits for in-flight batch
// runs after the context is cancelled.
const drainTimeout = 10 * time.Second

// Scheduler represents a recurring batch runner. A *cron.Cron satisfies
// it directly.
type Scheduler interface {
	// Start begins firing scheduled runs without blocking.
	Start()
	// Stop ends scheduling; the returned context is done once in-flight
	// runs have finished.
	Stop() context.Context
}

// RunSchedule starts the scheduler and blocks until ctx is cancelled,
// then waits for in-flight runs to drain (bounded by drainTimeout)
// before running the cleanup functions.
func RunSchedule(
	ctx context.Context,
	scheduler Scheduler,
	cleanupFns ...func(),
) {
	scheduler.Start()

	<-ctx.Done()

	drainCtx, cancel := context.WithTimeout(
		context.Background(),
		drainTimeout,
	)
	defer cancel()

	select {
	case <-scheduler.Stop().Done():
	case <-drainCtx.Done():
	}

	for _, fn := range cleanupFns {
		fn()
	}
}
