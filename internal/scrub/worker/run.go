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
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Run scrubs paths across the pool and returns the aggregate summary.
// A canceled context stops the run early; the summary then covers only
// the tasks that completed, and the context's error is returned.
func (p *Pool) Run(
	ctx context.Context,
	paths []string,
) (*Summary, error) {
	if len(paths) == 0 {
		return &Summary{}, nil
	}

	workers := poolSize(p.workers, len(paths))

	p.logger.Info(
		"starting scrub pool",
		slog.Int("workers", workers),
		slog.Int("files", len(paths)),
	)

	tasks := make(chan Task, len(paths))
	outcomes := make(chan outcome, len(paths))

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()
			p.work(ctx, tasks, outcomes)
		}()
	}

	for _, path := range paths {
		tasks <- Task{
			ID:   uuid.New().String(),
			Path: path,
		}
	}
	close(tasks)

	wg.Wait()
	close(outcomes)

	summary := &Summary{}

	for out := range outcomes {
		if out.err != nil {
			summary.Failed++

			continue
		}

		summary.Processed++
		summary.BytesSaved += out.report.Stats.SizeReduction
	}

	p.logger.Info(
		"scrub pool finished",
		slog.Int("processed", summary.Processed),
		slog.Int("failed", summary.Failed),
		slog.Int64("bytes_saved", summary.BytesSaved),
	)

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	return summary, nil
}

// work drains the task channel until it closes or the context ends.
func (p *Pool) work(
	ctx context.Context,
	tasks <-chan Task,
	outcomes chan<- outcome,
) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
		}

		report, err := p.scrubber.Clean(task.Path)
		if err != nil {
			p.logger.Warn(
				"scrub failed",
				slog.String("task_id", task.ID),
				slog.String("path", task.Path),
				slog.String("error", err.Error()),
			)

			outcomes <- outcome{task: task, err: err}

			continue
		}

		p.logger.Info(
			"scrubbed file",
			slog.String("task_id", task.ID),
			slog.String("path", task.Path),
			slog.String("dest", report.NewPath),
			slog.Int64("bytes_saved", report.Stats.SizeReduction),
		)

		outcomes <- outcome{task: task, report: report}
	}
}
