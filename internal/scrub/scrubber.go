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

	"github.com/spf13/afero"

	"github.com/metascrub-io/metascrub/internal/auditlog"
)

// Report describes one completed scrub operation.
type Report struct {
	// OriginalPath is the untouched source file.
	OriginalPath string
	// NewPath is the cleaned copy.
	NewPath string
	// OriginalTags were present in the source before the scrub.
	OriginalTags []string
	// RemovedTags were stripped from the source.
	RemovedTags []string
	// ModifiedTags were set on the copy by an edit.
	ModifiedTags []string
	// RemainingTags were still present in the cleaned copy.
	RemainingTags []string
	// TagsFailed reports that the cleaned copy could not be re-inspected.
	TagsFailed bool
	// Stats are the before and after size statistics.
	Stats auditlog.Stats
}

// Scrubber runs scrub operations end to end: inspect, clean, verify,
// record. The source file is never modified; the cleaned copy lands next
// to it or in outputDir.
type Scrubber struct {
	appFs     afero.Fs
	logger    *slog.Logger
	recorder  *auditlog.Recorder
	outputDir string
}

// New creates a Scrubber. A nil recorder disables audit logging; size
// statistics are still computed.
func New(
	appFs afero.Fs,
	logger *slog.Logger,
	recorder *auditlog.Recorder,
	outputDir string,
) *Scrubber {
	return &Scrubber{
		appFs:     appFs,
		logger:    logger,
		recorder:  recorder,
		outputDir: outputDir,
	}
}

// Clean scrubs one file. A scrub failure aborts the operation and
// nothing is recorded; partial inspection failures degrade to sentinel
// fields in the record instead.
func (s *Scrubber) Clean(
	path string,
) (*Report, error) {
	provider, err := ProviderFor(s.appFs, s.logger, path)
	if err != nil {
		return nil, err
	}

	var originalTags []string

	if inspection, err := provider.Inspect(InspectParams{Path: path}); err != nil {
		s.logger.Warn(
			"inspecting source failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	} else {
		originalTags = inspection.Tags
	}

	dest := FreeCleanName(s.appFs, path, s.outputDir)

	result, err := provider.Scrub(Params{Source: path, Dest: dest})
	if err != nil {
		return nil, fmt.Errorf("scrubbing %s: %w", path, err)
	}

	var (
		remainingTags []string
		tagsFailed    bool
	)

	if after, err := provider.Inspect(InspectParams{Path: dest}); err != nil {
		tagsFailed = true

		s.logger.Warn(
			"inspecting cleaned copy failed",
			slog.String("path", dest),
			slog.String("error", err.Error()),
		)
	} else {
		remainingTags = after.Tags
	}

	report := &Report{
		OriginalPath:  path,
		NewPath:       dest,
		OriginalTags:  originalTags,
		RemovedTags:   result.RemovedTags,
		RemainingTags: remainingTags,
		TagsFailed:    tagsFailed,
	}

	op := auditlog.Operation{
		OriginalPath:  path,
		NewPath:       dest,
		OperationType: provider.OperationType(),
		MetadataType:  provider.MetadataType(),
		RemovedTags:   result.RemovedTags,
		OriginalTags:  originalTags,
		RemainingTags: remainingTags,
		TagsFailed:    tagsFailed,
	}

	if s.recorder != nil {
		report.Stats = s.recorder.Append(op)
	} else {
		report.Stats = auditlog.ComputeStats(s.appFs, path, dest)
	}

	return report, nil
}

// Edit sets metadata tags on a copy of one file. Like Clean, an edit
// failure aborts the operation and nothing is recorded; the audit row
// carries the modified tag names in the tags column.
func (s *Scrubber) Edit(
	path string,
	set map[string]string,
) (*Report, error) {
	provider, err := ProviderFor(s.appFs, s.logger, path)
	if err != nil {
		return nil, err
	}

	var originalTags []string

	if inspection, err := provider.Inspect(InspectParams{Path: path}); err != nil {
		s.logger.Warn(
			"inspecting source failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	} else {
		originalTags = inspection.Tags
	}

	dest := FreeModifiedName(s.appFs, path, s.outputDir)

	result, err := provider.Edit(EditParams{Source: path, Dest: dest, Set: set})
	if err != nil {
		return nil, fmt.Errorf("editing %s: %w", path, err)
	}

	var (
		remainingTags []string
		tagsFailed    bool
	)

	if after, err := provider.Inspect(InspectParams{Path: dest}); err != nil {
		tagsFailed = true

		s.logger.Warn(
			"inspecting edited copy failed",
			slog.String("path", dest),
			slog.String("error", err.Error()),
		)
	} else {
		remainingTags = after.Tags
	}

	report := &Report{
		OriginalPath:  path,
		NewPath:       dest,
		OriginalTags:  originalTags,
		ModifiedTags:  result.ModifiedTags,
		RemainingTags: remainingTags,
		TagsFailed:    tagsFailed,
	}

	op := auditlog.Operation{
		OriginalPath:  path,
		NewPath:       dest,
		OperationType: "Metadata Modification - " + provider.MetadataType(),
		MetadataType:  provider.MetadataType(),
		RemovedTags:   result.ModifiedTags,
		OriginalTags:  originalTags,
		RemainingTags: remainingTags,
		TagsFailed:    tagsFailed,
	}

	if s.recorder != nil {
		report.Stats = s.recorder.Append(op)
	} else {
		report.Stats = auditlog.ComputeStats(s.appFs, path, dest)
	}

	return report, nil
}
