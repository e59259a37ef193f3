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

package export

import (
	"context"
)

// Entry is one audit log row in export form. Values stay exactly as
// recorded; export never reinterprets them.
type Entry struct {
	Timestamp              string `json:"timestamp"`
	OriginalFile           string `json:"original_file"`
	NewFile                string `json:"new_file"`
	OperationType          string `json:"operation_type"`
	MetadataTypeRemoved    string `json:"metadata_type_removed"`
	SpecificTagsRemoved    string `json:"specific_tags_removed"`
	OriginalFileSize       string `json:"original_file_size_bytes"`
	NewFileSize            string `json:"new_file_size_bytes"`
	OriginalMetadataCount  string `json:"original_metadata_count"`
	RemainingMetadataCount string `json:"remaining_metadata_count"`
	SizeReduction          string `json:"size_reduction_bytes"`
	SizeReductionPercent   string `json:"size_reduction_percentage"`
	OriginalCreationDate   string `json:"original_creation_date"`
	OriginalModifiedDate   string `json:"original_modified_date"`
	ProcessingDate         string `json:"processing_date"`
	OriginalFilePath       string `json:"original_file_path"`
	NewFilePath            string `json:"new_file_path"`
	OriginalEXIFTags       string `json:"original_exif_tags"`
	RemainingEXIFTags      string `json:"remaining_exif_tags"`
	Status                 string `json:"operation_success_status"`
}

// Fetcher returns one page of entries plus the total count.
type Fetcher func(ctx context.Context, limit int, offset int) ([]Entry, int, error)

// Exporter is a pluggable export sink.
type Exporter interface {
	Open(ctx context.Context) error
	Write(ctx context.Context, entry Entry) error
	Close(ctx context.Context) error
}

// Result summarizes an export run.
type Result struct {
	// TotalEntries is the number of entries the source reported.
	TotalEntries int
	// ExportedEntries is the number of entries actually written.
	ExportedEntries int
}

// EntryFromRow maps a raw audit log row onto an Entry. Short rows leave
// trailing fields empty.
func EntryFromRow(
	row []string,
) Entry {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}

		return ""
	}

	return Entry{
		Timestamp:              cell(0),
		OriginalFile:           cell(1),
		NewFile:                cell(2),
		OperationType:          cell(3),
		MetadataTypeRemoved:    cell(4),
		SpecificTagsRemoved:    cell(5),
		OriginalFileSize:       cell(6),
		NewFileSize:            cell(7),
		OriginalMetadataCount:  cell(8),
		RemainingMetadataCount: cell(9),
		SizeReduction:          cell(10),
		SizeReductionPercent:   cell(11),
		OriginalCreationDate:   cell(12),
		OriginalModifiedDate:   cell(13),
		ProcessingDate:         cell(14),
		OriginalFilePath:       cell(15),
		NewFilePath:            cell(16),
		OriginalEXIFTags:       cell(17),
		RemainingEXIFTags:      cell(18),
		Status:                 cell(19),
	}
}
