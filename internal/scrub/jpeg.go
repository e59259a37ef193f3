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
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
)

const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerTEM  = 0x01
	markerAPP1 = 0xE1
	markerCOM  = 0xFE
)

var exifIdentifier = []byte("Exif\x00\x00")

const xmpNamespace = "http://ns.adobe.com/xap/1.0/"

// JPEG removes Exif, XMP and comment segments from JPEG files. All other
// segments, and the entropy-coded image data, pass through byte for
// byte.
type JPEG struct {
	appFs  afero.Fs
	logger *slog.Logger
}

// NewJPEG creates a JPEG provider.
func NewJPEG(
	appFs afero.Fs,
	logger *slog.Logger,
) *JPEG {
	return &JPEG{
		appFs:  appFs,
		logger: logger,
	}
}

// OperationType implements Provider.
func (p *JPEG) OperationType() string {
	return "EXIF Removal"
}

// MetadataType implements Provider.
func (p *JPEG) MetadataType() string {
	return "EXIF"
}

// Inspect implements Provider.
func (p *JPEG) Inspect(
	params InspectParams,
) (*Inspection, error) {
	data, err := afero.ReadFile(p.appFs, params.Path)
	if err != nil {
		return nil, fmt.Errorf("reading jpeg: %w", err)
	}

	var tags []string

	err = scanJPEG(data, nil, func(marker byte, payload []byte) bool {
		tags = append(tags, jpegSegmentTags(marker, payload)...)

		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parsing jpeg: %w", err)
	}

	return &Inspection{Tags: tags}, nil
}

// Scrub implements Provider.
func (p *JPEG) Scrub(
	params Params,
) (*Result, error) {
	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading jpeg: %w", err)
	}

	var (
		removed []string
		out     bytes.Buffer
	)

	err = scanJPEG(data, &out, func(marker byte, payload []byte) bool {
		if marker != markerAPP1 && marker != markerCOM {
			return true
		}

		removed = append(removed, jpegSegmentTags(marker, payload)...)

		return false
	})
	if err != nil {
		return nil, fmt.Errorf("parsing jpeg: %w", err)
	}

	if err := afero.WriteFile(p.appFs, params.Dest, out.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing cleaned jpeg: %w", err)
	}

	p.logger.Debug(
		"scrubbed jpeg",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("removed", len(removed)),
	)

	return &Result{RemovedTags: removed}, nil
}

// Edit implements Provider. Editable tags are the descriptive IFD0
// ASCII tags plus "Comment" for the COM segment. The Exif segment of
// the copy is rebuilt from the descriptive tags alone; camera and GPS
// data are not carried over.
func (p *JPEG) Edit(
	params EditParams,
) (*EditResult, error) {
	exifSet := map[uint16]string{}
	comment := ""
	hasComment := false

	for name, value := range params.Set {
		if name == "Comment" {
			comment = value
			hasComment = true

			continue
		}

		tag, ok := editableExifTags[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}

		exifSet[tag] = value
	}

	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading jpeg: %w", err)
	}

	var (
		existingExif []byte
		out          bytes.Buffer
	)

	err = scanJPEG(data, &out, func(marker byte, payload []byte) bool {
		if len(exifSet) > 0 && marker == markerAPP1 &&
			bytes.HasPrefix(payload, exifIdentifier) {
			existingExif = payload[len(exifIdentifier):]

			return false
		}

		if hasComment && marker == markerCOM {
			return false
		}

		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parsing jpeg: %w", err)
	}

	var segments bytes.Buffer

	if len(exifSet) > 0 {
		values := exifASCIIValues(existingExif)
		for tag, value := range exifSet {
			values[tag] = value
		}

		payload := append([]byte(nil), exifIdentifier...)
		payload = append(payload, buildExifBlob(values)...)

		writeJPEGSegment(&segments, markerAPP1, payload)
	}

	if hasComment {
		writeJPEGSegment(&segments, markerCOM, []byte(comment))
	}

	// New segments sit right after SOI, ahead of the image data.
	body := out.Bytes()

	edited := make([]byte, 0, len(body)+segments.Len())
	edited = append(edited, body[:2]...)
	edited = append(edited, segments.Bytes()...)
	edited = append(edited, body[2:]...)

	if err := afero.WriteFile(p.appFs, params.Dest, edited, 0o644); err != nil {
		return nil, fmt.Errorf("writing edited jpeg: %w", err)
	}

	modified := sortedKeys(params.Set)

	p.logger.Debug(
		"edited jpeg",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("modified", len(modified)),
	)

	return &EditResult{ModifiedTags: modified}, nil
}

// writeJPEGSegment appends one length-prefixed segment.
func writeJPEGSegment(
	out *bytes.Buffer,
	marker byte,
	payload []byte,
) {
	out.WriteByte(0xFF)
	out.WriteByte(marker)

	var length [2]byte

	binary.BigEndian.PutUint16(length[:], uint16(len(payload)+2))
	out.Write(length[:])
	out.Write(payload)
}

// scanJPEG walks the segment stream of a JPEG, calling fn for each
// length-prefixed segment before the scan data. Segments fn vetoes are
// omitted from out; with a nil out the verdicts are ignored. Everything
// from the SOS marker onward is opaque and copied whole.
func scanJPEG(
	data []byte,
	out *bytes.Buffer,
	fn func(marker byte, payload []byte) bool,
) error {
	if len(data) < 2 || data[0] != 0xFF || data[1] != markerSOI {
		return fmt.Errorf("missing SOI marker")
	}

	if out != nil {
		out.Write(data[:2])
	}

	i := 2
	for i < len(data) {
		if data[i] != 0xFF {
			return fmt.Errorf("malformed segment stream at offset %d", i)
		}

		// 0xFF fill bytes may pad the gap between segments.
		j := i
		for j < len(data) && data[j] == 0xFF {
			j++
		}

		if j >= len(data) {
			break
		}

		marker := data[j]

		switch {
		case marker == markerEOI || marker == markerSOS:
			if out != nil {
				out.Write(data[i:])
			}

			return nil
		case marker == markerTEM || (marker >= 0xD0 && marker <= 0xD7):
			if out != nil {
				out.Write(data[i : j+1])
			}

			i = j + 1
		default:
			if j+3 > len(data) {
				return fmt.Errorf("truncated segment at offset %d", i)
			}

			length := int(binary.BigEndian.Uint16(data[j+1 : j+3]))
			if length < 2 {
				return fmt.Errorf("bad segment length at offset %d", i)
			}

			end := j + 1 + length
			if end > len(data) {
				return fmt.Errorf("truncated segment at offset %d", i)
			}

			keep := fn(marker, data[j+3:end])
			if out != nil && keep {
				out.Write(data[i:end])
			}

			i = end
		}
	}

	return nil
}

// jpegSegmentTags names the metadata carried by an APP1 or COM segment.
// Exif payloads expand to their individual tag names; an unreadable Exif
// blob still reports its presence.
func jpegSegmentTags(
	marker byte,
	payload []byte,
) []string {
	switch marker {
	case markerAPP1:
		if bytes.HasPrefix(payload, exifIdentifier) {
			tags, err := exifTags(payload[len(exifIdentifier):])
			if err != nil || len(tags) == 0 {
				return []string{"EXIF"}
			}

			return tags
		}

		if bytes.HasPrefix(payload, []byte(xmpNamespace)) {
			return []string{"XMP"}
		}

		return []string{"APP1"}
	case markerCOM:
		return []string{"Comment"}
	}

	return nil
}
