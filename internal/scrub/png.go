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
	"hash/crc32"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// pngMetadataChunks are the ancillary chunk types a scrub drops.
var pngMetadataChunks = map[string]bool{
	"tEXt": true,
	"zTXt": true,
	"iTXt": true,
	"tIME": true,
	"eXIf": true,
}

// PNG removes textual, timestamp and Exif chunks from PNG files. All
// other chunks are copied verbatim, CRCs included.
type PNG struct {
	appFs  afero.Fs
	logger *slog.Logger
}

// NewPNG creates a PNG provider.
func NewPNG(
	appFs afero.Fs,
	logger *slog.Logger,
) *PNG {
	return &PNG{
		appFs:  appFs,
		logger: logger,
	}
}

// OperationType implements Provider.
func (p *PNG) OperationType() string {
	return "Metadata Removal"
}

// MetadataType implements Provider.
func (p *PNG) MetadataType() string {
	return "PNG Metadata"
}

// Inspect implements Provider.
func (p *PNG) Inspect(
	params InspectParams,
) (*Inspection, error) {
	data, err := afero.ReadFile(p.appFs, params.Path)
	if err != nil {
		return nil, fmt.Errorf("reading png: %w", err)
	}

	var tags []string

	err = scanPNG(data, nil, func(typ string, payload []byte) bool {
		tags = append(tags, pngChunkTags(typ, payload)...)

		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parsing png: %w", err)
	}

	return &Inspection{Tags: tags}, nil
}

// Scrub implements Provider.
func (p *PNG) Scrub(
	params Params,
) (*Result, error) {
	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading png: %w", err)
	}

	var (
		removed []string
		out     bytes.Buffer
	)

	err = scanPNG(data, &out, func(typ string, payload []byte) bool {
		if !pngMetadataChunks[typ] {
			return true
		}

		removed = append(removed, pngChunkTags(typ, payload)...)

		return false
	})
	if err != nil {
		return nil, fmt.Errorf("parsing png: %w", err)
	}

	if err := afero.WriteFile(p.appFs, params.Dest, out.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing cleaned png: %w", err)
	}

	p.logger.Debug(
		"scrubbed png",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("removed", len(removed)),
	)

	return &Result{RemovedTags: removed}, nil
}

// Edit implements Provider. Tags are tEXt keywords; an existing text
// chunk with the same keyword is replaced, anything else is preserved.
func (p *PNG) Edit(
	params EditParams,
) (*EditResult, error) {
	for keyword := range params.Set {
		if len(keyword) == 0 || len(keyword) > 79 ||
			strings.ContainsRune(keyword, 0) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, keyword)
		}
	}

	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading png: %w", err)
	}

	var out bytes.Buffer

	err = scanPNG(data, &out, func(typ string, payload []byte) bool {
		switch typ {
		case "tEXt", "zTXt", "iTXt":
		default:
			return true
		}

		keyword := payload
		if idx := bytes.IndexByte(payload, 0); idx >= 0 {
			keyword = payload[:idx]
		}

		_, replaced := params.Set[string(keyword)]

		return !replaced
	})
	if err != nil {
		return nil, fmt.Errorf("parsing png: %w", err)
	}

	// New tEXt chunks slot in just ahead of IEND, which scanPNG leaves
	// as the final 12 bytes.
	body := out.Bytes()
	iend := len(body) - 12

	edited := make([]byte, 0, len(body))
	edited = append(edited, body[:iend]...)

	for _, keyword := range sortedKeys(params.Set) {
		edited = appendTextChunk(edited, keyword, params.Set[keyword])
	}

	edited = append(edited, body[iend:]...)

	if err := afero.WriteFile(p.appFs, params.Dest, edited, 0o644); err != nil {
		return nil, fmt.Errorf("writing edited png: %w", err)
	}

	modified := sortedKeys(params.Set)

	p.logger.Debug(
		"edited png",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("modified", len(modified)),
	)

	return &EditResult{ModifiedTags: modified}, nil
}

// appendTextChunk appends one tEXt chunk with its CRC.
func appendTextChunk(
	out []byte,
	keyword string,
	value string,
) []byte {
	payload := append([]byte(keyword), 0)
	payload = append(payload, value...)

	var length [4]byte

	binary.BigEndian.PutUint32(length[:], uint32(len(payload)))
	out = append(out, length[:]...)

	crcStart := len(out)
	out = append(out, "tEXt"...)
	out = append(out, payload...)

	var crc [4]byte

	binary.BigEndian.PutUint32(crc[:], crc32.ChecksumIEEE(out[crcStart:]))

	return append(out, crc[:]...)
}

// scanPNG walks the chunk stream of a PNG, calling fn for each chunk.
// Chunks fn vetoes are omitted from out; with a nil out the verdicts are
// ignored. The scan stops after IEND.
func scanPNG(
	data []byte,
	out *bytes.Buffer,
	fn func(typ string, payload []byte) bool,
) error {
	if !bytes.HasPrefix(data, pngSignature) {
		return fmt.Errorf("bad png signature")
	}

	if out != nil {
		out.Write(pngSignature)
	}

	i := len(pngSignature)
	for i+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[i : i+4]))
		typ := string(data[i+4 : i+8])

		end := i + 8 + length + 4
		if end > len(data) {
			return fmt.Errorf("truncated chunk %q at offset %d", typ, i)
		}

		keep := fn(typ, data[i+8:i+8+length])
		if out != nil && keep {
			out.Write(data[i:end])
		}

		i = end

		if typ == "IEND" {
			return nil
		}
	}

	return fmt.Errorf("missing IEND chunk")
}

// pngChunkTags names the metadata carried by one chunk. Text chunks
// report their keyword, Exif chunks expand through the shared walker.
func pngChunkTags(
	typ string,
	payload []byte,
) []string {
	switch typ {
	case "tEXt", "zTXt", "iTXt":
		keyword := payload
		if idx := bytes.IndexByte(payload, 0); idx >= 0 {
			keyword = payload[:idx]
		}

		if len(keyword) == 0 {
			return []string{typ}
		}

		return []string{string(keyword)}
	case "tIME":
		return []string{"tIME"}
	case "eXIf":
		tags, err := exifTags(payload)
		if err != nil || len(tags) == 0 {
			return []string{"EXIF"}
		}

		return tags
	}

	return nil
}
