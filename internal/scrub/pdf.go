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
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

var (
	pdfHeader      = []byte("%PDF-")
	pdfInfoRefRE   = regexp.MustCompile(`/Info\s+(\d+)\s+(\d+)\s+R`)
	pdfSizeRE      = regexp.MustCompile(`/Size\s+(\d+)`)
	pdfRootRE      = regexp.MustCompile(`/Root\s+\d+\s+\d+\s+R`)
	pdfStartxrefRE = regexp.MustCompile(`startxref\s+(\d+)`)
	xpacketBeginRE = regexp.MustCompile(`<\?xpacket begin[^>]*\?>`)
	xpacketEndRE   = regexp.MustCompile(`<\?xpacket end[^>]*\?>`)
)

// pdfInfoKeys are the document information dictionary entries a scrub
// blanks.
var pdfInfoKeys = []string{
	"Title", "Author", "Subject", "Keywords",
	"Creator", "Producer", "CreationDate", "ModDate",
}

// PDF blanks the document information dictionary and whitespace-fills
// XMP packets in place, so every byte offset — and with it the xref
// table — stays valid.
type PDF struct {
	appFs  afero.Fs
	logger *slog.Logger
}

// NewPDF creates a PDF provider.
func NewPDF(
	appFs afero.Fs,
	logger *slog.Logger,
) *PDF {
	return &PDF{
		appFs:  appFs,
		logger: logger,
	}
}

// OperationType implements Provider.
func (p *PDF) OperationType() string {
	return "Metadata Removal"
}

// MetadataType implements Provider.
func (p *PDF) MetadataType() string {
	return "PDF Metadata"
}

// Inspect implements Provider.
func (p *PDF) Inspect(
	params InspectParams,
) (*Inspection, error) {
	data, err := afero.ReadFile(p.appFs, params.Path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	if !bytes.HasPrefix(data, pdfHeader) {
		return nil, fmt.Errorf("missing pdf header")
	}

	spans, err := pdfInfoSpans(data)
	if err != nil {
		return nil, err
	}

	var tags []string

	if len(spans) > 0 {
		// The last occurrence carries the current values.
		span := spans[len(spans)-1]
		pdfInfoEntries(data, span[0], span[1], func(key string, vs, ve int) {
			if len(bytes.TrimSpace(data[vs:ve])) > 0 {
				tags = append(tags, key)
			}
		})
	}

	if bytes.Contains(data, []byte("<x:xmpmeta")) {
		tags = append(tags, "XMP")
	}

	return &Inspection{Tags: tags}, nil
}

// Scrub implements Provider.
func (p *PDF) Scrub(
	params Params,
) (*Result, error) {
	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	if !bytes.HasPrefix(data, pdfHeader) {
		return nil, fmt.Errorf("missing pdf header")
	}

	if bytes.Contains(data, []byte("/Encrypt")) {
		return nil, fmt.Errorf("%w: encrypted pdf", ErrUnsupported)
	}

	spans, err := pdfInfoSpans(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	copy(out, data)

	var removed []string

	// Blank every generation of the Info object; incremental updates
	// keep superseded values in the file otherwise.
	for i, span := range spans {
		pdfInfoEntries(out, span[0], span[1], func(key string, vs, ve int) {
			if len(bytes.TrimSpace(out[vs:ve])) == 0 {
				return
			}

			for b := vs; b < ve; b++ {
				out[b] = ' '
			}

			if i == len(spans)-1 {
				removed = append(removed, key)
			}
		})
	}

	if blankXMP(out) {
		removed = append(removed, "XMP")
	}

	if err := afero.WriteFile(p.appFs, params.Dest, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing cleaned pdf: %w", err)
	}

	p.logger.Debug(
		"scrubbed pdf",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("removed", len(removed)),
	)

	return &Result{RemovedTags: removed}, nil
}

// Edit implements Provider. Tags are the Info dictionary keys. The copy
// gains an appended incremental update carrying a superseding Info
// object, so every existing byte offset stays valid.
func (p *PDF) Edit(
	params EditParams,
) (*EditResult, error) {
	known := map[string]bool{}
	for _, key := range pdfInfoKeys {
		known[key] = true
	}

	for name := range params.Set {
		if !known[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
	}

	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	if !bytes.HasPrefix(data, pdfHeader) {
		return nil, fmt.Errorf("missing pdf header")
	}

	if bytes.Contains(data, []byte("/Encrypt")) {
		return nil, fmt.Errorf("%w: encrypted pdf", ErrUnsupported)
	}

	trailer, err := pdfLastTrailer(data)
	if err != nil {
		return nil, err
	}

	spans, err := pdfInfoSpans(data)
	if err != nil {
		return nil, err
	}

	// Current values carry over as their verbatim string tokens unless
	// overridden.
	tokens := map[string]string{}

	if len(spans) > 0 {
		span := spans[len(spans)-1]
		pdfInfoEntries(data, span[0], span[1], func(key string, vs, ve int) {
			if len(bytes.TrimSpace(data[vs:ve])) > 0 {
				tokens[key] = string(data[vs-1 : ve+1])
			}
		})
	}

	for key, value := range params.Set {
		tokens[key] = "(" + pdfEscapeString(value) + ")"
	}

	objNum, gen := trailer.size, 0
	size := trailer.size + 1

	if len(spans) > 0 {
		refs := pdfInfoRefRE.FindAllStringSubmatch(string(data), -1)
		last := refs[len(refs)-1]

		objNum, _ = strconv.Atoi(last[1])
		gen, _ = strconv.Atoi(last[2])
		size = trailer.size
	}

	var update bytes.Buffer

	update.WriteByte('\n')

	objOffset := len(data) + update.Len()

	fmt.Fprintf(&update, "%d %d obj\n<<", objNum, gen)

	for _, key := range pdfInfoKeys {
		if token, ok := tokens[key]; ok {
			fmt.Fprintf(&update, " /%s %s", key, token)
		}
	}

	update.WriteString(" >>\nendobj\n")

	xrefOffset := len(data) + update.Len()

	fmt.Fprintf(&update, "xref\n%d 1\n%010d %05d n \n", objNum, objOffset, gen)
	fmt.Fprintf(&update, "trailer\n<< /Size %d %s /Info %d %d R",
		size, trailer.root, objNum, gen)

	if trailer.prev >= 0 {
		fmt.Fprintf(&update, " /Prev %d", trailer.prev)
	}

	fmt.Fprintf(&update, " >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	edited := make([]byte, 0, len(data)+update.Len())
	edited = append(edited, data...)
	edited = append(edited, update.Bytes()...)

	if err := afero.WriteFile(p.appFs, params.Dest, edited, 0o644); err != nil {
		return nil, fmt.Errorf("writing edited pdf: %w", err)
	}

	modified := sortedKeys(params.Set)

	p.logger.Debug(
		"edited pdf",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("modified", len(modified)),
	)

	return &EditResult{ModifiedTags: modified}, nil
}

// pdfTrailer is what an incremental update needs from the previous
// trailer.
type pdfTrailer struct {
	size int
	root string
	prev int
}

// pdfLastTrailer parses the size, root reference and startxref offset
// out of the file's last trailer. Files whose trailer lives in a
// cross-reference stream report ErrUnsupported.
func pdfLastTrailer(
	data []byte,
) (*pdfTrailer, error) {
	if !bytes.Contains(data, []byte("trailer")) {
		return nil, fmt.Errorf("%w: cross-reference stream trailer", ErrUnsupported)
	}

	sizes := pdfSizeRE.FindAllSubmatch(data, -1)
	if len(sizes) == 0 {
		return nil, fmt.Errorf("trailer has no /Size entry")
	}

	size, err := strconv.Atoi(string(sizes[len(sizes)-1][1]))
	if err != nil {
		return nil, fmt.Errorf("parsing trailer /Size: %w", err)
	}

	roots := pdfRootRE.FindAll(data, -1)
	if len(roots) == 0 {
		return nil, fmt.Errorf("trailer has no /Root entry")
	}

	trailer := &pdfTrailer{
		size: size,
		root: string(roots[len(roots)-1]),
		prev: -1,
	}

	if offsets := pdfStartxrefRE.FindAllSubmatch(data, -1); len(offsets) > 0 {
		if prev, err := strconv.Atoi(string(offsets[len(offsets)-1][1])); err == nil {
			trailer.prev = prev
		}
	}

	return trailer, nil
}

// pdfEscapeString escapes a value for a literal string token.
func pdfEscapeString(
	value string,
) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`(`, `\(`,
		`)`, `\)`,
	)

	return replacer.Replace(value)
}

// pdfInfoSpans returns the dictionary body spans of every direct
// occurrence of the document information object, oldest first. A PDF
// whose Info lives only in a compressed object stream is out of reach
// for an offset-preserving scrub and reports ErrUnsupported.
func pdfInfoSpans(
	data []byte,
) ([][2]int, error) {
	refs := pdfInfoRefRE.FindAllSubmatch(data, -1)
	if len(refs) == 0 {
		return nil, nil
	}

	last := refs[len(refs)-1]

	objRE := regexp.MustCompile(
		fmt.Sprintf(`(?s)\b%s\s+%s\s+obj\b(.*?)endobj`, last[1], last[2]),
	)

	matches := objRE.FindAllSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: info dictionary in compressed object stream", ErrUnsupported)
	}

	spans := make([][2]int, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, [2]int{m[2], m[3]})
	}

	return spans, nil
}

// pdfInfoEntries walks an Info dictionary body, calling fn with each
// known key and the absolute span of its direct string value's content.
// Indirect and non-string values are skipped.
func pdfInfoEntries(
	data []byte,
	start int,
	end int,
	fn func(key string, valStart, valEnd int),
) {
	body := data[start:end]

	for _, key := range pdfInfoKeys {
		marker := []byte("/" + key)

		search := 0
		for {
			rel := bytes.Index(body[search:], marker)
			if rel < 0 {
				break
			}

			pos := search + rel + len(marker)
			search = search + rel + 1

			// A regular character after the name means a longer name
			// that merely shares the prefix.
			if pos < len(body) && isPDFRegular(body[pos]) {
				continue
			}

			for pos < len(body) && isPDFSpace(body[pos]) {
				pos++
			}

			if pos >= len(body) {
				break
			}

			if vs, ve, ok := pdfStringSpan(body, pos); ok {
				fn(key, start+vs, start+ve)
			}

			break
		}
	}
}

// pdfStringSpan returns the content span of the string value starting at
// body[pos], for literal and hex strings.
func pdfStringSpan(
	body []byte,
	pos int,
) (int, int, bool) {
	switch body[pos] {
	case '(':
		end := pdfLiteralEnd(body, pos)
		if end < 0 {
			return 0, 0, false
		}

		return pos + 1, end - 1, true
	case '<':
		if pos+1 < len(body) && body[pos+1] == '<' {
			return 0, 0, false
		}

		rel := bytes.IndexByte(body[pos:], '>')
		if rel < 0 {
			return 0, 0, false
		}

		return pos + 1, pos + rel, true
	}

	return 0, 0, false
}

// pdfLiteralEnd returns the index just past the literal string opening
// at body[i], honoring backslash escapes and balanced parentheses.
func pdfLiteralEnd(
	body []byte,
	i int,
) int {
	depth := 0

	for ; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}

	return -1
}

// blankXMP whitespace-fills every XMP packet body in place and reports
// whether any packet carried content. Packets inside compressed streams
// have no literal markers and are left alone.
func blankXMP(
	data []byte,
) bool {
	blanked := false

	pos := 0
	for {
		begin := xpacketBeginRE.FindIndex(data[pos:])
		if begin == nil {
			break
		}

		bodyStart := pos + begin[1]

		endRel := xpacketEndRE.FindIndex(data[bodyStart:])
		if endRel == nil {
			break
		}

		bodyEnd := bodyStart + endRel[0]

		if len(bytes.TrimSpace(data[bodyStart:bodyEnd])) > 0 {
			blanked = true
		}

		for i := bodyStart; i < bodyEnd; i++ {
			data[i] = ' '
		}

		pos = bodyStart + endRel[1]
	}

	return blanked
}

// isPDFSpace reports whether c is PDF whitespace.
func isPDFSpace(
	c byte,
) bool {
	switch c {
	case 0x00, '\t', '\n', '\f', '\r', ' ':
		return true
	}

	return false
}

// isPDFRegular reports whether c is a regular character, i.e. neither
// whitespace nor a delimiter.
func isPDFRegular(
	c byte,
) bool {
	if isPDFSpace(c) {
		return false
	}

	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}

	return true
}
