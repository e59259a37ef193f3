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
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
)

const (
	corePropsPart   = "docProps/core.xml"
	appPropsPart    = "docProps/app.xml"
	customPropsPart = "docProps/custom.xml"
)

var minimalCoreProps = []byte(xml.Header +
	`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"/>`)

var minimalAppProps = []byte(xml.Header +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"/>`)

// corePropertyNames maps core property element names to audit tag names.
var corePropertyNames = map[string]string{
	"title":          "Title",
	"subject":        "Subject",
	"creator":        "Creator",
	"keywords":       "Keywords",
	"description":    "Description",
	"lastModifiedBy": "LastModifiedBy",
	"revision":       "Revision",
	"lastPrinted":    "LastPrinted",
	"created":        "Created",
	"modified":       "Modified",
	"category":       "Category",
	"contentStatus":  "ContentStatus",
	"language":       "Language",
	"identifier":     "Identifier",
	"version":        "Version",
}

// editableCoreProperties maps audit tag names to the qualified core
// property elements an edit can set, in serialization order.
var editableCoreProperties = []struct {
	name    string
	element string
}{
	{"Title", "dc:title"},
	{"Subject", "dc:subject"},
	{"Creator", "dc:creator"},
	{"Keywords", "cp:keywords"},
	{"Description", "dc:description"},
	{"Language", "dc:language"},
	{"Identifier", "dc:identifier"},
	{"LastModifiedBy", "cp:lastModifiedBy"},
	{"Category", "cp:category"},
	{"ContentStatus", "cp:contentStatus"},
	{"Version", "cp:version"},
}

// appPropertyAllowlist are the extended properties worth auditing; bulk
// statistics like word counts are ignored.
var appPropertyAllowlist = map[string]bool{
	"Template":      true,
	"Manager":       true,
	"Company":       true,
	"Application":   true,
	"AppVersion":    true,
	"TotalTime":     true,
	"HyperlinkBase": true,
}

// OOXML rewrites docx and xlsx packages with emptied document
// properties: core and extended property parts are replaced by minimal
// documents, custom properties are dropped, and every other part is
// copied through. Rebuilt zip entries carry no source timestamps.
type OOXML struct {
	appFs  afero.Fs
	logger *slog.Logger
}

// NewOOXML creates an OOXML provider.
func NewOOXML(
	appFs afero.Fs,
	logger *slog.Logger,
) *OOXML {
	return &OOXML{
		appFs:  appFs,
		logger: logger,
	}
}

// OperationType implements Provider.
func (p *OOXML) OperationType() string {
	return "Metadata Removal"
}

// MetadataType implements Provider.
func (p *OOXML) MetadataType() string {
	return "Document Properties"
}

// Inspect implements Provider.
func (p *OOXML) Inspect(
	params InspectParams,
) (*Inspection, error) {
	data, err := afero.ReadFile(p.appFs, params.Path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening document archive: %w", err)
	}

	tags, err := ooxmlTags(zr)
	if err != nil {
		return nil, err
	}

	return &Inspection{Tags: tags}, nil
}

// Scrub implements Provider.
func (p *OOXML) Scrub(
	params Params,
) (*Result, error) {
	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening document archive: %w", err)
	}

	removed, err := ooxmlTags(zr)
	if err != nil {
		return nil, err
	}

	dst, err := p.appFs.Create(params.Dest)
	if err != nil {
		return nil, fmt.Errorf("creating cleaned document: %w", err)
	}

	zw := zip.NewWriter(dst)

	for _, f := range zr.File {
		if err := writeScrubbedPart(zw, f); err != nil {
			_ = zw.Close()
			_ = dst.Close()
			_ = p.appFs.Remove(params.Dest)

			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		_ = dst.Close()
		_ = p.appFs.Remove(params.Dest)

		return nil, fmt.Errorf("finalizing cleaned document: %w", err)
	}

	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("closing cleaned document: %w", err)
	}

	p.logger.Debug(
		"scrubbed document",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("removed", len(removed)),
	)

	return &Result{RemovedTags: removed}, nil
}

// Edit implements Provider. Tags are the descriptive core document
// properties; the copy carries a rebuilt core part with the requested
// values merged over the existing descriptive ones. Dates and revision
// counters are not carried over. Extended and custom properties pass
// through untouched.
func (p *OOXML) Edit(
	params EditParams,
) (*EditResult, error) {
	editable := map[string]bool{}
	for _, prop := range editableCoreProperties {
		editable[prop.name] = true
	}

	for name := range params.Set {
		if !editable[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
	}

	data, err := afero.ReadFile(p.appFs, params.Source)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening document archive: %w", err)
	}

	values := map[string]string{}

	for _, f := range zr.File {
		if f.Name != corePropsPart {
			continue
		}

		content, err := readZipPart(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}

		for _, prop := range propertyElements(content) {
			name, ok := corePropertyNames[prop.name]
			if ok && editable[name] {
				values[name] = prop.value
			}
		}
	}

	for name, value := range params.Set {
		values[name] = value
	}

	coreXML := buildCoreProps(values)

	dst, err := p.appFs.Create(params.Dest)
	if err != nil {
		return nil, fmt.Errorf("creating edited document: %w", err)
	}

	zw := zip.NewWriter(dst)
	wroteCore := false

	for _, f := range zr.File {
		var err error

		if f.Name == corePropsPart {
			err = writeZipPart(zw, corePropsPart, coreXML)
			wroteCore = true
		} else {
			err = copyZipPart(zw, f)
		}

		if err != nil {
			_ = zw.Close()
			_ = dst.Close()
			_ = p.appFs.Remove(params.Dest)

			return nil, err
		}
	}

	if !wroteCore {
		if err := writeZipPart(zw, corePropsPart, coreXML); err != nil {
			_ = zw.Close()
			_ = dst.Close()
			_ = p.appFs.Remove(params.Dest)

			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		_ = dst.Close()
		_ = p.appFs.Remove(params.Dest)

		return nil, fmt.Errorf("finalizing edited document: %w", err)
	}

	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("closing edited document: %w", err)
	}

	modified := sortedKeys(params.Set)

	p.logger.Debug(
		"edited document",
		slog.String("source", params.Source),
		slog.String("dest", params.Dest),
		slog.Int("modified", len(modified)),
	)

	return &EditResult{ModifiedTags: modified}, nil
}

// buildCoreProps serializes a core properties part carrying the given
// non-empty values.
func buildCoreProps(
	values map[string]string,
) []byte {
	var out bytes.Buffer

	out.WriteString(xml.Header)
	out.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)

	for _, prop := range editableCoreProperties {
		value, ok := values[prop.name]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}

		out.WriteString("<" + prop.element + ">")
		_ = xml.EscapeText(&out, []byte(value))
		out.WriteString("</" + prop.element + ">")
	}

	out.WriteString(`</cp:coreProperties>`)

	return out.Bytes()
}

// ooxmlTags collects the non-empty property tags across the three
// property parts.
func ooxmlTags(
	zr *zip.Reader,
) ([]string, error) {
	var tags []string

	for _, f := range zr.File {
		var collect func([]byte) []string

		switch f.Name {
		case corePropsPart:
			collect = corePropertyTags
		case appPropsPart:
			collect = appPropertyTags
		case customPropsPart:
			collect = customPropertyTags
		default:
			continue
		}

		content, err := readZipPart(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}

		tags = append(tags, collect(content)...)
	}

	return tags, nil
}

// writeScrubbedPart writes one source part into the rebuilt package,
// replacing or dropping the property parts.
func writeScrubbedPart(
	zw *zip.Writer,
	f *zip.File,
) error {
	switch f.Name {
	case customPropsPart:
		return nil
	case corePropsPart:
		return writeZipPart(zw, f.Name, minimalCoreProps)
	case appPropsPart:
		return writeZipPart(zw, f.Name, minimalAppProps)
	}

	return copyZipPart(zw, f)
}

// copyZipPart copies one source part into the rebuilt package without
// carrying its timestamps.
func copyZipPart(
	zw *zip.Writer,
	f *zip.File,
) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method})
	if err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}

	return nil
}

// writeZipPart writes a replacement part with the given content.
func writeZipPart(
	zw *zip.Writer,
	name string,
	content []byte,
) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

// readZipPart reads one part of the package into memory.
func readZipPart(
	f *zip.File,
) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}

// corePropertyTags names the non-empty core properties.
func corePropertyTags(
	data []byte,
) []string {
	var tags []string

	for _, prop := range propertyElements(data) {
		if strings.TrimSpace(prop.value) == "" {
			continue
		}

		name, ok := corePropertyNames[prop.name]
		if !ok {
			name = prop.name
		}

		tags = append(tags, name)
	}

	return tags
}

// appPropertyTags names the non-empty allowlisted extended properties.
func appPropertyTags(
	data []byte,
) []string {
	var tags []string

	for _, prop := range propertyElements(data) {
		if !appPropertyAllowlist[prop.name] {
			continue
		}

		if strings.TrimSpace(prop.value) == "" {
			continue
		}

		tags = append(tags, prop.name)
	}

	return tags
}

// customPropertyTags names every caller-defined custom property.
func customPropertyTags(
	data []byte,
) []string {
	var tags []string

	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "property" {
			continue
		}

		for _, attr := range start.Attr {
			if attr.Name.Local == "name" && attr.Value != "" {
				tags = append(tags, attr.Value)
			}
		}
	}

	return tags
}

// docProperty is one property element of a docProps part.
type docProperty struct {
	name  string
	value string
}

// propertyElements returns the local name and accumulated text of each
// direct child element of the document root.
func propertyElements(
	data []byte,
) []docProperty {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var props []docProperty

	depth := 0
	current := -1

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				props = append(props, docProperty{name: t.Name.Local})
				current = len(props) - 1
			}
		case xml.EndElement:
			if depth == 2 {
				current = -1
			}
			depth--
		case xml.CharData:
			if current >= 0 {
				props[current].value += string(t)
			}
		}
	}

	return props
}
