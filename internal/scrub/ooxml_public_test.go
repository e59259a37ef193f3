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

package scrub_test

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/metascrub-io/metascrub/internal/scrub"
)

const fixtureCoreXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<dc:title>Report</dc:title>
<dc:subject/>
<dc:creator>Jane Doe</dc:creator>
<cp:lastModifiedBy>John Smith</cp:lastModifiedBy>
<dcterms:created xsi:type="dcterms:W3CDTF">2026-01-01T10:00:00Z</dcterms:created>
</cp:coreProperties>`

const fixtureAppXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
<Application>Microsoft Word</Application>
<AppVersion>16.0000</AppVersion>
<Company>Acme Corp</Company>
<Words>532</Words>
</Properties>`

const fixtureCustomXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/custom-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">
<property fmtid="{D5CDD505-2E9C-101B-9397-08002B2CF9AE}" pid="2" name="Project"><vt:lpwstr>Skunkworks</vt:lpwstr></property>
</Properties>`

const fixtureDocumentXML = `<w:document>hello</w:document>`

var fixtureTags = []string{
	"Title", "Creator", "LastModifiedBy", "Created",
	"Application", "AppVersion", "Company",
	"Project",
}

type OOXMLPublicTestSuite struct {
	suite.Suite

	appFs  afero.Fs
	logger *slog.Logger
}

func (s *OOXMLPublicTestSuite) SetupTest() {
	s.appFs = afero.NewMemMapFs()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *OOXMLPublicTestSuite) writeDocx(
	path string,
) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	authored := time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", `<Types/>`},
		{"docProps/core.xml", fixtureCoreXML},
		{"docProps/app.xml", fixtureAppXML},
		{"docProps/custom.xml", fixtureCustomXML},
		{"word/document.xml", fixtureDocumentXML},
	}

	for _, part := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: authored,
		})
		s.Require().NoError(err)

		_, err = w.Write([]byte(part.content))
		s.Require().NoError(err)
	}

	s.Require().NoError(zw.Close())
	s.Require().NoError(afero.WriteFile(s.appFs, path, buf.Bytes(), 0o644))
}

func (s *OOXMLPublicTestSuite) openDocx(
	path string,
) *zip.Reader {
	data, err := afero.ReadFile(s.appFs, path)
	s.Require().NoError(err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	s.Require().NoError(err)

	return zr
}

func (s *OOXMLPublicTestSuite) partContent(
	zr *zip.Reader,
	name string,
) string {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}

		rc, err := f.Open()
		s.Require().NoError(err)
		defer func() { _ = rc.Close() }()

		content, err := io.ReadAll(rc)
		s.Require().NoError(err)

		return string(content)
	}

	s.Failf("part not found", "no %s in package", name)

	return ""
}

func (s *OOXMLPublicTestSuite) TestInspect() {
	s.writeDocx("/letter.docx")

	sut := scrub.NewOOXML(s.appFs, s.logger)

	inspection, err := sut.Inspect(scrub.InspectParams{Path: "/letter.docx"})

	s.Require().NoError(err)
	s.ElementsMatch(fixtureTags, inspection.Tags)
}

func (s *OOXMLPublicTestSuite) TestScrub() {
	s.writeDocx("/letter.docx")

	sut := scrub.NewOOXML(s.appFs, s.logger)

	result, err := sut.Scrub(scrub.Params{
		Source: "/letter.docx",
		Dest:   "/letter_clean.docx",
	})

	s.Require().NoError(err)
	s.ElementsMatch(fixtureTags, result.RemovedTags)

	zr := s.openDocx("/letter_clean.docx")

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	s.ElementsMatch(
		[]string{
			"[Content_Types].xml",
			"docProps/core.xml",
			"docProps/app.xml",
			"word/document.xml",
		},
		names,
	)

	s.NotContains(s.partContent(zr, "docProps/core.xml"), "Jane")
	s.NotContains(s.partContent(zr, "docProps/app.xml"), "Acme")
	s.Equal(fixtureDocumentXML, s.partContent(zr, "word/document.xml"))

	inspection, err := sut.Inspect(scrub.InspectParams{Path: "/letter_clean.docx"})
	s.Require().NoError(err)
	s.Empty(inspection.Tags)
}

func (s *OOXMLPublicTestSuite) TestEdit() {
	s.writeDocx("/letter.docx")

	sut := scrub.NewOOXML(s.appFs, s.logger)

	result, err := sut.Edit(scrub.EditParams{
		Source: "/letter.docx",
		Dest:   "/letter_modified.docx",
		Set: map[string]string{
			"Creator": "Archive Team",
			"Title":   "Annual <Summary> & Notes",
		},
	})

	s.Require().NoError(err)
	s.Equal([]string{"Creator", "Title"}, result.ModifiedTags)

	zr := s.openDocx("/letter_modified.docx")

	core := s.partContent(zr, "docProps/core.xml")
	s.Contains(core, "<dc:creator>Archive Team</dc:creator>")
	s.Contains(core, "<dc:title>Annual &lt;Summary&gt; &amp; Notes</dc:title>")
	s.NotContains(core, "Jane")

	// Untouched core values carry over.
	s.Contains(core, "<cp:lastModifiedBy>John Smith</cp:lastModifiedBy>")

	// Extended and custom properties pass through untouched.
	s.Contains(s.partContent(zr, "docProps/app.xml"), "Acme Corp")
	s.Contains(s.partContent(zr, "docProps/custom.xml"), "Skunkworks")
	s.Equal(fixtureDocumentXML, s.partContent(zr, "word/document.xml"))

	inspection, err := sut.Inspect(scrub.InspectParams{Path: "/letter_modified.docx"})
	s.Require().NoError(err)
	s.Contains(inspection.Tags, "Creator")
	s.Contains(inspection.Tags, "Title")
}

func (s *OOXMLPublicTestSuite) TestEditUnknownTag() {
	s.writeDocx("/letter.docx")

	sut := scrub.NewOOXML(s.appFs, s.logger)

	_, err := sut.Edit(scrub.EditParams{
		Source: "/letter.docx",
		Dest:   "/out.docx",
		Set:    map[string]string{"Words": "9000"},
	})

	s.Require().Error(err)
	s.ErrorIs(err, scrub.ErrUnknownTag)
}

func (s *OOXMLPublicTestSuite) TestScrubDropsEntryTimestamps() {
	s.writeDocx("/letter.docx")

	sut := scrub.NewOOXML(s.appFs, s.logger)

	_, err := sut.Scrub(scrub.Params{
		Source: "/letter.docx",
		Dest:   "/letter_clean.docx",
	})
	s.Require().NoError(err)

	for _, f := range s.openDocx("/letter_clean.docx").File {
		s.Less(f.Modified.Year(), 1981, f.Name)
	}
}

func (s *OOXMLPublicTestSuite) TestScrubSourceUntouched() {
	s.writeDocx("/letter.docx")

	before, err := afero.ReadFile(s.appFs, "/letter.docx")
	s.Require().NoError(err)

	sut := scrub.NewOOXML(s.appFs, s.logger)

	_, err = sut.Scrub(scrub.Params{
		Source: "/letter.docx",
		Dest:   "/letter_clean.docx",
	})
	s.Require().NoError(err)

	after, err := afero.ReadFile(s.appFs, "/letter.docx")
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *OOXMLPublicTestSuite) TestRejectsNonArchive() {
	err := afero.WriteFile(s.appFs, "/broken.docx", []byte("not a zip"), 0o644)
	s.Require().NoError(err)

	sut := scrub.NewOOXML(s.appFs, s.logger)

	_, err = sut.Inspect(scrub.InspectParams{Path: "/broken.docx"})
	s.Require().Error(err)
	s.ErrorContains(err, "opening document archive")

	_, err = sut.Scrub(scrub.Params{Source: "/broken.docx", Dest: "/out.docx"})
	s.Require().Error(err)
	s.ErrorContains(err, "opening document archive")
}

func (s *OOXMLPublicTestSuite) TestMissingFile() {
	sut := scrub.NewOOXML(s.appFs, s.logger)

	_, err := sut.Inspect(scrub.InspectParams{Path: "/absent.docx"})
	s.Error(err)
}

func TestOOXMLPublicTestSuite(t *testing.T) {
	suite.Run(t, new(OOXMLPublicTestSuite))
}
