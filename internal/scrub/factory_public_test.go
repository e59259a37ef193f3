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
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/metascrub-io/metascrub/internal/scrub"
)

type FactoryPublicTestSuite struct {
	suite.Suite

	appFs  afero.Fs
	logger *slog.Logger
}

func (suite *FactoryPublicTestSuite) SetupTest() {
	suite.appFs = afero.NewMemMapFs()
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *FactoryPublicTestSuite) TestProviderFor() {
	tests := []struct {
		name             string
		path             string
		wantMetadataType string
		wantErr          bool
	}{
		{
			name:             "jpg",
			path:             "/pics/holiday.jpg",
			wantMetadataType: "EXIF",
		},
		{
			name:             "jpeg uppercase",
			path:             "/pics/HOLIDAY.JPEG",
			wantMetadataType: "EXIF",
		},
		{
			name:             "png",
			path:             "/pics/chart.png",
			wantMetadataType: "PNG Metadata",
		},
		{
			name:             "pdf",
			path:             "/docs/report.pdf",
			wantMetadataType: "PDF Metadata",
		},
		{
			name:             "docx",
			path:             "/docs/letter.docx",
			wantMetadataType: "Document Properties",
		},
		{
			name:             "xlsx",
			path:             "/docs/budget.xlsx",
			wantMetadataType: "Document Properties",
		},
		{
			name:    "gif",
			path:    "/pics/anim.gif",
			wantErr: true,
		},
		{
			name:    "no extension",
			path:    "/docs/README",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			provider, err := scrub.ProviderFor(suite.appFs, suite.logger, tc.path)

			if tc.wantErr {
				suite.Require().Error(err)
				suite.True(scrub.IsUnsupported(err))

				return
			}

			suite.Require().NoError(err)
			suite.Equal(tc.wantMetadataType, provider.MetadataType())
		})
	}
}

func (suite *FactoryPublicTestSuite) TestSupported() {
	suite.True(scrub.Supported("a.jpg"))
	suite.True(scrub.Supported("a.JPeG"))
	suite.True(scrub.Supported("a.png"))
	suite.True(scrub.Supported("a.pdf"))
	suite.True(scrub.Supported("a.docx"))
	suite.True(scrub.Supported("a.xlsx"))
	suite.False(scrub.Supported("a.gif"))
	suite.False(scrub.Supported("a"))
	suite.False(scrub.Supported("jpg"))
}

func (suite *FactoryPublicTestSuite) TestInspect() {
	err := afero.WriteFile(suite.appFs, "/pics/holiday.jpg", jpegFixture(), 0o644)
	suite.Require().NoError(err)

	inspection, err := scrub.Inspect(suite.appFs, suite.logger, "/pics/holiday.jpg")

	suite.Require().NoError(err)
	suite.Contains(inspection.Tags, "Make")
}

func (suite *FactoryPublicTestSuite) TestInspectUnsupported() {
	_, err := scrub.Inspect(suite.appFs, suite.logger, "/pics/anim.gif")

	suite.Require().Error(err)
	suite.True(scrub.IsUnsupported(err))
}

func TestFactoryPublicTestSuite(t *testing.T) {
	suite.Run(t, new(FactoryPublicTestSuite))
}
