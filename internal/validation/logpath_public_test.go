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

package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/metascrub-io/metascrub/internal/validation"
)

type LogPathPublicTestSuite struct {
	suite.Suite
}

func (s *LogPathPublicTestSuite) TestLogPath() {
	tests := []struct {
		name   string
		path   string
		wantOK bool
	}{
		{
			name:   "when plain file name",
			path:   "metadata_changes.csv",
			wantOK: true,
		},
		{
			name:   "when absolute path",
			path:   "/var/log/metascrub/metadata_changes.csv",
			wantOK: true,
		},
		{
			name:   "when name at the length budget",
			path:   strings.Repeat("a", 246) + ".csv",
			wantOK: true,
		},
		{
			name:   "when name over the length budget",
			path:   strings.Repeat("a", 247) + ".csv",
			wantOK: false,
		},
		{
			name:   "when null byte embedded",
			path:   "audit\x00.csv",
			wantOK: false,
		},
		{
			name:   "when bare slash",
			path:   "/",
			wantOK: false,
		},
		{
			name:   "when directory only",
			path:   "/var/log/",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			errMsg, ok := validation.Var(tt.path, "logpath")
			s.Equal(tt.wantOK, ok)

			if !ok {
				s.Contains(errMsg, "logpath")
			}
		})
	}
}

func (s *LogPathPublicTestSuite) TestLogPathHint() {
	type cfg struct {
		Path string `validate:"logpath"`
	}

	errMsg, ok := validation.Struct(cfg{Path: "audit\x00.csv"})

	s.False(ok)
	s.Contains(errMsg, "not a usable file name")
}

func TestLogPathPublicTestSuite(t *testing.T) {
	suite.Run(t, new(LogPathPublicTestSuite))
}
