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

package auditlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RecordTestSuite struct {
	suite.Suite
}

func (s *RecordTestSuite) TestJoinTags() {
	tests := []struct {
		name   string
		tags   []string
		failed bool
		want   string
	}{
		{
			name: "when tags are present they sort",
			tags: []string{"Model", "GPSLatitude", "Make"},
			want: "GPSLatitude; Make; Model",
		},
		{
			name: "when no tags remain",
			tags: nil,
			want: "None",
		},
		{
			name:   "when collection failed",
			tags:   []string{"Model"},
			failed: true,
			want:   "Error",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Equal(tc.want, joinTags(tc.tags, tc.failed))
		})
	}
}

func (s *RecordTestSuite) TestJoinTagsLeavesInputUnsorted() {
	tags := []string{"Model", "Make"}
	_ = joinTags(tags, false)

	s.Equal([]string{"Model", "Make"}, tags)
}

func (s *RecordTestSuite) TestValidateLogNameLengthBoundary() {
	s.NoError(validateLogName(strings.Repeat("a", maxLogNameLen)))
	s.Error(validateLogName(strings.Repeat("a", maxLogNameLen+1)))
}

func (s *RecordTestSuite) TestClip() {
	s.Equal("short", clip("short", 18))
	s.Equal(strings.Repeat("a", 18), clip(strings.Repeat("a", 40), 18))
	s.Equal("ééé", clip("ééé", 3))
}

func TestRecordTestSuite(t *testing.T) {
	suite.Run(t, new(RecordTestSuite))
}
