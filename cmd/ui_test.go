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

package cmd

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type UITestSuite struct {
	suite.Suite
}

func TestUITestSuite(t *testing.T) {
	suite.Run(t, new(UITestSuite))
}

func (suite *UITestSuite) TestFormatBytes() {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{
			name: "when below one KiB renders bytes",
			n:    512,
			want: "512 B",
		},
		{
			name: "when zero renders zero bytes",
			n:    0,
			want: "0 B",
		},
		{
			name: "when KiB range renders one decimal",
			n:    1536,
			want: "1.5 KiB",
		},
		{
			name: "when MiB range renders one decimal",
			n:    5 * 1024 * 1024,
			want: "5.0 MiB",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := formatBytes(tc.n)

			suite.Equal(tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestParseRowInput() {
	tests := []struct {
		name     string
		line     string
		max      int
		wantRow  int
		wantQuit bool
		wantErr  bool
	}{
		{
			name:    "when a valid index is entered returns it",
			line:    "3\n",
			max:     5,
			wantRow: 3,
		},
		{
			name:    "when input has surrounding spaces still parses",
			line:    "  2 \n",
			max:     5,
			wantRow: 2,
		},
		{
			name:     "when n is entered quits",
			line:     "n\n",
			max:      5,
			wantQuit: true,
		},
		{
			name:     "when quit is entered quits",
			line:     "quit\n",
			max:      5,
			wantQuit: true,
		},
		{
			name:    "when input is not numeric errors",
			line:    "abc\n",
			max:     5,
			wantErr: true,
		},
		{
			name:    "when index is zero errors",
			line:    "0\n",
			max:     5,
			wantErr: true,
		},
		{
			name:    "when index exceeds max errors",
			line:    "6\n",
			max:     5,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			row, quit, err := parseRowInput(tc.line, tc.max)

			if tc.wantErr {
				suite.Error(err)

				return
			}

			suite.NoError(err)
			suite.Equal(tc.wantQuit, quit)
			suite.Equal(tc.wantRow, row)
		})
	}
}
