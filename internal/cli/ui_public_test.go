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

package cli_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/metascrub-io/metascrub/internal/cli"
)

type UIPublicTestSuite struct {
	suite.Suite
}

func TestUIPublicTestSuite(t *testing.T) {
	suite.Run(t, new(UIPublicTestSuite))
}

func (suite *UIPublicTestSuite) TestColumnWidths() {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		want    []int
	}{
		{
			name:    "when headers are widest uses header widths",
			headers: []string{"TIMESTAMP", "FILE"},
			rows:    [][]string{{"now", "a"}},
			want:    []int{9, 4},
		},
		{
			name:    "when cells are widest uses cell widths",
			headers: []string{"A", "B"},
			rows: [][]string{
				{"short", "a much longer cell"},
				{"x", "y"},
			},
			want: []int{5, 18},
		},
		{
			name:    "when a row is short ignores missing cells",
			headers: []string{"A", "B"},
			rows:    [][]string{{"only"}},
			want:    []int{4, 1},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.ColumnWidths(tc.headers, tc.rows)

			suite.Equal(tc.want, got)
		})
	}
}

func (suite *UIPublicTestSuite) TestFormatList() {
	tests := []struct {
		name string
		list []string
		want string
	}{
		{
			name: "when list is empty returns None",
			list: nil,
			want: "None",
		},
		{
			name: "when list has entries joins with comma",
			list: []string{"Artist", "GPSLatitude"},
			want: "Artist, GPSLatitude",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.FormatList(tc.list)

			suite.Equal(tc.want, got)
		})
	}
}
