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
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/spf13/afero"

	"github.com/metascrub-io/metascrub/internal/securestore"
)

const (
	summaryColumns = 5
	summaryCellMax = 18
)

// Table is a parsed audit log held in memory for viewing.
type Table struct {
	Header []string
	Rows   [][]string
}

// Field is one named cell of a drilled-down row.
type Field struct {
	Name  string
	Value string
}

// Load reads and parses an audit log. Unlike Append, failures here
// propagate: the caller asked to see the log, so a wrong password or a
// malformed file must surface instead of degrading.
func Load(
	appFs afero.Fs,
	store *securestore.Store,
	path string,
	encrypted bool,
	password string,
) (*Table, error) {
	var (
		payload []byte
		err     error
	)

	if encrypted {
		payload, err = store.DecryptFile(path, password)
	} else {
		payload, err = afero.ReadFile(appFs, path)
		if err != nil {
			err = fmt.Errorf("reading audit log: %w", err)
		}
	}

	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing audit log: %w", err)
	}

	if len(records) == 0 {
		return &Table{}, nil
	}

	return &Table{
		Header: records[0],
		Rows:   records[1:],
	}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Summary returns a compact projection of the table: the first few
// columns with each cell clipped to a short fixed width. Row order is
// the order entries were appended.
func (t *Table) Summary() ([]string, [][]string) {
	cols := summaryColumns
	if len(t.Header) < cols {
		cols = len(t.Header)
	}

	header := t.Header[:cols]

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, cols)

		for i := 0; i < cols; i++ {
			var cell string
			if i < len(row) {
				cell = clip(row[i], summaryCellMax)
			}

			cells = append(cells, cell)
		}

		rows = append(rows, cells)
	}

	return header, rows
}

// Row returns every field of the 1-based row i paired with its column
// name.
func (t *Table) Row(
	i int,
) ([]Field, error) {
	if i < 1 || i > len(t.Rows) {
		return nil, fmt.Errorf("row %d out of range (1-%d)", i, len(t.Rows))
	}

	row := t.Rows[i-1]

	fields := make([]Field, 0, len(t.Header))
	for j, name := range t.Header {
		var value string
		if j < len(row) {
			value = row[j]
		}

		fields = append(fields, Field{Name: name, Value: value})
	}

	return fields, nil
}

// clip truncates s to at most max runes.
func clip(
	s string,
	max int,
) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
