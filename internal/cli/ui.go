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

// Package cli provides shared terminal helpers for metascrub commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

// Theme colors for terminal UI rendering.
var (
	Purple    = lipgloss.Color("99")
	Gray      = lipgloss.Color("245")
	LightGray = lipgloss.Color("241")
	White     = lipgloss.Color("15")
	Teal      = lipgloss.Color("#06ffa5")
)

// Reusable inline styles for compact key-value output.
var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle = lipgloss.NewStyle().Foreground(Teal)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
)

// Section represents a table header with its corresponding rows.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// PrintStyledTable renders sections as bordered tables with dynamic
// column widths, scaled down when wider than the terminal.
func PrintStyledTable(
	sections []Section,
) {
	re := lipgloss.NewRenderer(os.Stdout)

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		termWidth = 120
	}

	for _, section := range sections {
		columnWidths := ColumnWidths(section.Headers, section.Rows)

		totalWidth := 0
		for _, width := range columnWidths {
			totalWidth += width
		}
		totalWidth += len(columnWidths) * 3 // borders and spacing

		if totalWidth > termWidth-4 {
			scale := float64(termWidth-4) / float64(totalWidth)
			for i := range columnWidths {
				columnWidths[i] = int(float64(columnWidths[i]) * scale)
				if columnWidths[i] < 8 {
					columnWidths[i] = 8
				}
			}
		}

		var (
			headerStyle  = re.NewStyle().Foreground(White).Bold(true).Align(lipgloss.Center)
			cellStyle    = re.NewStyle().PaddingLeft(1)
			oddRowStyle  = cellStyle.Foreground(Gray)
			evenRowStyle = cellStyle.Foreground(LightGray)
			borderStyle  = re.NewStyle().Foreground(Purple)
			paddingStyle = re.NewStyle().Padding(0, 2)
			titleStyle   = re.NewStyle().Bold(true).Foreground(Purple).PaddingLeft(2).PaddingTop(1)
		)

		if section.Title != "" {
			fmt.Println(titleStyle.Render(section.Title) + ":")
		}

		t := table.New().
			Border(lipgloss.ThickBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(
				row int,
				col int,
			) lipgloss.Style {
				var baseStyle lipgloss.Style
				switch row % 2 {
				case 0:
					baseStyle = evenRowStyle
				default:
					baseStyle = oddRowStyle
				}

				if col < len(columnWidths) {
					baseStyle = baseStyle.Width(columnWidths[col])
				}

				return baseStyle
			})

		styledHeaders := make([]string, len(section.Headers))
		for i, header := range section.Headers {
			styledHeaders[i] = headerStyle.Render(strings.ToUpper(header))
		}
		t.Headers(styledHeaders...)
		t.Rows(section.Rows...)

		fmt.Println(paddingStyle.Render(t.String()))
	}
}

// ColumnWidths sizes each column from its widest header or cell.
func ColumnWidths(
	headers []string,
	rows [][]string,
) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	return widths
}

// KVMinColWidth is the minimum visual width for each key-value column.
// A consistent minimum keeps columns aligned across consecutive PrintKV
// calls.
const KVMinColWidth = 20

// PrintKV prints labeled key-value pairs on a single indented line.
// Arguments alternate between labels and values: label1, val1, label2,
// val2, ...
func PrintKV(
	pairs ...string,
) {
	if len(pairs)%2 != 0 || len(pairs) == 0 {
		return
	}

	rendered := make([]string, 0, len(pairs)/2)
	maxWidth := KVMinColWidth
	for i := 0; i < len(pairs); i += 2 {
		pair := labelStyle.Render(pairs[i]+":") + " " + valueStyle.Render(pairs[i+1])
		rendered = append(rendered, pair)
		if w := lipgloss.Width(pair); w > maxWidth {
			maxWidth = w
		}
	}

	var line strings.Builder
	line.WriteString("  ")
	for i, pair := range rendered {
		line.WriteString(pair)
		if i < len(rendered)-1 {
			pad := maxWidth - lipgloss.Width(pair) + 4
			line.WriteString(strings.Repeat(" ", pad))
		}
	}
	fmt.Println(line.String())
}

// FormatList joins a string list for display, with "None" for empty.
func FormatList(
	list []string,
) string {
	if len(list) == 0 {
		return "None"
	}

	return strings.Join(list, ", ")
}

// readPasswordFn reads a password from the terminal. Override in tests.
var readPasswordFn = func(fd int) ([]byte, error) {
	return term.ReadPassword(fd)
}

// SetReadPasswordFunc replaces the terminal password reader. Used by
// tests.
func SetReadPasswordFunc(
	fn func(int) ([]byte, error),
) {
	readPasswordFn = fn
}

// ReadPassword prompts for a password without echo. When stdin is not a
// terminal the line is read in the clear, so piped input still works.
func ReadPassword(
	prompt string,
) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := readPasswordFn(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// ConfirmPassword prompts twice until both entries match, then returns
// the password.
func ConfirmPassword() (string, error) {
	for {
		first, err := ReadPassword("Password: ")
		if err != nil {
			return "", err
		}

		second, err := ReadPassword("Confirm password: ")
		if err != nil {
			return "", err
		}

		if first == second {
			return first, nil
		}

		fmt.Fprintln(os.Stderr, "Passwords do not match, try again.")
	}
}
