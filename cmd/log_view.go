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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/metascrub-io/metascrub/internal/auditlog"
	"github.com/metascrub-io/metascrub/internal/cli"
)

// logViewCmd represents the log view command.
var logViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the audit log",
	Long: `View the audit log as a condensed summary table, then drill into
individual rows by their 1-based index. A wrong password on an
encrypted log is fatal here; nothing is recovered or rewritten.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		table, err := loadLogTable()
		if err != nil {
			cli.LogFatal(logger, "failed to load audit log", err, "path", resolveLogPath())
		}

		row, _ := cmd.Flags().GetInt("row")

		if jsonOutput {
			renderViewJSON(table, row)

			return
		}

		if row > 0 {
			renderRow(table, row)

			return
		}

		renderSummary(table)

		if table.Len() > 0 && term.IsTerminal(int(os.Stdin.Fd())) {
			drillDown(table)
		}
	},
}

// renderSummary prints the condensed summary table with a 1-based index
// column.
func renderSummary(
	table *auditlog.Table,
) {
	header, rows := table.Summary()

	headers := append([]string{"#"}, header...)

	indexed := make([][]string, 0, len(rows))
	for i, row := range rows {
		indexed = append(indexed, append([]string{strconv.Itoa(i + 1)}, row...))
	}

	cli.PrintStyledTable([]cli.Section{
		{
			Title:   fmt.Sprintf("Audit log (%d entries)", table.Len()),
			Headers: headers,
			Rows:    indexed,
		},
	})
}

// renderRow prints every column of one row.
func renderRow(
	table *auditlog.Table,
	row int,
) {
	fields, err := table.Row(row)
	if err != nil {
		cli.LogFatal(logger, "failed to read row", err)
	}

	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{field.Name, field.Value})
	}

	cli.PrintStyledTable([]cli.Section{
		{
			Title:   fmt.Sprintf("Entry %d", row),
			Headers: []string{"FIELD", "VALUE"},
			Rows:    rows,
		},
	})
}

// renderViewJSON emits the summary, or one full row with --row, as JSON.
func renderViewJSON(
	table *auditlog.Table,
	row int,
) {
	if row > 0 {
		fields, err := table.Row(row)
		if err != nil {
			cli.LogFatal(logger, "failed to read row", err)
		}

		if err := printJSON(fields); err != nil {
			cli.LogFatal(logger, "failed to render output", err)
		}

		return
	}

	if err := printJSON(table); err != nil {
		cli.LogFatal(logger, "failed to render output", err)
	}
}

// drillDown loops reading row indices from stdin until the user quits.
// Invalid and out-of-range input re-prompts.
func drillDown(
	table *auditlog.Table,
) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Printf("View entry (1-%d), or n to quit: ", table.Len())

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		row, quit, err := parseRowInput(line, table.Len())
		if quit {
			return
		}

		if err != nil {
			fmt.Println(cli.DimStyle.Render(err.Error()))

			continue
		}

		renderRow(table, row)
	}
}

// parseRowInput interprets one drill-down input line: a 1-based row
// index, or "n"/"q" to quit.
func parseRowInput(
	line string,
	max int,
) (int, bool, error) {
	input := strings.ToLower(strings.TrimSpace(line))

	switch input {
	case "n", "q", "no", "quit", "exit":
		return 0, true, nil
	}

	row, err := strconv.Atoi(input)
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", input)
	}

	if row < 1 || row > max {
		return 0, false, fmt.Errorf("entry %d out of range (1-%d)", row, max)
	}

	return row, false, nil
}

func init() {
	logCmd.AddCommand(logViewCmd)

	logViewCmd.PersistentFlags().
		IntP("row", "r", 0, "Print one full entry instead of the summary")
}
