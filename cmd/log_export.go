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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/metascrub-io/metascrub/internal/auditlog/export"
	"github.com/metascrub-io/metascrub/internal/cli"
)

// exportBatchSize is the fetcher page size for log export.
const exportBatchSize = 100

// logExportCmd represents the log export command.
var logExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export decrypted audit log entries as JSON lines",
	Run: func(cmd *cobra.Command, _ []string) {
		output, _ := cmd.Flags().GetString("output")

		table, err := loadLogTable()
		if err != nil {
			cli.LogFatal(logger, "failed to load audit log", err, "path", resolveLogPath())
		}

		result, err := export.Run(
			cmd.Context(),
			logger,
			export.NewTableFetcher(table),
			export.NewFileExporter(output),
			exportBatchSize,
			func(exported int, total int) {
				logger.Debug(
					"export progress",
					slog.Int("exported", exported),
					slog.Int("total", total),
				)
			},
		)
		if err != nil {
			cli.LogFatal(logger, "failed to export audit log", err, "output", output)
		}

		if jsonOutput {
			if err := printJSON(result); err != nil {
				cli.LogFatal(logger, "failed to render output", err)
			}

			return
		}

		cli.PrintKV(
			"Exported", formatCount(result.ExportedEntries),
			"Total", formatCount(result.TotalEntries),
			"Output", output,
		)
	},
}

func init() {
	logCmd.AddCommand(logExportCmd)

	logExportCmd.PersistentFlags().
		StringP("output", "o", "", "Destination file for exported entries")

	_ = logExportCmd.MarkPersistentFlagRequired("output")
}
