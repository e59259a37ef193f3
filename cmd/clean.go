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
	"github.com/spf13/viper"

	"github.com/metascrub-io/metascrub/internal/cli"
	"github.com/metascrub-io/metascrub/internal/scrub"
)

// cleanCmd represents the clean command.
var cleanCmd = &cobra.Command{
	Use:   "clean FILE...",
	Short: "Strip metadata from one or more files",
	Long: `Strip embedded metadata from the given files. Each source file is left
untouched; a cleaned copy is written next to it (or into --output-dir)
with a _clean suffix. Every successful operation is appended to the
audit log.
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keepOriginal, _ := cmd.Flags().GetBool("keep-original")

		scrubber, err := newScrubber()
		if err != nil {
			cli.LogFatal(logger, "failed to set up scrubber", err)
		}

		reports := make([]*scrub.Report, 0, len(args))

		for _, path := range args {
			report, err := scrubber.Clean(path)
			if err != nil {
				logger.Warn(
					"skipping file",
					slog.String("path", path),
					slog.String("error", err.Error()),
				)

				continue
			}

			if !keepOriginal {
				if err := appFs.Remove(path); err != nil {
					logger.Warn(
						"could not remove original",
						slog.String("path", path),
						slog.String("error", err.Error()),
					)
				}
			}

			reports = append(reports, report)
		}

		if jsonOutput {
			if err := printJSON(reports); err != nil {
				cli.LogFatal(logger, "failed to render output", err)
			}

			return
		}

		for _, report := range reports {
			cli.PrintKV(
				"Cleaned", report.NewPath,
				"Removed", cli.FormatList(report.RemovedTags),
			)
			cli.PrintKV(
				"Size", formatBytes(report.Stats.NewSize),
				"Saved", formatBytes(report.Stats.SizeReduction),
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.PersistentFlags().
		StringP("output-dir", "o", "", "Directory receiving cleaned copies")
	cleanCmd.PersistentFlags().
		Bool("keep-original", true, "Keep the source file after scrubbing")

	_ = viper.BindPFlag("scrub.output_dir", cleanCmd.PersistentFlags().Lookup("output-dir"))
}
