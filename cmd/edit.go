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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metascrub-io/metascrub/internal/cli"
)

// editCmd represents the edit command.
var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Set metadata tags on a copy of a file",
	Long: `Set metadata tags on the given file. The source file is left untouched;
an edited copy is written next to it (or into --output-dir) with a
_modified suffix. Each --set takes a TAG=VALUE pair; the editable tags
depend on the file format (EXIF tags and Comment for JPEG, text
keywords for PNG, Info dictionary keys for PDF, core document
properties for docx and xlsx). Every successful operation is appended
to the audit log.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// The clean command owns the scrub.output_dir viper binding;
		// rebinding the key here would shadow its flag.
		if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
			appConfig.Scrub.OutputDir = outputDir
		}

		pairs, _ := cmd.Flags().GetStringArray("set")

		set, err := parseTagPairs(pairs)
		if err != nil {
			cli.LogFatal(logger, "invalid --set value", err)
		}

		scrubber, err := newScrubber()
		if err != nil {
			cli.LogFatal(logger, "failed to set up scrubber", err)
		}

		report, err := scrubber.Edit(args[0], set)
		if err != nil {
			cli.LogFatal(logger, "failed to edit file", err)
		}

		if jsonOutput {
			if err := printJSON(report); err != nil {
				cli.LogFatal(logger, "failed to render output", err)
			}

			return
		}

		cli.PrintKV(
			"Edited", report.NewPath,
			"Modified", cli.FormatList(report.ModifiedTags),
		)
		cli.PrintKV(
			"Size", formatBytes(report.Stats.NewSize),
		)
	},
}

// parseTagPairs splits repeated TAG=VALUE flags into the edit set.
func parseTagPairs(
	pairs []string,
) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("at least one --set TAG=VALUE is required")
	}

	set := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		tag, value, ok := strings.Cut(pair, "=")
		if !ok || tag == "" {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}

		set[tag] = value
	}

	return set, nil
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.PersistentFlags().
		StringArray("set", nil, "Tag to set, as TAG=VALUE (repeatable)")
	editCmd.PersistentFlags().
		StringP("output-dir", "o", "", "Directory receiving edited copies")
}
