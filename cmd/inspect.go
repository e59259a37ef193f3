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
	"github.com/spf13/cobra"

	"github.com/metascrub-io/metascrub/internal/cli"
	"github.com/metascrub-io/metascrub/internal/scrub"
)

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "List a file's embedded metadata without modifying it",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		path := args[0]

		inspection, err := scrub.Inspect(appFs, logger, path)
		if err != nil {
			cli.LogFatal(logger, "failed to inspect file", err, "path", path)
		}

		if jsonOutput {
			if err := printJSON(inspection); err != nil {
				cli.LogFatal(logger, "failed to render output", err)
			}

			return
		}

		rows := make([][]string, 0, len(inspection.Tags))
		for _, tag := range inspection.Tags {
			rows = append(rows, []string{tag})
		}

		if len(rows) == 0 {
			rows = append(rows, []string{"None"})
		}

		cli.PrintStyledTable([]cli.Section{
			{
				Title:   path,
				Headers: []string{"METADATA TAG"},
				Rows:    rows,
			},
		})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
