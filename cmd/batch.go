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
	"context"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metascrub-io/metascrub/internal/cli"
	"github.com/metascrub-io/metascrub/internal/scrub"
	"github.com/metascrub-io/metascrub/internal/scrub/worker"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Strip metadata from every supported file in a directory",
	Long: `Strip metadata from every supported file directly under DIR using a
bounded worker pool. The pool size defaults to min(CPU count, 4, file
count). With --schedule the batch repeats on a cron expression until
interrupted.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		dir := args[0]
		schedule, _ := cmd.Flags().GetString("schedule")

		scrubber, err := newScrubber()
		if err != nil {
			cli.LogFatal(logger, "failed to set up scrubber", err)
		}

		pool := worker.New(logger, scrubber, appConfig.Scrub.Workers)

		if schedule == "" {
			runBatch(ctx, pool, dir)

			return
		}

		c := cron.New()

		_, err = c.AddFunc(schedule, func() {
			runBatch(ctx, pool, dir)
		})
		if err != nil {
			cli.LogFatal(logger, "invalid schedule", err, "schedule", schedule)
		}

		logger.Info("scheduling batch runs", slog.String("schedule", schedule))

		cli.RunSchedule(ctx, c)
	},
}

// runBatch scrubs every supported file directly under dir.
func runBatch(
	ctx context.Context,
	pool *worker.Pool,
	dir string,
) {
	paths, err := supportedFiles(dir)
	if err != nil {
		logger.Error(
			"failed to list directory",
			slog.String("dir", dir),
			slog.String("error", err.Error()),
		)

		return
	}

	if len(paths) == 0 {
		logger.Info("no supported files found", slog.String("dir", dir))

		return
	}

	summary, err := pool.Run(ctx, paths)
	if err != nil {
		logger.Warn("batch interrupted", slog.String("error", err.Error()))
	}

	if jsonOutput {
		_ = printJSON(summary)

		return
	}

	cli.PrintKV(
		"Processed", formatCount(summary.Processed),
		"Failed", formatCount(summary.Failed),
		"Saved", formatBytes(summary.BytesSaved),
	)
}

// supportedFiles lists the scrub-supported files directly under dir,
// sorted by name for a deterministic submission order.
func supportedFiles(
	dir string,
) ([]string, error) {
	infos, err := afero.ReadDir(appFs, dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(infos))

	for _, info := range infos {
		if info.IsDir() || !scrub.Supported(info.Name()) {
			continue
		}

		paths = append(paths, filepath.Join(dir, info.Name()))
	}

	sort.Strings(paths)

	return paths, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.PersistentFlags().
		IntP("workers", "w", 0, "Worker pool size (0 sizes from the host CPUs)")
	batchCmd.PersistentFlags().
		StringP("schedule", "s", "", "Cron expression for repeating runs")

	_ = viper.BindPFlag("scrub.workers", batchCmd.PersistentFlags().Lookup("workers"))
}
