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

	"github.com/metascrub-io/metascrub/internal/auditlog"
	"github.com/metascrub-io/metascrub/internal/cli"
)

// logInitCmd represents the log init command.
var logInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the audit log with its header row",
	Long: `Create the audit log file up front instead of on the first scrub. For
an encrypted log the password is prompted for twice until both entries
match, unless one is already configured.
`,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := newSecureStore()
		if err != nil {
			cli.LogFatal(logger, "failed to set up encryption", err)
		}

		password := appConfig.Audit.Password
		if appConfig.Audit.Encrypted && password == "" {
			password, err = cli.ConfirmPassword()
			if err != nil {
				cli.LogFatal(logger, "failed to read password", err)
			}
		}

		recorder, err := auditlog.New(
			appFs,
			logger,
			store,
			resolveLogPath(),
			appConfig.Audit.Encrypted,
			password,
			nil,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to create audit log", err)
		}

		logger.Info(
			"audit log ready",
			slog.String("path", recorder.Path()),
			slog.Bool("encrypted", recorder.Encrypted()),
		)
	},
}

func init() {
	logCmd.AddCommand(logInitCmd)
}
