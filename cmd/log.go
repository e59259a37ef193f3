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

	"github.com/metascrub-io/metascrub/internal/auditlog"
	"github.com/metascrub-io/metascrub/internal/cli"
)

// logCmd represents the log command.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage the metadata change audit log",
}

func init() {
	rootCmd.AddCommand(logCmd)
}

// loadLogTable decrypts (or reads) the audit log and parses it for the
// view and export commands. Encrypted logs prompt for the password when
// none is configured.
func loadLogTable() (*auditlog.Table, error) {
	store, err := newSecureStore()
	if err != nil {
		return nil, err
	}

	password := appConfig.Audit.Password
	if appConfig.Audit.Encrypted && password == "" {
		password, err = cli.ReadPassword("Password for encrypted audit log: ")
		if err != nil {
			return nil, err
		}
	}

	return auditlog.Load(
		appFs,
		store,
		resolveLogPath(),
		appConfig.Audit.Encrypted,
		password,
	)
}
