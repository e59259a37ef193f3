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
	"encoding/json"
	"fmt"
	"time"

	"github.com/metascrub-io/metascrub/internal/auditlog"
	"github.com/metascrub-io/metascrub/internal/cli"
	"github.com/metascrub-io/metascrub/internal/scrub"
	"github.com/metascrub-io/metascrub/internal/securestore"
)

// newSecureStore builds the securestore from the configured cipher.
func newSecureStore() (*securestore.Store, error) {
	cipher, err := securestore.ParseCipher(appConfig.Audit.Cipher)
	if err != nil {
		return nil, err
	}

	return securestore.New(appFs, logger, cipher), nil
}

// resolveLogPath returns the configured audit log path, generating a
// dated name when none is configured. Encrypted logs always carry the
// .enc extension.
func resolveLogPath() string {
	path := appConfig.Audit.Path
	if path == "" {
		path = auditlog.DefaultLogName(appFs, logDir(), time.Now())
	}

	if appConfig.Audit.Encrypted {
		path = auditlog.EncryptedName(path)
	}

	return path
}

// logDir is the directory generated log names land in: the scrub output
// directory when configured, the working directory otherwise.
func logDir() string {
	if appConfig.Scrub.OutputDir != "" {
		return appConfig.Scrub.OutputDir
	}

	return "."
}

// newRecorder builds the audit log recorder, or nil when audit logging
// is disabled. The interactive password prompt is wired in as the
// fallback for encrypted logs with no configured password.
func newRecorder() (*auditlog.Recorder, error) {
	if !appConfig.Audit.Enabled {
		return nil, nil
	}

	store, err := newSecureStore()
	if err != nil {
		return nil, err
	}

	return auditlog.New(
		appFs,
		logger,
		store,
		resolveLogPath(),
		appConfig.Audit.Encrypted,
		appConfig.Audit.Password,
		func() (string, error) {
			return cli.ReadPassword("Password for encrypted audit log: ")
		},
	)
}

// newScrubber builds the end-to-end scrubber with its recorder.
func newScrubber() (*scrub.Scrubber, error) {
	recorder, err := newRecorder()
	if err != nil {
		return nil, err
	}

	return scrub.New(appFs, logger, recorder, appConfig.Scrub.OutputDir), nil
}

// printJSON renders v as indented JSON on stdout.
func printJSON(
	v any,
) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	fmt.Println(string(data))

	return nil
}
