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

package auditlog

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/metascrub-io/metascrub/internal/securestore"
)

// PromptFunc supplies a password interactively when an encrypted recorder
// was constructed without one.
type PromptFunc func() (string, error)

// Recorder owns one audit log file — its path and its encryption mode —
// for its lifetime. The derived key material lives only in memory.
type Recorder struct {
	appFs  afero.Fs
	logger *slog.Logger
	store  *securestore.Store
	path   string

	encrypted    bool
	password     string
	havePassword bool
	prompt       PromptFunc

	// mu serializes the entire read-decrypt-append-encrypt-write cycle.
	// It is the sole concurrency mechanism; see the package layout notes.
	mu sync.Mutex
}

// New creates a Recorder for path. The file name is validated first; a
// ValidationError here is the only construction failure that propagates.
// When encryption is requested but the AEAD capability is unavailable,
// the recorder falls back to plaintext with a warning. If the file is
// absent it is created with just the header row — deferred to the first
// append when encryption is on and no password was supplied yet.
func New(
	appFs afero.Fs,
	logger *slog.Logger,
	store *securestore.Store,
	path string,
	encrypted bool,
	password string,
	prompt PromptFunc,
) (*Recorder, error) {
	if err := validateLogName(filepath.Base(path)); err != nil {
		return nil, err
	}

	if encrypted && !securestore.Available() {
		logger.Warn(
			"encryption capability unavailable, falling back to plaintext log",
			slog.String("path", path),
		)
		encrypted = false
	}

	r := &Recorder{
		appFs:        appFs,
		logger:       logger,
		store:        store,
		path:         path,
		encrypted:    encrypted,
		password:     password,
		havePassword: password != "",
		prompt:       prompt,
	}

	r.initialize()

	return r, nil
}

// Path returns the log file path owned by this recorder.
func (r *Recorder) Path() string {
	return r.path
}

// Encrypted reports whether the recorder writes encrypted content.
func (r *Recorder) Encrypted() bool {
	return r.encrypted
}

// initialize creates the log file with a header row when absent. Errors
// here degrade to warnings; the first append recreates whatever is
// missing.
func (r *Recorder) initialize() {
	exists, err := afero.Exists(r.appFs, r.path)
	if err == nil && exists {
		return
	}

	if err := r.appFs.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		r.logger.Warn(
			"creating audit log directory failed",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)

		return
	}

	if !r.encrypted {
		if err := afero.WriteFile(r.appFs, r.path, encodeRows([][]string{Header}), 0o644); err != nil {
			r.logger.Warn(
				"creating audit log failed",
				slog.String("path", r.path),
				slog.String("error", err.Error()),
			)
		}

		return
	}

	if !r.havePassword {
		r.logger.Debug(
			"deferring encrypted log creation until first append",
			slog.String("path", r.path),
		)

		return
	}

	if err := r.store.EncryptFile(r.path, encodeRows([][]string{Header}), r.password); err != nil {
		r.logger.Warn(
			"creating encrypted audit log failed",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)
	}
}

// Append records one operation as a single row and returns its size
// statistics. It never returns an error: every logging failure degrades
// to a warning so the caller's file operation is never rolled back by a
// logging problem. Exactly one row is appended per call.
func (r *Recorder) Append(
	op Operation,
) Stats {
	row, stats := buildRow(r.appFs, op, timeNow())

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.encrypted {
		r.appendEncryptedLocked(row)
	} else {
		r.appendPlainLocked(row)
	}

	return stats
}

// appendPlainLocked appends one CSV row to the plaintext log.
func (r *Recorder) appendPlainLocked(
	row []string,
) {
	f, err := r.appFs.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.logger.Warn(
			"audit log append failed",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)

		return
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	_ = w.Write(row)
	w.Flush()

	if err := w.Error(); err != nil {
		r.logger.Warn(
			"audit log append failed",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)
	}
}

// appendEncryptedLocked runs one whole read-decrypt-append-encrypt-write
// cycle. Undecryptable existing content is never merged: the log restarts
// from a fresh header and the loss is warned about.
func (r *Recorder) appendEncryptedLocked(
	row []string,
) {
	password, ok := r.sessionPasswordLocked()
	if !ok {
		return
	}

	var payload []byte

	exists, err := afero.Exists(r.appFs, r.path)
	if err == nil && exists {
		decrypted, err := r.store.DecryptFile(r.path, password)
		if err != nil {
			r.logger.Warn(
				"could not decrypt existing audit log, starting fresh; prior entries are lost",
				slog.String("path", r.path),
				slog.String("error", err.Error()),
			)
		} else {
			payload = decrypted
		}
	}

	if len(payload) == 0 {
		payload = encodeRows([][]string{Header})
	}

	if payload[len(payload)-1] != '\n' {
		payload = append(payload, '\n')
	}

	payload = append(payload, encodeRows([][]string{row})...)

	if err := r.store.EncryptFile(r.path, payload, password); err != nil {
		r.logger.Warn(
			"audit log write failed",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)
	}
}

// sessionPasswordLocked returns the session password, prompting once via
// the injected PromptFunc on first use. A missing password drops the
// entry with a warning rather than failing the caller.
func (r *Recorder) sessionPasswordLocked() (string, bool) {
	if r.havePassword {
		return r.password, true
	}

	if r.prompt == nil {
		r.logger.Warn(
			"no password available for encrypted audit log, entry dropped",
			slog.String("path", r.path),
		)

		return "", false
	}

	password, err := r.prompt()
	if err != nil {
		r.logger.Warn(
			"password prompt failed, entry dropped",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)

		return "", false
	}

	r.password = password
	r.havePassword = true

	return password, true
}

// encodeRows serializes rows as CSV lines.
func encodeRows(
	rows [][]string,
) []byte {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()

	return buf.Bytes()
}
