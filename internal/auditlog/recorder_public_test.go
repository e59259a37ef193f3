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

package auditlog_test

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/metascrub-io/metascrub/internal/auditlog"
	"github.com/metascrub-io/metascrub/internal/securestore"
)

type RecorderPublicTestSuite struct {
	suite.Suite

	appFs  afero.Fs
	logger *slog.Logger
	store  *securestore.Store
}

func (s *RecorderPublicTestSuite) SetupTest() {
	s.appFs = afero.NewMemMapFs()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = securestore.New(s.appFs, s.logger, securestore.CipherAESGCM)
}

func (s *RecorderPublicTestSuite) writeBytes(
	path string,
	size int,
) {
	err := afero.WriteFile(s.appFs, path, bytes.Repeat([]byte{'x'}, size), 0o644)
	s.Require().NoError(err)
}

func (s *RecorderPublicTestSuite) parseCSV(
	data []byte,
) [][]string {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	s.Require().NoError(err)

	return records
}

func (s *RecorderPublicTestSuite) readPlainLog(
	path string,
) [][]string {
	data, err := afero.ReadFile(s.appFs, path)
	s.Require().NoError(err)

	return s.parseCSV(data)
}

func (s *RecorderPublicTestSuite) TestNewValidatesName() {
	tests := []struct {
		name    string
		logName string
	}{
		{
			name:    "when path is empty",
			logName: "",
		},
		{
			name:    "when path is the filesystem root",
			logName: "/",
		},
		{
			name:    "when name contains a null byte",
			logName: "/logs/bad\x00name.csv",
		},
		{
			name:    "when name exceeds the length limit",
			logName: "/logs/" + strings.Repeat("a", 300) + ".csv",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := auditlog.New(
				s.appFs, s.logger, s.store, tc.logName, false, "", nil)

			s.Error(err)

			var verr *auditlog.ValidationError
			s.ErrorAs(err, &verr)
		})
	}
}

func (s *RecorderPublicTestSuite) TestNewCreatesHeaderOnlyFile() {
	_, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.csv", false, "", nil)
	s.Require().NoError(err)

	records := s.readPlainLog("/logs/audit.csv")
	s.Len(records, 1)
	s.Equal(auditlog.Header, records[0])

	// Construction over an existing file must not touch it.
	_, err = auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.csv", false, "", nil)
	s.Require().NoError(err)

	records = s.readPlainLog("/logs/audit.csv")
	s.Len(records, 1)
}

func (s *RecorderPublicTestSuite) TestAppendPlaintext() {
	s.writeBytes("/photos/orig.jpg", 1000)
	s.writeBytes("/photos/orig_clean.jpg", 800)

	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.csv", false, "", nil)
	s.Require().NoError(err)

	op := auditlog.Operation{
		OriginalPath:  "/photos/orig.jpg",
		NewPath:       "/photos/orig_clean.jpg",
		OperationType: "EXIF Removal",
		MetadataType:  "EXIF",
		RemovedTags:   []string{"Model", "GPSLatitude", "Make"},
		OriginalTags:  []string{"Model", "GPSLatitude", "Make"},
		RemainingTags: nil,
	}

	for range 3 {
		r.Append(op)
	}

	records := s.readPlainLog("/logs/audit.csv")
	s.Require().Len(records, 4)
	s.Equal(auditlog.Header, records[0])

	row := records[1]
	s.Require().Len(row, len(auditlog.Header))
	s.Equal("orig.jpg", row[1])
	s.Equal("orig_clean.jpg", row[2])
	s.Equal("EXIF Removal", row[3])
	s.Equal("GPSLatitude; Make; Model", row[5])
	s.Equal("1000", row[6])
	s.Equal("800", row[7])
	s.Equal("3", row[8])
	s.Equal("0", row[9])
	s.Equal("200", row[10])
	s.Equal("20.00%", row[11])
	s.Equal("None", row[18])
	s.Equal("Success", row[19])
}

func (s *RecorderPublicTestSuite) TestAppendStats() {
	tests := []struct {
		name        string
		origSize    int
		newSize     int
		wantBytes   int64
		wantPercent float64
	}{
		{
			name:        "when the file shrinks",
			origSize:    1000,
			newSize:     800,
			wantBytes:   200,
			wantPercent: 20.0,
		},
		{
			name:        "when the file grows reduction floors at zero",
			origSize:    500,
			newSize:     900,
			wantBytes:   0,
			wantPercent: 0,
		},
		{
			name:        "when the original is empty",
			origSize:    0,
			newSize:     0,
			wantBytes:   0,
			wantPercent: 0,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()

			s.writeBytes("/in.jpg", tc.origSize)
			s.writeBytes("/out.jpg", tc.newSize)

			r, err := auditlog.New(
				s.appFs, s.logger, s.store, "/logs/audit.csv", false, "", nil)
			s.Require().NoError(err)

			stats := r.Append(auditlog.Operation{
				OriginalPath:  "/in.jpg",
				NewPath:       "/out.jpg",
				OperationType: "EXIF Removal",
			})

			s.Equal(int64(tc.origSize), stats.OriginalSize)
			s.Equal(int64(tc.newSize), stats.NewSize)
			s.Equal(tc.wantBytes, stats.SizeReduction)
			s.InDelta(tc.wantPercent, stats.SizeReductionPercent, 0.001)
		})
	}
}

func (s *RecorderPublicTestSuite) TestAppendMissingFilesYieldZeroStats() {
	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.csv", false, "", nil)
	s.Require().NoError(err)

	stats := r.Append(auditlog.Operation{
		OriginalPath:  "/nope/in.jpg",
		NewPath:       "/nope/out.jpg",
		OperationType: "EXIF Removal",
	})

	s.Equal(int64(0), stats.OriginalSize)
	s.Equal(int64(0), stats.NewSize)
	s.Equal(int64(0), stats.SizeReduction)
	s.Equal(float64(0), stats.SizeReductionPercent)

	records := s.readPlainLog("/logs/audit.csv")
	s.Require().Len(records, 2)
	s.Equal("0", records[1][6])
	s.Equal("0", records[1][7])
}

func (s *RecorderPublicTestSuite) TestAppendConcurrent() {
	const writers = 10

	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.csv", false, "", nil)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			r.Append(auditlog.Operation{
				OriginalPath:  "/in.jpg",
				NewPath:       "/out.jpg",
				OperationType: "EXIF Removal",
			})
		}()
	}
	wg.Wait()

	records := s.readPlainLog("/logs/audit.csv")
	s.Require().Len(records, writers+1)

	for _, row := range records {
		s.Len(row, len(auditlog.Header))
	}
}

func (s *RecorderPublicTestSuite) TestAppendConcurrentEncrypted() {
	const writers = 8

	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.enc", true, "hunter2", nil)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			r.Append(auditlog.Operation{
				OriginalPath:  "/in.jpg",
				NewPath:       "/out.jpg",
				OperationType: "EXIF Removal",
			})
		}()
	}
	wg.Wait()

	// Every read-decrypt-append-encrypt-write cycle must land: no row
	// lost to a racing rewrite, no torn ciphertext.
	payload, err := s.store.DecryptFile("/logs/audit.enc", "hunter2")
	s.Require().NoError(err)

	records := s.parseCSV(payload)
	s.Require().Len(records, writers+1)
	s.Equal(auditlog.Header, records[0])

	for _, row := range records {
		s.Len(row, len(auditlog.Header))
	}
}

func (s *RecorderPublicTestSuite) TestAppendEncrypted() {
	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.enc", true, "hunter2", nil)
	s.Require().NoError(err)
	s.True(r.Encrypted())

	for range 2 {
		r.Append(auditlog.Operation{
			OriginalPath:  "/in.jpg",
			NewPath:       "/out.jpg",
			OperationType: "EXIF Removal",
		})
	}

	// The on-disk bytes must not leak the schema.
	raw, err := afero.ReadFile(s.appFs, "/logs/audit.enc")
	s.Require().NoError(err)
	s.NotContains(string(raw), "Timestamp")

	payload, err := s.store.DecryptFile("/logs/audit.enc", "hunter2")
	s.Require().NoError(err)

	records := s.parseCSV(payload)
	s.Require().Len(records, 3)
	s.Equal(auditlog.Header, records[0])
}

func (s *RecorderPublicTestSuite) TestAppendEncryptedCorruptStartsFresh() {
	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.enc", true, "hunter2", nil)
	s.Require().NoError(err)

	err = afero.WriteFile(
		s.appFs, "/logs/audit.enc", []byte("not an encrypted log"), 0o644)
	s.Require().NoError(err)

	r.Append(auditlog.Operation{
		OriginalPath:  "/in.jpg",
		NewPath:       "/out.jpg",
		OperationType: "EXIF Removal",
	})

	payload, err := s.store.DecryptFile("/logs/audit.enc", "hunter2")
	s.Require().NoError(err)

	records := s.parseCSV(payload)
	s.Require().Len(records, 2)
	s.Equal(auditlog.Header, records[0])
}

func (s *RecorderPublicTestSuite) TestAppendEncryptedWrongPasswordStartsFresh() {
	err := s.store.EncryptFile(
		"/logs/audit.enc", []byte("Timestamp\nold row\n"), "other")
	s.Require().NoError(err)

	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.enc", true, "mine", nil)
	s.Require().NoError(err)

	r.Append(auditlog.Operation{
		OriginalPath:  "/in.jpg",
		NewPath:       "/out.jpg",
		OperationType: "EXIF Removal",
	})

	payload, err := s.store.DecryptFile("/logs/audit.enc", "mine")
	s.Require().NoError(err)

	records := s.parseCSV(payload)
	s.Require().Len(records, 2)
	s.NotContains(string(payload), "old row")
}

func (s *RecorderPublicTestSuite) TestCapabilityFallback() {
	original := securestore.AvailableFunc()
	defer securestore.SetAvailableFunc(original)

	securestore.SetAvailableFunc(func() bool { return false })

	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.csv", true, "hunter2", nil)
	s.Require().NoError(err)
	s.False(r.Encrypted())

	r.Append(auditlog.Operation{
		OriginalPath:  "/in.jpg",
		NewPath:       "/out.jpg",
		OperationType: "EXIF Removal",
	})

	records := s.readPlainLog("/logs/audit.csv")
	s.Len(records, 2)
}

func (s *RecorderPublicTestSuite) TestPromptCalledOnce() {
	var calls int

	prompt := func() (string, error) {
		calls++

		return "prompted", nil
	}

	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.enc", true, "", prompt)
	s.Require().NoError(err)

	for range 3 {
		r.Append(auditlog.Operation{
			OriginalPath:  "/in.jpg",
			NewPath:       "/out.jpg",
			OperationType: "EXIF Removal",
		})
	}

	s.Equal(1, calls)

	payload, err := s.store.DecryptFile("/logs/audit.enc", "prompted")
	s.Require().NoError(err)

	records := s.parseCSV(payload)
	s.Len(records, 4)
}

func (s *RecorderPublicTestSuite) TestAppendNeverFails() {
	readOnly := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := securestore.New(readOnly, s.logger, securestore.CipherAESGCM)

	r, err := auditlog.New(
		readOnly, s.logger, store, "/logs/audit.csv", false, "", nil)
	s.Require().NoError(err)

	stats := r.Append(auditlog.Operation{
		OriginalPath:  "/in.jpg",
		NewPath:       "/out.jpg",
		OperationType: "EXIF Removal",
	})

	s.Equal(int64(0), stats.OriginalSize)
}

func (s *RecorderPublicTestSuite) TestTimestampsShareOneClock() {
	original := auditlog.TimeNowFunc()
	defer auditlog.SetTimeNowFunc(original)

	fixed := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	auditlog.SetTimeNowFunc(func() time.Time { return fixed })

	r, err := auditlog.New(
		s.appFs, s.logger, s.store, "/logs/audit.csv", false, "", nil)
	s.Require().NoError(err)

	r.Append(auditlog.Operation{
		OriginalPath:  "/in.jpg",
		NewPath:       "/out.jpg",
		OperationType: "EXIF Removal",
	})

	records := s.readPlainLog("/logs/audit.csv")
	s.Require().Len(records, 2)
	s.Equal("2026-01-15 10:30:00", records[1][0])
	s.Equal("2026-01-15 10:30:00", records[1][14])
}

func TestRecorderPublicTestSuite(t *testing.T) {
	suite.Run(t, new(RecorderPublicTestSuite))
}
