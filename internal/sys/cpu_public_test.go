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

package sys_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/metascrub-io/metascrub/internal/sys"
)

type CPUPublicTestSuite struct {
	suite.Suite
}

func (s *CPUPublicTestSuite) TestCPUCount() {
	original := sys.CPUCountsFunc()
	defer sys.SetCPUCountsFunc(original)

	sys.SetCPUCountsFunc(func(bool) (int, error) {
		return 12, nil
	})

	s.Equal(12, sys.CPUCount())
}

func (s *CPUPublicTestSuite) TestCPUCountProbeError() {
	original := sys.CPUCountsFunc()
	defer sys.SetCPUCountsFunc(original)

	sys.SetCPUCountsFunc(func(bool) (int, error) {
		return 0, errors.New("probe failed")
	})

	s.Equal(runtime.NumCPU(), sys.CPUCount())
}

func (s *CPUPublicTestSuite) TestCPUCountZeroResult() {
	original := sys.CPUCountsFunc()
	defer sys.SetCPUCountsFunc(original)

	sys.SetCPUCountsFunc(func(bool) (int, error) {
		return 0, nil
	})

	s.Equal(runtime.NumCPU(), sys.CPUCount())
}

func TestCPUPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CPUPublicTestSuite))
}
