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

// Package sys probes host facts used for sizing decisions.
package sys

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// cpuCounts is the logical core probe. Override in tests.
var cpuCounts = cpu.Counts

// CPUCountsFunc returns the current core probe for test inspection.
func CPUCountsFunc() func(bool) (int, error) {
	return cpuCounts
}

// SetCPUCountsFunc replaces the core probe for testing.
func SetCPUCountsFunc(
	fn func(bool) (int, error),
) {
	cpuCounts = fn
}

// CPUCount returns the logical CPU count, falling back to the Go runtime
// when the probe fails.
func CPUCount() int {
	n, err := cpuCounts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}

	return n
}
