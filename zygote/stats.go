/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package zygote

import (
	gopsprocess "github.com/shirou/gopsutil/process"

	"github.com/nabbar/zygote/errors"
)

// Stats is a snapshot of the child process's resource usage, for a caller
// who wants to notice a leaking or runaway child without this library
// auto-acting on it (the "no automatic restart/supervision" non-goal still
// holds - this is read-only introspection).
type Stats struct {
	RSSBytes  uint64
	OpenFDs   int32
	NumThread int32
}

// Stats reads the child's current resource usage via gopsutil, the same
// library nabbar-golib uses for host/process introspection elsewhere in its
// corpus.
func (z *Handle) Stats() (Stats, error) {
	p, err := gopsprocess.NewProcess(int32(z.Pid()))
	if err != nil {
		return Stats{}, errors.New(errors.Io, "zygote: gopsutil process lookup failed", err)
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return Stats{}, errors.New(errors.Io, "zygote: gopsutil memory info failed", err)
	}

	fds, err := p.NumFDs()
	if err != nil {
		return Stats{}, errors.New(errors.Io, "zygote: gopsutil fd count failed", err)
	}

	threads, err := p.NumThreads()
	if err != nil {
		return Stats{}, errors.New(errors.Io, "zygote: gopsutil thread count failed", err)
	}

	return Stats{RSSBytes: mem.RSS, OpenFDs: fds, NumThread: threads}, nil
}
