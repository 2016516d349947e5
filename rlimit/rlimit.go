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

package rlimit

import (
	"golang.org/x/sys/unix"

	"github.com/nabbar/zygote/errors"
)

// NumFileDescriptor returns the process's current and maximum
// (RLIMIT_NOFILE) open file descriptor limits.
func NumFileDescriptor() (current, max uint64, err error) {
	var rl unix.Rlimit
	if e := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); e != nil {
		return 0, 0, errors.New(errors.Io, "rlimit: getrlimit failed", e)
	}
	return rl.Cur, rl.Max, nil
}

// RaiseFileDescriptor attempts to raise the soft RLIMIT_NOFILE limit to
// target, capped at the hard limit. It returns the limit actually in effect
// after the call. Unlike nabbar-golib's SystemFileDescriptor, it never tries
// to raise the hard limit itself (that requires CAP_SYS_RESOURCE and is out
// of scope for a library that does not assume root).
func RaiseFileDescriptor(target uint64) (current uint64, err error) {
	var rl unix.Rlimit
	if e := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); e != nil {
		return 0, errors.New(errors.Io, "rlimit: getrlimit failed", e)
	}
	if rl.Cur >= target {
		return rl.Cur, nil
	}

	want := target
	if want > rl.Max {
		want = rl.Max
	}

	next := unix.Rlimit{Cur: want, Max: rl.Max}
	if e := unix.Setrlimit(unix.RLIMIT_NOFILE, &next); e != nil {
		return rl.Cur, errors.New(errors.Io, "rlimit: setrlimit failed", e)
	}
	return want, nil
}
