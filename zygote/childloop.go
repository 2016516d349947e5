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
	"strings"
	"syscall"
	"unsafe"

	goerrors "errors"

	"golang.org/x/sys/unix"

	"github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/pipe"
	"github.com/nabbar/zygote/zlog"
)

// childPipe is the single Pipe the child main loop and every trampoline
// invocation run on. It is a package-level variable rather than something
// threaded explicitly through every call because the child is, by
// construction, strictly single-threaded between receiving a dispatch
// record and sending its response - the same reasoning the reference Rust
// implementation gives for its `static mut PIPE` with no mutex.
var childPipe *pipe.Pipe

// runChildLoop is the child-side dispatcher: read a
// (function address, trampoline address) pair, cast the trampoline address
// to a func(uint64) error and invoke it, forever, until an error ends the
// loop and exits the process.
func runChildLoop(p *pipe.Pipe) {
	childPipe = p

	for {
		addrs, err := pipe.Receive[addrPair](p)
		if err != nil {
			exitChild(err)
		}
		if err := dispatch(addrs); err != nil {
			exitChild(err)
		}
	}
}

// dispatch reconstructs the trampoline's code address as a
// func(uint64) error and invokes it. The trampoline signature is fixed
// (unlike the task's own Args/Ret, which only the trampoline itself knows
// about), so every runner[Args, Ret] and runnerE[Args, Ret] instantiation
// can be dispatched through the same cast here.
func dispatch(addrs addrPair) error {
	fv := funcval{fn: uintptr(addrs.TrampolineAddr)}
	fn := *(*func(uint64) error)(unsafe.Pointer(&fv))
	return fn(addrs.FuncAddr)
}

// exitChild implements exit policy: a clean exit(0) when the
// parent has gone away (the only error a correctly functioning loop should
// ever see on its own read), exit(1) for anything else - a framing bug, a
// fingerprint mismatch the parent should never have caused, etc.
func exitChild(err error) {
	if childLoopLogEnabled.Load() {
		currentLogger().Debug("child loop exiting", zlog.NewFields().Add("error", err.Error()))
	}
	if isPeerGone(err) {
		unix.Exit(0)
	}
	unix.Exit(1)
}

func isPeerGone(err error) bool {
	if !errors.Is(err, errors.Io) {
		return false
	}
	if goerrors.Is(err, syscall.EPIPE) || goerrors.Is(err, syscall.ECONNRESET) {
		return true
	}
	return strings.Contains(err.Error(), "unexpected EOF") || strings.Contains(err.Error(), "peer closed")
}
