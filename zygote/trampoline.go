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
	"unsafe"

	"github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/pipe"
)

// funcval mirrors the internal representation of a Go function value for a
// non-closure, top-level function: a single pointer to the function's
// entry point. reflect.Value.Pointer() returns exactly that entry point for
// a func-kind value, so wrapping an address back into this shape and
// reinterpreting its address as the target func type reconstructs a
// callable value from nothing but the address - the Go analogue of a raw C
// function-pointer cast. This only holds for functions with no captured
// free variables (methods with no receiver capture, package-level funcs,
// or function-literal constants): TryRun/TryRunE document that f must be
// one.
type funcval struct {
	fn uintptr
}

// callFn reconstructs addr as a func(Args) Ret and invokes it. Unsafe in
// the literal sense: it trusts that addr was produced by
// reflect.ValueOf(f).Pointer() on a value of exactly this shape, in the
// same binary (clone guarantees an identical code layout between parent
// and child; the fingerprint check on the surrounding frames guards
// against a same-process Args/Ret mismatch, not a cross-binary one - see
// DESIGN.md).
func callFn[Args any, Ret any](addr uintptr, args Args) Ret {
	fv := funcval{fn: addr}
	fn := *(*func(Args) Ret)(unsafe.Pointer(&fv))
	return fn(args)
}

// callFnE is callFn for the TryRunE overload, where the target itself
// returns (Ret, error) instead of panicking on failure.
func callFnE[Args any, Ret any](addr uintptr, args Args) (Ret, error) {
	fv := funcval{fn: addr}
	fn := *(*func(Args) (Ret, error))(unsafe.Pointer(&fv))
	return fn(args)
}

// runner is the per-<Args, Ret> trampoline for TryRun: the parent sends
// its address alongside the target function's, naming a
// monomorphisation both sides agree on by construction (the parent only
// ever refers to runner[Args, Ret] through TryRun's own generic
// instantiation). It reads the delayed argument frame, decodes and invokes
// the target function under a single panic guard, and always sends back an
// outcome[Ret] - a decode failure and a task panic both surface identically
// to the caller as a Wire error.
func runner[Args any, Ret any](fAddr uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			trace := errors.CaptureTrace()
			we := errors.FromPanic(r, trace)
			err = pipe.Send(childPipe, outcome[Ret]{Err: we})
		}
	}()

	frame, ferr := childPipe.ReceiveDelayed()
	if ferr != nil {
		return ferr
	}

	args, derr := pipe.Decode[Args](frame)
	if derr != nil {
		we := errors.FromError(derr)
		return pipe.Send(childPipe, outcome[Ret]{Err: we})
	}

	ret := callFn[Args, Ret](uintptr(fAddr), args)
	return pipe.Send(childPipe, outcome[Ret]{Value: ret})
}

// runnerE is runner's counterpart for TryRunE: the target function returns
// (Ret, error) directly, so a returned error is carried through as a Wire
// failure without ever panicking.
func runnerE[Args any, Ret any](fAddr uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			trace := errors.CaptureTrace()
			we := errors.FromPanic(r, trace)
			err = pipe.Send(childPipe, outcome[Ret]{Err: we})
		}
	}()

	frame, ferr := childPipe.ReceiveDelayed()
	if ferr != nil {
		return ferr
	}

	args, derr := pipe.Decode[Args](frame)
	if derr != nil {
		we := errors.FromError(derr)
		return pipe.Send(childPipe, outcome[Ret]{Err: we})
	}

	ret, callErr := callFnE[Args, Ret](uintptr(fAddr), args)
	if callErr != nil {
		we := errors.FromError(callErr)
		return pipe.Send(childPipe, outcome[Ret]{Err: we})
	}
	return pipe.Send(childPipe, outcome[Ret]{Value: ret})
}
