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

package errors

import (
	goerr "errors"
	"fmt"
)

// WireError is the serializable error tree that crosses a pipe: it is the
// payload of a Wire-kind Error. Unlike Error it carries no live cause chain
// (an *os.File-backed trace or a non-comparable error value cannot survive
// gob/msgpack), only plain strings, so it is itself wire-capable and can be
// sent back from a child that panicked or returned an error.
type WireError struct {
	Description string     `codec:"description"`
	Source      *WireError `codec:"source,omitempty"`
	Backtrace   *string    `codec:"backtrace,omitempty"`
}

// Error implements error so a WireError can be wrapped by New(Wire, ...) and
// matched with errors.Is / errors.As like any other error.
func (w *WireError) Error() string {
	if w == nil {
		return ""
	}
	if w.Source != nil {
		return w.Description + ": " + w.Source.Error()
	}
	return w.Description
}

// Unwrap exposes the Source chain to errors.Is / errors.As.
func (w *WireError) Unwrap() error {
	if w == nil || w.Source == nil {
		return nil
	}
	return w.Source
}

// FromString builds a leaf WireError with no cause, capturing the current
// stack as its backtrace.
func FromString(msg string) *WireError {
	bt := captureTrace(1)
	return &WireError{Description: msg, Backtrace: &bt}
}

// FromPanic builds a WireError from a recovered panic value. It is the
// child-side counterpart to the original's process-wide panic hook: called
// from inside a deferred recover(), with the backtrace captured by the
// caller via CaptureTrace in that same deferred function, while the
// panicking frames are still on the stack (see zygote/trampoline.go).
func FromPanic(recovered any, backtrace string) *WireError {
	msg := fmt.Sprintf("%v", recovered)
	return &WireError{Description: msg, Backtrace: &backtrace}
}

// FromError walks err's errors.Unwrap chain into a WireError tree, mirroring
// how the Rust original walks std::error::Error::source. Only Unwrap() error
// is followed: Source() or Cause() methods are not consulted, and for an
// error whose Unwrap returns []error the chain ends there.
func FromError(err error) *WireError {
	if err == nil {
		return nil
	}
	w := &WireError{Description: err.Error()}
	if bt := traceOf(err); bt != "" {
		w.Backtrace = &bt
	}
	if cause := goerr.Unwrap(err); cause != nil {
		w.Source = FromError(cause)
	}
	return w
}

func traceOf(err error) string {
	var e Error
	if goerr.As(err, &e) {
		return e.Trace()
	}
	return ""
}

// AsError wraps a *WireError received from the child into a top-level
// Error of Kind Wire, ready to be returned from TryRun.
func AsError(w *WireError) Error {
	if w == nil {
		return nil
	}
	return &ers{kind: Wire, msg: w.Description, trace: w.traceString(), cause: w}
}

func (w *WireError) traceString() string {
	if w == nil || w.Backtrace == nil {
		return ""
	}
	return *w.Backtrace
}
