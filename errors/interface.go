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

// Kind is the top-level error taxonomy every failure surfaced by this
// module belongs to. Exactly one Kind applies per failure.
type Kind uint8

const (
	// Io covers any socket read/write failure, including a peer that has
	// gone away (UnexpectedEOF / broken pipe).
	Io Kind = iota
	// Decode covers deserializer failures, including a fingerprint
	// mismatch between the expected and received wire type.
	Decode
	// Encode covers serializer refusal of a value.
	Encode
	// Wire covers a failure that originated inside the child: a task
	// panic, a task-returned error, or a decode failure inside the
	// child's own trampoline.
	Wire
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case Decode:
		return "decode"
	case Encode:
		return "encode"
	case Wire:
		return "wire"
	default:
		return "unknown"
	}
}

// Error is the interface every error value returned across this module's
// public API satisfies. It narrows nabbar-golib's much larger CodeError
// surface (status codes, i18n messages, HTTP mapping) down to the handful
// of things a zygote caller actually needs: which Kind the failure is, the
// message, an optional captured trace, and chain-walking via errors.Is /
// errors.As / errors.Unwrap.
type Error interface {
	error
	Kind() Kind
	Trace() string
	Unwrap() error
}

type ers struct {
	kind  Kind
	msg   string
	trace string
	cause error
}

func (e *ers) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *ers) Kind() Kind { return e.kind }
func (e *ers) Trace() string { return e.trace }
func (e *ers) Unwrap() error { return e.cause }

// New builds an Error of the given Kind carrying msg and a freshly captured
// trace, wrapping cause (which may be nil).
func New(kind Kind, msg string, cause error) Error {
	return &ers{kind: kind, msg: msg, trace: captureTrace(1), cause: cause}
}

// Newf is New with fmt-style message formatting.
func Newf(kind Kind, cause error, format string, args ...any) Error {
	return New(kind, fmt.Sprintf(format, args...), cause)
}

// Is reports whether the first Error found in err's Unwrap chain (err
// itself included) has the given Kind. Errors further down the chain are
// not consulted: the outermost Error's Kind is the failure's Kind.
func Is(err error, kind Kind) bool {
	var e Error
	if goerr.As(err, &e) {
		return e.Kind() == kind
	}
	return false
}

// As is a thin re-export of errors.As so callers need only import this
// package when working with zygote errors.
func As(err error, target any) bool {
	return goerr.As(err, target)
}
