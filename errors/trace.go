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
	"runtime"
	"strconv"
	"strings"
)

const maxTraceDepth = 32

// CaptureTrace renders the caller's current stack the same way New does.
// Called from inside a deferred recover(), it captures the stack as it
// stood at the panic site: Go keeps a panicking goroutine's frames intact
// until each deferred call in that frame returns, so this still sees the
// original call chain rather than just the defer's own frame.
func CaptureTrace() string {
	return captureTrace(1)
}

// captureTrace walks the call stack starting two frames above its own caller
// (skipping this function and the constructor that called it) and renders it
// as one string, one "file:line func" entry per line. It mirrors the frame
// walk nabbar-golib's errors package performs via runtime.Callers plus
// runtime.CallersFrames, trimmed to the handful of fields a WireError needs.
func captureTrace(skip int) string {
	pc := make([]uintptr, maxTraceDepth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pc[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(frame.File)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(frame.Line))
			b.WriteByte(' ')
			b.WriteString(frame.Function)
		}
		if !more || !frameInPackage(frame) {
			break
		}
	}
	return b.String()
}

// frameInPackage reports whether a frame is still worth descending into:
// stdlib runtime/testing frames terminate the walk early so a trace does not
// trail off into goroutine bootstrap noise. The runtime's panic-dispatch
// frames (gopanic, goPanic*, panic*, sigpanic) are walked through, so a
// trace taken inside a deferred recover continues to the panic site.
func frameInPackage(frame runtime.Frame) bool {
	switch {
	case strings.HasPrefix(frame.Function, "runtime.gopanic"),
		strings.HasPrefix(frame.Function, "runtime.goPanic"),
		strings.HasPrefix(frame.Function, "runtime.panic"),
		frame.Function == "runtime.sigpanic":
		return true
	case strings.HasPrefix(frame.Function, "runtime."):
		return false
	case strings.HasPrefix(frame.Function, "testing."):
		return false
	default:
		return true
	}
}
