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
	"sync"
	"sync/atomic"

	"github.com/nabbar/zygote/zlog"
)

var (
	logMu  sync.RWMutex
	logger = zlog.New(nil)

	// childLoopLogEnabled gates exitChild's diagnostic log line; see
	// EnableChildDiagnostics.
	childLoopLogEnabled atomic.Bool
)

// SetLogger replaces the package-wide diagnostics sink every zygote
// Handle logs through (child created, a failed call, a child closed, the
// multi-goroutine Init warning). Safe to call at any time; takes effect
// for subsequent log calls only.
func SetLogger(l zlog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l != nil {
		logger = l
	}
}

func currentLogger() zlog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// EnableChildDiagnostics turns on the child loop's own exit-cause logging.
// Off by default: a child that is about to exit logs on a best-effort
// basis, and the extra write is only useful when chasing a specific bug
// interactively.
func EnableChildDiagnostics(enabled bool) {
	childLoopLogEnabled.Store(enabled)
}
