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
	"runtime"
	"sync"

	"github.com/nabbar/zygote/zlog"
)

var (
	globalOnce   sync.Once
	globalHandle *Handle
	globalErr    error
)

// Init lazily creates the process-wide zygote handle. Cheap and idempotent:
// calling it more than once, or not calling it at all before the first
// Global() call, has no effect beyond the first.
//
// Init (or the first Global() call) MUST happen before the host process
// becomes multi-threaded: process creation clones only the calling OS
// thread, so other goroutines' thread-bound libc or cgo state would not
// exist in the child. This package cannot enforce that from inside Go - it
// can only warn: a NumGoroutine() reading above 1 at Init time is a
// best-effort, not authoritative, sign that other goroutines may already be
// runnable on other OS threads.
func Init() {
	Global()
}

// Global returns the process-wide zygote handle, creating it on first
// access.
func Global() (*Handle, error) {
	globalOnce.Do(func() {
		if n := runtime.NumGoroutine(); n > 1 {
			// Best-effort only; see Init's doc comment. A single extra
			// goroutine is common (the runtime's own sysmon-adjacent
			// goroutines do not count here, but a caller's own background
			// workers would) so this is logged, not treated as an error.
			currentLogger().Warning("zygote initialized with multiple goroutines already running; forked children will not see threads other than the caller's", zlog.NewFields().Add("goroutines", n))
		}
		globalHandle, globalErr = New()
	})
	return globalHandle, globalErr
}
