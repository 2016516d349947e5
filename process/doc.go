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

// Package process clones the current process without re-executing it,
// choosing between a child-of-caller and a sibling-of-caller topology, and
// returns a Handle usable for signalling and reaping.
//
// clone3 is tried first: it both creates the process and lets the kernel
// pick the exit signal and parent in one syscall, and the returned pid maps
// directly onto pidfd_open. On kernels old enough to lack clone3 (ENOSYS),
// New falls back to the raw clone(2) syscall with a nil child stack, which
// the kernel services identically to fork(2) - a COW duplicate of the
// caller's stack, not the glibc clone() wrapper's caller-supplied-stack
// form, so no setjmp/longjmp continuation buffer is needed on the Go side
// (see DESIGN.md for the reasoning behind skipping the assembly
// continuation buffer entirely).
//
// Both paths require the caller to have locked the current goroutine to its
// OS thread (runtime.LockOSThread) before calling New: the clone only
// duplicates the calling thread, and the child process inherits none of the
// other OS threads backing the Go scheduler, GC, or sysmon. See
// zygote.Init's doc comment for the resulting "must happen before the host
// goes multi-threaded" constraint.
package process
