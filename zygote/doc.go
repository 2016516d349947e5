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

// Package zygote ties process, pipe, wire and fds together into the public
// surface: a parent-side Handle exposing Run/TryRun/Spawn/SpawnSibling, and
// a child-side main loop that dispatches calls by code address and
// survives task panics.
//
// Dispatch relies on the child being a clone of the parent's exact memory
// image (never a re-exec): a function pointer captured in the parent names
// the same compiled code in the child, so TryRun only has to transmit two
// pointer-sized addresses - the target function's and a per-<Args, Ret>
// trampoline's - rather than marshalling the call itself. See
// trampoline.go for how a bare code address is turned back into a callable
// Go func value, and DESIGN.md for the caveats that come with it.
package zygote
