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

// Package pipe composes socket, fds and wire into the typed channel the
// rest of the library calls a Pipe: Send/Receive a value of a statically
// known type T, over a frame format of a 16-byte fingerprint, an 8-byte
// native-endian length, the payload, and one-or-more SCM_RIGHTS chunks
// with a 255-sentinel continuation byte.
//
// A Pipe holds its own mutex for the duration of each Send, Receive, or
// ReceiveDelayed/Decode pair, and asserts that the FD side-channel is empty
// at every send/receive boundary. That lock covers one operation only: a
// request/response exchange made of several operations is not atomic, so
// zygote.Handle holds its own mutex across a whole call on the parent side;
// the child main loop never shares a Pipe across goroutines to begin with.
package pipe
