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

// Package fds implements the FD side-channel: an ordered buffer of raw file
// descriptors that a serializer pushes into while encoding and a
// deserializer drains while decoding, plus FD, the transferable descriptor
// wrapper that splices a descriptor's index into the serialized byte stream
// in its place.
//
// The original design scopes the buffer thread-local, because each task in
// the source runs on exactly one OS thread for its lifetime. This package
// instead scopes one Channel to one Pipe: a Pipe is used by exactly one
// goroutine for the duration of a single Send or Receive (enforced by the
// Pipe's own mutex), which gives the identical exclusivity guarantee without
// reaching for a goroutine-local hack the language does not really offer.
package fds
