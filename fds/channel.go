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

package fds

import "fmt"

// Channel is the ordered, indexed buffer of raw file descriptors a single
// serialize/deserialize pass stages its transfers through. It is not safe
// for concurrent use; callers scope one Channel per Pipe and rely on the
// Pipe's mutex for exclusivity.
type Channel struct {
	buf []int
}

// NewChannel returns an empty Channel.
func NewChannel() *Channel {
	return &Channel{}
}

// Push appends fd to the buffer and returns its index, to be written into
// the serialized stream in place of the descriptor itself.
func (c *Channel) Push(fd int) int {
	c.buf = append(c.buf, fd)
	return len(c.buf) - 1
}

// TakeAt removes and returns the descriptor previously staged at idx. It is
// only valid to take each index once; doing so is the deserializer's job as
// it walks the same field order the serializer used.
func (c *Channel) TakeAt(idx int) (int, bool) {
	if idx < 0 || idx >= len(c.buf) || c.buf[idx] == takenSentinel {
		return 0, false
	}
	fd := c.buf[idx]
	c.buf[idx] = takenSentinel
	return fd, true
}

// takenSentinel marks a slot already claimed by TakeAt so a second take at
// the same index is detectable instead of silently returning a stale fd.
const takenSentinel = -1

// Swap atomically replaces the buffer with next, returning the previous
// contents. This is how outgoing descriptors gathered during a Send's
// serialize step are harvested, and how incoming descriptors delivered by
// the framed socket are staged before a Receive's deserialize step.
func (c *Channel) Swap(next []int) []int {
	prev := c.buf
	c.buf = next
	return prev
}

// Len reports how many descriptors remain staged (including already-taken
// slots, which still occupy a position).
func (c *Channel) Len() int {
	return len(c.buf)
}

// AssertEmpty enforces the side-channel boundary invariant: a non-empty
// channel at a send/receive boundary means the serialized schema and the
// value being encoded or decoded disagree about how many descriptors are
// involved. The original treats this as a panic; callers here are expected
// to recover it into an errors.Io failure (see pipe.Pipe).
func (c *Channel) AssertEmpty() {
	for _, fd := range c.buf {
		if fd != takenSentinel {
			panic(fmt.Sprintf("fds: side-channel not empty at boundary: %d descriptor(s) left", remaining(c.buf)))
		}
	}
	c.buf = c.buf[:0]
}

func remaining(buf []int) int {
	n := 0
	for _, fd := range buf {
		if fd != takenSentinel {
			n++
		}
	}
	return n
}
