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

package socket

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/nabbar/zygote/errors"
)

// Socket wraps one end of an AF_UNIX/SOCK_STREAM socket pair. It is not
// safe for concurrent use from multiple goroutines; pipe.Pipe is
// responsible for serializing access via its own mutex.
type Socket struct {
	mu     sync.Mutex
	fd     int
	closed bool
	queue  []int
}

// Pair creates two connected framed sockets via socketpair(2).
func Pair() (a *Socket, b *Socket, err error) {
	fds, e := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if e != nil {
		return nil, nil, errors.New(errors.Io, "socket: socketpair failed", e)
	}
	return &Socket{fd: fds[0]}, &Socket{fd: fds[1]}, nil
}

// FromFD wraps an already-owned raw descriptor, e.g. the child's end of a
// pair inherited across clone.
func FromFD(fd int) *Socket {
	return &Socket{fd: fd}
}

// FD returns the underlying raw descriptor. Used by process creation to
// decide which end to close in parent vs. child after clone.
func (s *Socket) FD() int {
	return s.fd
}

// WriteChunk sends data together with an SCM_RIGHTS message carrying fds,
// in one sendmsg call. len(fds) must not exceed SCMMaxFD; pipe.Pipe is
// responsible for splitting a longer batch into multiple chunks.
func (s *Socket) WriteChunk(data []byte, fds []int) error {
	if len(fds) > SCMMaxFD {
		return errors.New(errors.Io, fmt.Sprintf("socket: chunk carries %d descriptors, limit is %d", len(fds), SCMMaxFD), nil)
	}

	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}

	written := 0
	for written < len(data) {
		n, _, e := unix.SendmsgN(s.fd, data[written:], oob, nil, 0)
		if e != nil {
			return errors.New(errors.Io, "socket: sendmsg failed", e)
		}
		written += n
		// Ancillary data only needs to ride along with the first send
		// call of this chunk.
		oob = nil
	}
	return nil
}

// ReadFull reads exactly len(buf) bytes, collecting any descriptors
// delivered alongside into the inbound queue.
func (s *Socket) ReadFull(buf []byte) error {
	read := 0
	oobSpace := unix.CmsgSpace(SCMMaxFD * 4)
	for read < len(buf) {
		oob := make([]byte, oobSpace)
		n, oobn, _, _, e := unix.Recvmsg(s.fd, buf[read:], oob, 0)
		if e != nil {
			return errors.New(errors.Io, "socket: recvmsg failed", e)
		}
		if n == 0 {
			return errors.New(errors.Io, "socket: peer closed (unexpected EOF)", nil)
		}
		if oobn > 0 {
			if err := s.collectRights(oob[:oobn]); err != nil {
				return err
			}
		}
		read += n
	}
	return nil
}

func (s *Socket) collectRights(oob []byte) error {
	unix.ForkLock.Lock()
	defer unix.ForkLock.Unlock()

	scms, e := unix.ParseSocketControlMessage(oob)
	if e != nil {
		return errors.New(errors.Io, "socket: parse control message failed", e)
	}
	for _, scm := range scms {
		fds, e := unix.ParseUnixRights(&scm)
		if e != nil {
			continue
		}
		for _, fd := range fds {
			unix.CloseOnExec(fd)
		}
		s.queue = append(s.queue, fds...)
	}
	return nil
}

// DrainFDs takes ownership of every descriptor queued so far, resetting the
// queue to empty.
func (s *Socket) DrainFDs() []int {
	drained := s.queue
	s.queue = nil
	return drained
}

// Close closes the underlying descriptor. Safe to call more than once.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if e := unix.Close(s.fd); e != nil {
		return errors.New(errors.Io, "socket: close failed", e)
	}
	return nil
}
