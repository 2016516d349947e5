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

// Package socket implements the framed socket component: a paired
// AF_UNIX/SOCK_STREAM descriptor that can write a byte chunk together with
// an SCM_RIGHTS ancillary message in one call, and that collects any
// descriptors arriving on a read into an inbound FIFO queue until something
// drains them.
//
// The recvmsg/sendmsg mechanics are grounded on the moby-moby beam package's
// UnixConn (control-message parsing and UnixRights construction) and on the
// gVisor ptrace subprocess creator's fork-safety conventions, adapted to
// golang.org/x/sys/unix instead of raw syscall.
package socket

// SCMMaxFD is the maximum number of descriptors the kernel will accept in a
// single SCM_RIGHTS ancillary message on Linux.
const SCMMaxFD = 253
