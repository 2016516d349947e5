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

//go:build linux

package process

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/nabbar/zygote/errors"
)

// pidfdIDType mirrors Linux's P_PIDFD (id_type_t), used with waitid(2) to
// wait on a process identified by pidfd rather than pid. golang.org/x/sys
// does not export this constant on every supported Go toolchain, so it is
// pinned here rather than referenced as unix.P_PIDFD.
const pidfdIDType = 3

// cloneArgs mirrors struct clone_args from linux/sched.h, the argument
// clone3(2) takes. Only Flags and ExitSignal are populated; the rest stay
// zero, which clone3 treats as "not requested".
type cloneArgs struct {
	Flags      uint64
	PidFD      uint64
	ChildTID   uint64
	ParentTID  uint64
	ExitSignal uint64
	Stack      uint64
	StackSize  uint64
	TLS        uint64
	SetTID     uint64
	SetTIDSize uint64
	Cgroup     uint64
}

// New clones the calling process (without re-executing it) into a new
// process running entry, and returns a Handle for the parent side. entry is
// never invoked in the parent; it is the child's entire post-clone
// continuation and is expected to terminate the process itself (the zygote
// package's child main loop calls unix.Exit on every exit path). If entry
// returns without exiting, New exits the child with status 1 as a backstop.
//
// The caller must have called runtime.LockOSThread before calling New: the
// underlying clone(2)/clone3(2) syscalls duplicate only the calling OS
// thread, so any other goroutine's thread-bound state (other than the
// duplicated heap/globals) does not exist in the child.
func New(topology Topology, entry func()) (*Handle, error) {
	flags := uint64(0)
	exitSignal := uint64(unix.SIGCHLD)
	if topology == SiblingOfCaller {
		flags |= unix.CLONE_PARENT
		exitSignal = 0
	}

	pid, err := cloneViaClone3(flags, exitSignal)
	if err == unix.ENOSYS {
		pid, err = cloneViaCloneFallback(flags, exitSignal)
	}
	if err != nil {
		return nil, errors.New(errors.Io, "process: clone failed", err)
	}

	if pid == 0 {
		runChild(entry)
		// unreachable: runChild never returns
		return nil, nil
	}

	pidfd, _, errno := unix.Syscall(unix.SYS_PIDFD_OPEN, uintptr(pid), 0, 0)
	if errno != 0 {
		return nil, errors.New(errors.Io, "process: pidfd_open failed", errno)
	}
	return &Handle{pid: int(pid), pidfd: int(pidfd)}, nil
}

// runChild is the child-side continuation shared by both clone paths. It
// never returns: entry is responsible for the process's entire lifetime and
// exit status (see zygote.runChildLoop), with unix.Exit(1) as a backstop if
// entry misbehaves and returns anyway.
func runChild(entry func()) {
	entry()
	unix.Exit(1)
}

// cloneViaClone3 is the preferred creation path: a single clone3(2) syscall
// both creates the process and lets the kernel assign the requested
// topology and exit signal.
func cloneViaClone3(flags, exitSignal uint64) (uintptr, error) {
	runtime.LockOSThread()

	args := cloneArgs{Flags: flags, ExitSignal: exitSignal}
	pid, _, errno := unix.Syscall6(
		unix.SYS_CLONE3,
		uintptr(unsafe.Pointer(&args)),
		unsafe.Sizeof(args),
		0, 0, 0, 0,
	)
	if errno != 0 {
		return 0, errno
	}
	return pid, nil
}

// cloneViaCloneFallback is the fallback creation path for kernels older
// than 5.5 that lack clone3. Passing a nil child stack to the raw clone(2)
// syscall (as opposed to the glibc clone() wrapper, which mandates a
// caller-supplied stack) makes the kernel duplicate the caller's own stack
// copy-on-write, exactly like fork(2) - so no setjmp/longjmp continuation
// buffer is needed: the syscall itself returns twice, once in each stack.
func cloneViaCloneFallback(flags, exitSignal uint64) (uintptr, error) {
	runtime.LockOSThread()

	pid, _, errno := unix.RawSyscall6(
		unix.SYS_CLONE,
		uintptr(flags|exitSignal),
		0, 0, 0, 0, 0,
	)
	if errno != 0 {
		return 0, errno
	}
	return pid, nil
}

// Kill sends SIGKILL to the process via its pidfd.
func (h *Handle) Kill() error {
	_, _, errno := unix.Syscall(unix.SYS_PIDFD_SEND_SIGNAL, uintptr(h.pidfd), uintptr(unix.SIGKILL), 0)
	if errno != 0 {
		return errors.New(errors.Io, "process: pidfd_send_signal failed", errno)
	}
	return nil
}

// Wait blocks until the process has exited, reaping it.
func (h *Handle) Wait() error {
	var info unix.Siginfo
	if err := unix.Waitid(pidfdIDType, h.pidfd, &info, unix.WEXITED, nil); err != nil {
		return errors.New(errors.Io, "process: waitid failed", err)
	}
	return nil
}

// Close releases the pidfd without signalling or reaping the process.
func (h *Handle) Close() error {
	if err := unix.Close(h.pidfd); err != nil {
		return errors.New(errors.Io, "process: pidfd close failed", err)
	}
	return nil
}
