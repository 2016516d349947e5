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

package process

// Topology selects which process the clone's parent should be.
type Topology uint8

const (
	// ChildOfCaller makes the new process a normal child of the caller:
	// the caller receives SIGCHLD when it exits.
	ChildOfCaller Topology = iota
	// SiblingOfCaller makes the new process share the caller's parent
	// (CLONE_PARENT): the caller is not notified of its exit.
	SiblingOfCaller
)

func (t Topology) String() string {
	if t == SiblingOfCaller {
		return "sibling-of-caller"
	}
	return "child-of-caller"
}

// Handle identifies a cloned process by its pidfd, immune to the pid-reuse
// TOCTOU that a bare pid would carry.
type Handle struct {
	pid   int
	pidfd int
}

// Pid returns the process id observed at creation time. Only useful for
// logging/diagnostics; Kill and Wait operate on the pidfd, not this value.
func (h *Handle) Pid() int {
	return h.pid
}

// RawPidFD exposes the underlying pidfd so callers (zygote.Handle's
// codec.Selfer implementation) can transfer it across a pipe via
// fds.FD/SCM_RIGHTS when a zygote spawns another zygote.
func (h *Handle) RawPidFD() int {
	return h.pidfd
}

// FromRaw reconstructs a Handle around an already-owned pid/pidfd pair,
// e.g. one just received over SCM_RIGHTS.
func FromRaw(pid, pidfd int) *Handle {
	return &Handle{pid: pid, pidfd: pidfd}
}
