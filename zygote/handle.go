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
	"reflect"
	"runtime"
	"time"

	"github.com/hashicorp/go-uuid"

	"github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/pipe"
	"github.com/nabbar/zygote/process"
	"github.com/nabbar/zygote/zlog"
)

// New creates a zygote that is a child of the caller: the caller receives
// SIGCHLD when it exits, and waitid/pidfd reaps it normally.
func New() (*Handle, error) {
	return create(process.ChildOfCaller)
}

// NewSibling creates a zygote that shares the caller's parent (CLONE_PARENT):
// useful when the caller is itself a zygote child and wants the new process
// to survive the caller's own termination without becoming an orphan of
// init.
func NewSibling() (*Handle, error) {
	return create(process.SiblingOfCaller)
}

// create implements the "socket-pair and clone both happen before any
// work" ordering: the pipe is built first, then clone splits its two
// ends, each side dropping the peer's end immediately.
func create(topology process.Topology) (*Handle, error) {
	parentSide, childSide, err := pipe.Pair()
	if err != nil {
		return nil, err
	}

	proc, err := process.New(topology, func() {
		_ = parentSide.Close()
		runChildLoop(childSide)
	})
	if err != nil {
		_ = parentSide.Close()
		_ = childSide.Close()
		return nil, err
	}

	_ = childSide.Close()

	h := &Handle{proc: proc, pipe: parentSide}
	runtime.SetFinalizer(h, func(h *Handle) { _ = h.Close() })
	defaultMetrics.activeTotal.Inc()
	currentLogger().Debug("zygote child created", zlog.NewFields().Add("pid", proc.Pid()).Add("topology", topology))
	return h, nil
}

// Run calls f(args) inside the zygote and panics if the call fails. Intended
// for tasks the caller considers infallible.
func Run[Args any, Ret any](z *Handle, f func(Args) Ret, args Args) Ret {
	ret, err := TryRun(z, f, args)
	if err != nil {
		panic(err)
	}
	return ret
}

// TryRun dispatches f(args) to the zygote and blocks for the result.
// Only one call may be outstanding per Handle at a time;
// concurrent callers serialize on the Handle's mutex. f must not capture
// any enclosing variable and must not itself be a generic function
// instantiation: it is invoked in the child by its bare code address, which
// only names the right code (with no implicit extra argument) for a plain,
// non-generic function value or a closure literal with no free variables -
// an instantiated generic function closes over a runtime type dictionary
// the same way a closure closes over captured variables (see
// trampoline.go).
func TryRun[Args any, Ret any](z *Handle, f func(Args) Ret, args Args) (Ret, error) {
	tAddr := uintptr(reflect.ValueOf(runner[Args, Ret]).Pointer())
	return callRemote[Args, Ret](z, reflect.ValueOf(f).Pointer(), tAddr, args)
}

// TryRunE is TryRun's supplemented form, grounded on the reference Rust
// implementation's wire_error case: f may return an error without
// panicking, and that error still surfaces as a Kind Wire failure on the
// caller side, carried through WireError rather than a panic.
func TryRunE[Args any, Ret any](z *Handle, f func(Args) (Ret, error), args Args) (Ret, error) {
	tAddr := uintptr(reflect.ValueOf(runnerE[Args, Ret]).Pointer())
	return callRemote[Args, Ret](z, reflect.ValueOf(f).Pointer(), tAddr, args)
}

// callRemote is the shared call sequence behind TryRun/TryRunE: lock, send
// the (function, trampoline) address pair, send the argument frame, block
// for the outcome.
func callRemote[Args any, Ret any](z *Handle, fAddr, tAddr uintptr, args Args) (Ret, error) {
	var zero Ret

	id, _ := uuid.GenerateUUID()
	start := time.Now()

	z.mu.Lock()
	defer z.mu.Unlock()

	if err := pipe.Send(z.pipe, addrPair{FuncAddr: uint64(fAddr), TrampolineAddr: uint64(tAddr)}); err != nil {
		recordCall(id, start, "io")
		return zero, err
	}
	if err := pipe.Send(z.pipe, args); err != nil {
		recordCall(id, start, "io")
		return zero, err
	}

	res, err := pipe.Receive[outcome[Ret]](z.pipe)
	if err != nil {
		recordCall(id, start, "io")
		return zero, err
	}
	if res.Err != nil {
		recordCall(id, start, "panic")
		werr := errors.AsError(res.Err)
		currentLogger().Warning("zygote call failed", zlog.NewFields().Add("call_id", id).Add("error", werr.Error()))
		return zero, werr
	}

	recordCall(id, start, "ok")
	return res.Value, nil
}

// Spawn runs a task inside the zygote that creates another zygote as a
// genuine child of the zygote doing the spawning (not CLONE_PARENT), so the
// new process's parent is the spawning zygote itself, and returns the new
// Handle by value. Handle is wire-capable because its CodecEncodeSelf (see
// wire.go) carries both its pidfd and its pipe's socket as fds.FD values.
func (z *Handle) Spawn() (*Handle, error) {
	return TryRun(z, func(struct{}) *Handle {
		h, err := New()
		if err != nil {
			panic(err)
		}
		return h
	}, struct{}{})
}

// SpawnSibling runs a task inside the zygote that creates another zygote
// sharing the spawning zygote's parent (CLONE_PARENT): the new zygote is a
// sibling of the spawning zygote, and its exit is not reported to it.
func (z *Handle) SpawnSibling() (*Handle, error) {
	return TryRun(z, func(struct{}) *Handle {
		h, err := NewSibling()
		if err != nil {
			panic(err)
		}
		return h
	}, struct{}{})
}

// Close signals SIGKILL to the child via its pidfd and reaps it. Safe to
// call more than once; failures in the signal/reap step are swallowed,
// matching the design's "failures there are swallowed" propagation policy.
func (z *Handle) Close() error {
	runtime.SetFinalizer(z, nil)
	if z.proc == nil {
		return nil
	}
	pid := z.proc.Pid()
	_ = z.proc.Kill()
	_ = z.proc.Wait()
	_ = z.proc.Close()
	z.proc = nil
	defaultMetrics.activeTotal.Dec()
	currentLogger().Debug("zygote child closed", zlog.NewFields().Add("pid", pid))
	return z.pipe.Close()
}

// Pid returns the child process's pid, for logging/diagnostics only.
func (z *Handle) Pid() int {
	return z.proc.Pid()
}
