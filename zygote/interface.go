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
	"sync"

	"github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/pipe"
	"github.com/nabbar/zygote/process"
)

// Handle is the parent-side owner of one zygote: a process handle plus a
// mutex-guarded pipe. The zero value is not usable; obtain one via New,
// NewSibling, Global, or Handle.Spawn(Sibling).
type Handle struct {
	mu   sync.Mutex
	proc *process.Handle
	pipe *pipe.Pipe
}

// addrPair is the two pointer-sized code addresses TryRun sends ahead of
// the argument frame: the target function and the trampoline that knows
// how to decode/invoke/encode it.
type addrPair struct {
	FuncAddr       uint64 `codec:"f"`
	TrampolineAddr uint64 `codec:"t"`
}

// outcome is the wire shape of Result<Ret, WireError>: Err set
// means the task failed (panic, returned error, or a decode failure inside
// the trampoline); otherwise Value holds the task's real result.
type outcome[Ret any] struct {
	Value Ret               `codec:"value"`
	Err   *errors.WireError `codec:"err,omitempty"`
}
