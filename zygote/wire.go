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
	"github.com/ugorji/go/codec"

	"github.com/nabbar/zygote/fds"
	"github.com/nabbar/zygote/pipe"
	"github.com/nabbar/zygote/process"
	"github.com/nabbar/zygote/socket"
)

// wireHandle is the shape a *Handle serializes to: a pid (meaningful
// because Spawn never crosses a pid namespace) plus the pidfd and the
// pipe's socket descriptor, both carried as fds.FD so they ride the same
// SCM_RIGHTS machinery as any other transferred descriptor.
type wireHandle struct {
	Pid   int    `codec:"pid"`
	PidFD fds.FD `codec:"pidfd"`
	Sock  fds.FD `codec:"sock"`
}

// CodecEncodeSelf implements codec.Selfer so Spawn/SpawnSibling can return
// a *Handle across the pipe like any other wire value.
func (z *Handle) CodecEncodeSelf(e *codec.Encoder) {
	w := wireHandle{
		Pid:   z.proc.Pid(),
		PidFD: fds.FromRaw(z.proc.RawPidFD()),
		Sock:  fds.FromRaw(z.pipe.Socket().FD()),
	}
	e.MustEncode(w)
}

// CodecDecodeSelf implements codec.Selfer, reconstructing the Handle
// around the pid/pidfd/socket descriptors delivered via SCM_RIGHTS.
func (z *Handle) CodecDecodeSelf(d *codec.Decoder) {
	var w wireHandle
	d.MustDecode(&w)
	z.proc = process.FromRaw(w.Pid, w.PidFD.Raw())
	z.pipe = pipe.New(socket.FromFD(w.Sock.Raw()))
}
