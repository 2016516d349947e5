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

import (
	"fmt"
	"os"

	"github.com/ugorji/go/codec"
)

// HandleHolder is implemented by the codec.Handle the wire package installs
// on every Encoder/Decoder it creates. It is the seam that lets FD reach the
// Channel scoped to the Pipe currently running, without a package-global.
type HandleHolder interface {
	FDChannel() *Channel
}

// FD is the transferable descriptor wrapper (spec's "SendableFd"): on
// encode it pushes its underlying descriptor onto the active Channel and
// writes the resulting index in its place; on decode it reads the index and
// pops the matching descriptor. Each wrapped descriptor crosses exactly
// once: the sender keeps owning its original descriptor (the socket layer
// sends it by reference via SCM_RIGHTS), the receiver owns an independent,
// kernel-duplicated copy.
type FD struct {
	raw int
}

// NewFD wraps f's descriptor for a single transfer. The caller still owns f
// after the value is sent; sending duplicates the descriptor at the kernel
// level rather than consuming it.
func NewFD(f *os.File) FD {
	return FD{raw: int(f.Fd())}
}

// FromRaw wraps an already-owned raw descriptor number.
func FromRaw(fd int) FD {
	return FD{raw: fd}
}

// Raw returns the wrapped descriptor number.
func (f FD) Raw() int { return f.raw }

// File opens an *os.File over the wrapped descriptor. The returned file
// owns the descriptor; closing it closes the descriptor.
func (f FD) File() *os.File {
	return os.NewFile(uintptr(f.raw), "zygote-fd")
}

// CodecEncodeSelf implements codec.Selfer.
func (f FD) CodecEncodeSelf(e *codec.Encoder) {
	ch := channelFrom(e.Handle())
	idx := ch.Push(f.raw)
	e.MustEncode(idx)
}

// CodecDecodeSelf implements codec.Selfer.
func (f *FD) CodecDecodeSelf(d *codec.Decoder) {
	var idx int
	d.MustDecode(&idx)
	ch := channelFrom(d.Handle())
	raw, ok := ch.TakeAt(idx)
	if !ok {
		panic(fmt.Sprintf("fds: no descriptor staged at index %d", idx))
	}
	f.raw = raw
}

func channelFrom(h codec.Handle) *Channel {
	holder, ok := h.(HandleHolder)
	if !ok {
		panic("fds: codec handle does not carry a file-descriptor side-channel")
	}
	return holder.FDChannel()
}
