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

package wire

import (
	"github.com/ugorji/go/codec"

	"github.com/nabbar/zygote/fds"
)

// wireHandle is a codec.Handle (via embedding *codec.MsgpackHandle) that
// additionally carries the fds.Channel for one encode or decode pass. This
// is the explicit-context alternative to a thread-local side-channel,
// workable because ugorji/go/codec already threads a handle through
// serialize/deserialize via Encoder.Handle() / Decoder.Handle().
type wireHandle struct {
	*codec.MsgpackHandle
	channel *fds.Channel
}

// FDChannel implements fds.HandleHolder.
func (h *wireHandle) FDChannel() *fds.Channel {
	return h.channel
}

func newHandle(channel *fds.Channel) *wireHandle {
	mh := &codec.MsgpackHandle{}
	mh.WriteExt = true
	return &wireHandle{MsgpackHandle: mh, channel: channel}
}
