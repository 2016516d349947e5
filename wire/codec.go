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

	"github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/fds"
)

// Marshal serializes v into a byte slice, pushing any descriptors found in
// v (via fds.FD fields, at any nesting depth) onto channel as it goes.
// channel must be empty on entry; Send (pipe.Pipe) is responsible for that
// precondition and for harvesting the channel once Marshal returns.
func Marshal[T Value](v T, channel *fds.Channel) ([]byte, error) {
	h := newHandle(channel)
	var out []byte
	enc := codec.NewEncoderBytes(&out, h)
	if err := enc.Encode(v); err != nil {
		return nil, errors.New(errors.Encode, "wire: encode failed", err)
	}
	return out, nil
}

// Unmarshal deserializes data into a T, popping descriptors from channel as
// fds.FD fields are decoded. channel must already be staged with exactly
// the descriptors the frame's ancillary data carried, in order; Receive
// (pipe.Pipe) is responsible for that precondition.
func Unmarshal[T Value](data []byte, channel *fds.Channel) (T, error) {
	var zero T
	h := newHandle(channel)
	dec := codec.NewDecoderBytes(data, h)
	if err := dec.Decode(&zero); err != nil {
		return zero, errors.New(errors.Decode, "wire: decode failed", err)
	}
	return zero, nil
}
