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

package pipe

import (
	"sync"

	"github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/fds"
	"github.com/nabbar/zygote/socket"
	"github.com/nabbar/zygote/wire"
)

// Pipe is the typed channel: one framed socket, one FD side-channel, guarded
// by one mutex so a single Pipe only ever has one Send or Receive (or
// ReceiveDelayed/Decode pair) in flight at a time.
type Pipe struct {
	mu   sync.Mutex
	sock *socket.Socket
	ch   *fds.Channel
}

// New wraps an already-connected socket.Socket as a Pipe.
func New(s *socket.Socket) *Pipe {
	return &Pipe{sock: s, ch: fds.NewChannel()}
}

// Pair creates two connected Pipes over a fresh socketpair.
func Pair() (*Pipe, *Pipe, error) {
	a, b, err := socket.Pair()
	if err != nil {
		return nil, nil, err
	}
	return New(a), New(b), nil
}

// Close closes the underlying socket.
func (p *Pipe) Close() error {
	return p.sock.Close()
}

// Socket exposes the underlying framed socket, e.g. so process creation can
// read its raw descriptor before handing the Pipe to the child.
func (p *Pipe) Socket() *socket.Socket {
	return p.sock
}

// Send serializes v and writes it as a complete frame: fingerprint, length,
// payload, then one or more ancillary fd chunks.
func Send[T wire.Value](p *Pipe, v T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch.Len() != 0 {
		return errors.New(errors.Encode, "pipe: side-channel not empty before send", nil)
	}

	payload, err := wire.Marshal(v, p.ch)
	if err != nil {
		return err
	}
	outFds := p.ch.Swap(nil)

	fp := wire.FingerprintOfType[T]()
	if err := writeFrame(p.sock, fp, payload, outFds); err != nil {
		return err
	}
	return nil
}

// Receive reads a complete frame and deserializes it as T, failing with a
// Decode error if the wire fingerprint does not match T's.
func Receive[T wire.Value](p *Pipe) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero T
	fp, payload, inFds, err := readFrame(p.sock)
	if err != nil {
		return zero, err
	}

	want := wire.FingerprintOfType[T]()
	if fp != want {
		return zero, errors.New(errors.Decode, "pipe: fingerprint mismatch on receive", nil)
	}

	p.ch.Swap(inFds)
	v, err := wire.Unmarshal[T](payload, p.ch)
	if err != nil {
		return zero, err
	}
	if err := assertChannelEmpty(p.ch); err != nil {
		return zero, err
	}
	return v, nil
}

// DelayedFrame is a frame whose header and payload have been read but not
// yet deserialized, so the caller (the zygote child main loop) can run
// Decode inside its own panic guard instead of having a bad payload panic
// during Receive itself.
type DelayedFrame struct {
	release func()
	ch      *fds.Channel
	fp      wire.Fingerprint
	payload []byte
}

// ReceiveDelayed reads a frame's header, payload and staged descriptors, but
// defers deserialization to Decode. The Pipe's mutex stays held until Decode
// is called.
func (p *Pipe) ReceiveDelayed() (*DelayedFrame, error) {
	p.mu.Lock()

	fp, payload, inFds, err := readFrame(p.sock)
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	p.ch.Swap(inFds)

	return &DelayedFrame{release: p.mu.Unlock, ch: p.ch, fp: fp, payload: payload}, nil
}

// Decode deserializes a DelayedFrame as T and releases the Pipe's mutex,
// exactly once, regardless of outcome.
func Decode[T wire.Value](d *DelayedFrame) (T, error) {
	defer d.release()

	var zero T
	want := wire.FingerprintOfType[T]()
	if d.fp != want {
		return zero, errors.New(errors.Decode, "pipe: fingerprint mismatch on delayed receive", nil)
	}

	v, err := wire.Unmarshal[T](d.payload, d.ch)
	if err != nil {
		return zero, err
	}
	if err := assertChannelEmpty(d.ch); err != nil {
		return zero, err
	}
	return v, nil
}

// assertChannelEmpty converts the fds.Channel boundary-invariant panic into
// an ordinary Io error, since a non-empty side-channel after a decode means
// the frame and the schema disagreed about how many descriptors travel.
func assertChannelEmpty(ch *fds.Channel) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.Io, nil, "pipe: %v", r)
		}
	}()
	ch.AssertEmpty()
	return nil
}
