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
	"encoding/binary"
	"unsafe"

	"github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/socket"
	"github.com/nabbar/zygote/wire"
)

// nativeEndian is resolved once at package init by inspecting the host's
// actual byte layout: the frame length field is native-endian, not
// network-order, since both ends of a pipe always run on the same host.
var nativeEndian binary.ByteOrder = func() binary.ByteOrder {
	var i uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

// continuationMark is the sentinel ancillary-chunk count byte meaning "this
// chunk carries exactly SCMMaxFD descriptors, more chunks follow".
const continuationMark = 255

func writeFrame(s *socket.Socket, fp wire.Fingerprint, payload []byte, fdList []int) error {
	header := make([]byte, 16+8)
	copy(header, fp[:])
	nativeEndian.PutUint64(header[16:], uint64(len(payload)))

	if err := s.WriteChunk(append(header, payload...), nil); err != nil {
		return err
	}

	return writeAncillaryChunks(s, fdList)
}

// writeAncillaryChunks always writes at least one chunk, even for zero
// descriptors, matching SCM_RIGHTS' requirement of at least one data byte
// per message and the normative "1+ ancillary chunks" framing.
func writeAncillaryChunks(s *socket.Socket, fdList []int) error {
	for {
		n := len(fdList)
		more := n > socket.SCMMaxFD
		if more {
			n = socket.SCMMaxFD
		}
		chunk := fdList[:n]
		fdList = fdList[n:]

		count := byte(n)
		if more {
			count = continuationMark
		}
		if err := s.WriteChunk([]byte{count}, chunk); err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func readFrame(s *socket.Socket) (wire.Fingerprint, []byte, []int, error) {
	header := make([]byte, 16+8)
	if err := s.ReadFull(header); err != nil {
		return wire.Fingerprint{}, nil, nil, err
	}

	var fp wire.Fingerprint
	copy(fp[:], header[:16])
	length := nativeEndian.Uint64(header[16:])

	payload := make([]byte, length)
	if length > 0 {
		if err := s.ReadFull(payload); err != nil {
			return fp, nil, nil, err
		}
	}

	fdList, err := readAncillaryChunks(s)
	if err != nil {
		return fp, nil, nil, err
	}
	return fp, payload, fdList, nil
}

func readAncillaryChunks(s *socket.Socket) ([]int, error) {
	var all []int
	for {
		countByte := make([]byte, 1)
		if err := s.ReadFull(countByte); err != nil {
			return nil, err
		}
		count := countByte[0]
		more := count == continuationMark
		want := int(count)
		if more {
			want = socket.SCMMaxFD
		}

		drained := s.DrainFDs()
		if len(drained) != want {
			return nil, errors.New(errors.Io, "pipe: ancillary chunk fd count mismatch", nil)
		}
		all = append(all, drained...)

		if !more {
			return all, nil
		}
	}
}
