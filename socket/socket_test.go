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

package socket_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/zygote/socket"
)

func TestPairWriteReadPlain(t *testing.T) {
	a, b, err := socket.Pair()
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.WriteChunk([]byte("hello"), nil))

	buf := make([]byte, 5)
	require.NoError(t, b.ReadFull(buf))
	require.Equal(t, "hello", string(buf))
	require.Empty(t, b.DrainFDs())
}

func TestPairWriteReadWithFD(t *testing.T) {
	a, b, err := socket.Pair()
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	require.NoError(t, a.WriteChunk([]byte{1}, []int{int(w.Fd())}))

	buf := make([]byte, 1)
	require.NoError(t, b.ReadFull(buf))

	fds := b.DrainFDs()
	require.Len(t, fds, 1)

	received := os.NewFile(uintptr(fds[0]), "received")
	defer received.Close()

	go func() {
		_, _ = received.Write([]byte("hello world!"))
		received.Close()
	}()

	out := make([]byte, 12)
	n, err := r.Read(out)
	require.NoError(t, err)
	require.Equal(t, "hello world!", string(out[:n]))
}

func TestChunkRejectsTooManyFDs(t *testing.T) {
	a, b, err := socket.Pair()
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	fds := make([]int, socket.SCMMaxFD+1)
	err = a.WriteChunk([]byte{1}, fds)
	require.Error(t, err)
}
