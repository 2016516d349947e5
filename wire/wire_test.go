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

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/zygote/fds"
	"github.com/nabbar/zygote/wire"
)

type payload struct {
	Name  string
	Count int
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	ch := fds.NewChannel()
	data, err := wire.Marshal(payload{Name: "zygote", Count: 7}, ch)
	require.NoError(t, err)
	require.Equal(t, 0, ch.Len())

	got, err := wire.Unmarshal[payload](data, fds.NewChannel())
	require.NoError(t, err)
	require.Equal(t, payload{Name: "zygote", Count: 7}, got)
}

func TestLargePayloadRoundTrip(t *testing.T) {
	in := make([]byte, 1<<20)
	for i := range in {
		in[i] = byte(i)
	}

	data, err := wire.Marshal(in, fds.NewChannel())
	require.NoError(t, err)

	out, err := wire.Unmarshal[[]byte](data, fds.NewChannel())
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestFingerprintStableForSameType(t *testing.T) {
	a := wire.FingerprintOfType[payload]()
	b := wire.FingerprintOfType[payload]()
	require.Equal(t, a, b)
}

func TestFingerprintDiffersAcrossTypes(t *testing.T) {
	a := wire.FingerprintOfType[payload]()
	b := wire.FingerprintOfType[string]()
	require.NotEqual(t, a, b)
}
