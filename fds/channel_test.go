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

package fds_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/zygote/fds"
)

func TestPushTakeRoundTrip(t *testing.T) {
	ch := fds.NewChannel()
	idx := ch.Push(42)
	require.Equal(t, 0, idx)

	fd, ok := ch.TakeAt(idx)
	require.True(t, ok)
	require.Equal(t, 42, fd)

	_, ok = ch.TakeAt(idx)
	require.False(t, ok, "taking the same index twice must fail")
}

func TestSwap(t *testing.T) {
	ch := fds.NewChannel()
	ch.Push(1)
	ch.Push(2)

	prev := ch.Swap([]int{9, 8, 7})
	require.Equal(t, []int{1, 2}, prev)
	require.Equal(t, 3, ch.Len())
}

func TestAssertEmptyPanicsWhenNotDrained(t *testing.T) {
	ch := fds.NewChannel()
	ch.Push(1)

	require.Panics(t, func() { ch.AssertEmpty() })
}

func TestAssertEmptyOkWhenDrained(t *testing.T) {
	ch := fds.NewChannel()
	idx := ch.Push(1)
	_, _ = ch.TakeAt(idx)

	require.NotPanics(t, func() { ch.AssertEmpty() })
	require.Equal(t, 0, ch.Len())
}

func TestFDRawAndFromRaw(t *testing.T) {
	f := fds.FromRaw(5)
	require.Equal(t, 5, f.Raw())
}
