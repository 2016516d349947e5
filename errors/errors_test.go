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

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/zygote/errors"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "io", errors.Io.String())
	require.Equal(t, "decode", errors.Decode.String())
	require.Equal(t, "encode", errors.Encode.String())
	require.Equal(t, "wire", errors.Wire.String())
}

func TestNewAndIs(t *testing.T) {
	base := stderrors.New("socket closed")
	err := errors.New(errors.Io, "read failed", base)

	require.True(t, errors.Is(err, errors.Io))
	require.False(t, errors.Is(err, errors.Decode))
	require.ErrorIs(t, err, base)
	require.Contains(t, err.Error(), "socket closed")
}

func TestWireErrorFromPanic(t *testing.T) {
	w := errors.FromPanic("oops", "fake-trace")
	require.Equal(t, "oops", w.Description)
	require.NotNil(t, w.Backtrace)
	require.Equal(t, "fake-trace", *w.Backtrace)

	wrapped := errors.AsError(w)
	require.True(t, errors.Is(wrapped, errors.Wire))
	require.Contains(t, wrapped.Error(), "oops")
}

func TestWireErrorFromErrorChain(t *testing.T) {
	inner := stderrors.New("inner cause")
	outer := errors.New(errors.Decode, "outer failure", inner)

	w := errors.FromError(outer)
	require.Equal(t, "outer failure: inner cause", w.Description)
	require.NotNil(t, w.Source)
	require.Equal(t, "inner cause", w.Source.Description)
}

func TestWireErrorNilSafe(t *testing.T) {
	var w *errors.WireError
	require.Equal(t, "", w.Error())
	require.Nil(t, errors.AsError(nil))
}
