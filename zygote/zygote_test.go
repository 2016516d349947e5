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

package zygote_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	zerrors "github.com/nabbar/zygote/errors"
	"github.com/nabbar/zygote/fds"
	"github.com/nabbar/zygote/zygote"
)

// newZygoteOrSkip centralizes the "clone unavailable in this sandbox"
// escape hatch every scenario below needs: process creation can fail for
// reasons outside the library's control (seccomp profile, missing
// CAP_SYS_ADMIN-adjacent permission, an ancient kernel).
func newZygoteOrSkip(t *testing.T) *zygote.Handle {
	t.Helper()
	z, err := zygote.New()
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	t.Cleanup(func() { _ = z.Close() })
	return z
}

func echoFn(s string) string {
	return "hello " + s
}

func identityInt(n int) int {
	return n
}

func panicFn(_ struct{}) int {
	panic("oops")
}

func largePayloadFn(in []byte) []byte {
	return in
}

func writeToFDFn(f fds.FD) struct{} {
	file := f.File()
	defer file.Close()
	_, _ = file.Write([]byte("hello world!"))
	return struct{}{}
}

func writeIndexedFn(in []struct {
	FD  fds.FD
	Idx int
}) struct{} {
	for _, e := range in {
		file := e.FD.File()
		_, _ = fmt.Fprintf(file, "hello world %d!", e.Idx)
		_ = file.Close()
	}
	return struct{}{}
}

func getpidFn(_ struct{}) int {
	return os.Getpid()
}

func getppidFn(_ struct{}) int {
	return os.Getppid()
}

func divideFn(in [2]int) (int, error) {
	if in[1] == 0 {
		return 0, errors.New("division by zero")
	}
	return in[0] / in[1], nil
}

// Scenario 1: Echo.
func TestEcho(t *testing.T) {
	z := newZygoteOrSkip(t)

	out, err := zygote.TryRun(z, echoFn, "Zygote")
	require.NoError(t, err)
	require.Equal(t, "hello Zygote", out)
}

// Scenario 2: panic isolation - the handle survives a panicking call.
func TestPanicIsolation(t *testing.T) {
	z := newZygoteOrSkip(t)

	_, err := zygote.TryRun(z, panicFn, struct{}{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "oops")

	out, err := zygote.TryRun(z, identityInt, 42)
	require.NoError(t, err)
	require.Equal(t, 42, out)
}

// Scenario 3: large payload round-trips byte-for-byte.
func TestLargePayload(t *testing.T) {
	z := newZygoteOrSkip(t)

	in := make([]byte, 1<<20)
	for i := range in {
		in[i] = byte(i)
	}

	out, err := zygote.TryRun(z, largePayloadFn, in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

// Scenario 4: a single descriptor is transferred and usable in the child.
func TestSingleDescriptor(t *testing.T) {
	z := newZygoteOrSkip(t)

	a, b, err := os.Pipe()
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	_, err = zygote.TryRun(z, writeToFDFn, fds.NewFD(b))
	require.NoError(t, err)

	buf := make([]byte, len("hello world!"))
	_, err = a.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello world!", string(buf))
}

// Scenario 5: more descriptors than SCM_MAX_FD in one call.
func TestManyDescriptorsInOneCall(t *testing.T) {
	z := newZygoteOrSkip(t)

	const n = 300
	readers := make([]*os.File, n)
	writers := make([]*os.File, n)
	for i := 0; i < n; i++ {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		readers[i] = r
		writers[i] = w
	}
	defer func() {
		for i := 0; i < n; i++ {
			readers[i].Close()
		}
	}()

	batch := make([]struct {
		FD  fds.FD
		Idx int
	}, n)
	for i := 0; i < n; i++ {
		batch[i].FD = fds.NewFD(writers[i])
		batch[i].Idx = i
	}
	_, err := zygote.TryRun(z, writeIndexedFn, batch)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		writers[i].Close()
	}

	for i := 0; i < n; i++ {
		buf := make([]byte, len(fmt.Sprintf("hello world %d!", i)))
		_, err := readers[i].Read(buf)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("hello world %d!", i), string(buf))
	}
}

// Scenario 6: nested zygotes - Spawn (child of the spawner) vs SpawnSibling
// (CLONE_PARENT, sibling of the spawner).
func TestNestedZygotesSpawnSibling(t *testing.T) {
	top := newZygoteOrSkip(t)

	mid, err := top.SpawnSibling()
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	defer mid.Close()

	grand, err := mid.SpawnSibling()
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	defer grand.Close()

	midPid, err := zygote.TryRun(mid, getpidFn, struct{}{})
	require.NoError(t, err)

	grandPid, err := zygote.TryRun(grand, getpidFn, struct{}{})
	require.NoError(t, err)
	require.NotEqual(t, midPid, grandPid)

	// top is a child of this process; each SpawnSibling keeps the
	// spawner's parent, so grand's parent is this test process too.
	grandPpid, err := zygote.TryRun(grand, getppidFn, struct{}{})
	require.NoError(t, err)
	require.Equal(t, os.Getpid(), grandPpid)
}

func TestNestedZygotesSpawn(t *testing.T) {
	top := newZygoteOrSkip(t)
	topPid := top.Pid()

	mid, err := top.Spawn()
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	defer mid.Close()

	grand, err := mid.Spawn()
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	defer grand.Close()

	midPpid, err := zygote.TryRun(mid, getppidFn, struct{}{})
	require.NoError(t, err)
	require.Equal(t, topPid, midPpid)

	midPid, err := zygote.TryRun(mid, getpidFn, struct{}{})
	require.NoError(t, err)

	grandPpid, err := zygote.TryRun(grand, getppidFn, struct{}{})
	require.NoError(t, err)
	require.Equal(t, midPid, grandPpid)
}

// TryRunE surfaces a returned error as a Wire failure without panicking.
func TestTryRunEWireError(t *testing.T) {
	z := newZygoteOrSkip(t)

	_, err := zygote.TryRunE(z, divideFn, [2]int{1, 0})
	require.Error(t, err)
	require.Contains(t, err.Error(), "division by zero")

	out, err := zygote.TryRunE(z, divideFn, [2]int{10, 2})
	require.NoError(t, err)
	require.Equal(t, 5, out)
}

// A handle that has already seen a panic remains usable for further calls,
// interleaved with successes.
func TestInterleavedSuccessAndPanic(t *testing.T) {
	z := newZygoteOrSkip(t)

	for i := 0; i < 5; i++ {
		out, err := zygote.TryRun(z, identityInt, i)
		require.NoError(t, err)
		require.Equal(t, i, out)

		_, err = zygote.TryRun(z, panicFn, struct{}{})
		require.Error(t, err)
	}
}

// After Close, the child is reaped: a further call observes an IO error
// rather than hanging.
func TestCloseThenCallIsIOError(t *testing.T) {
	z, err := zygote.New()
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	require.NoError(t, z.Close())

	_, err = zygote.TryRun(z, identityInt, 1)
	require.Error(t, err)
	require.True(t, zerrors.Is(err, zerrors.Io))
}
