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

package process_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/nabbar/zygote/process"
)

func TestTopologyString(t *testing.T) {
	require.Equal(t, "child-of-caller", process.ChildOfCaller.String())
	require.Equal(t, "sibling-of-caller", process.SiblingOfCaller.String())
}

func TestNewChildOfCallerExitsCleanly(t *testing.T) {
	h, err := process.New(process.ChildOfCaller, func() {
		unix.Exit(0)
	})
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	require.Greater(t, h.Pid(), 0)
	require.NoError(t, h.Wait())
}

func TestKillUnblocksWait(t *testing.T) {
	h, err := process.New(process.ChildOfCaller, func() {
		for {
			unix.Pause()
		}
	})
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	require.NoError(t, h.Kill())
	require.NoError(t, h.Wait())
}

func TestSiblingTopologyCreates(t *testing.T) {
	h, err := process.New(process.SiblingOfCaller, func() {
		unix.Exit(0)
	})
	if err != nil {
		t.Skipf("clone unavailable in this sandbox: %v", err)
	}
	require.Greater(t, h.Pid(), 0)
	require.NoError(t, h.Kill())
	_ = h.Wait()
}
