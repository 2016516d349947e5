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

package zlog_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/zygote/zlog"
)

func TestLevelStringRoundTrip(t *testing.T) {
	for _, lvl := range []zlog.Level{zlog.DebugLevel, zlog.InfoLevel, zlog.WarnLevel, zlog.ErrorLevel, zlog.FatalLevel, zlog.PanicLevel} {
		require.Equal(t, lvl, zlog.GetLevelString(lvl.String()))
	}
}

func TestGetLevelStringDefaultsToInfo(t *testing.T) {
	require.Equal(t, zlog.InfoLevel, zlog.GetLevelString("not-a-level"))
}

func TestFieldsAddDoesNotMutateOriginal(t *testing.T) {
	base := zlog.NewFields().Add("a", 1)
	derived := base.Add("b", 2)

	require.Equal(t, 1, len(base))
	require.Equal(t, 2, len(derived))
}

func TestLoggerWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	l := zlog.New(&buf)
	l.SetLevel(zlog.DebugLevel)

	l.Info("child created", zlog.NewFields().Add("pid", 4242))

	require.Contains(t, buf.String(), "child created")
	require.Contains(t, buf.String(), "pid=4242")
}

func TestLoggerRespectsLevelThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := zlog.New(&buf)
	l.SetLevel(zlog.WarnLevel)

	l.Debug("should not appear", nil)
	require.Empty(t, buf.String())

	l.Warning("should appear", nil)
	require.Contains(t, buf.String(), "should appear")
}

func TestLoggerErrorIncludesErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := zlog.New(&buf)

	l.Error("dispatch failed", errors.New("boom"), nil)

	require.Contains(t, buf.String(), "dispatch failed")
	require.Contains(t, buf.String(), "error=boom")
}

func TestHCLogBridgeForwardsToUnderlyingLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zlog.New(&buf)
	l.SetLevel(zlog.DebugLevel)

	hc := l.ToHCLog()
	hc.Info("clone3 unavailable, falling back", "errno", "ENOSYS")

	require.Contains(t, buf.String(), "clone3 unavailable")
}

func TestGetLevelListStringCoversEverySeverity(t *testing.T) {
	levels := zlog.GetLevelListString()
	require.Len(t, levels, 6)
	require.Contains(t, levels, zlog.DebugLevel.String())
	require.Contains(t, levels, zlog.PanicLevel.String())
}
