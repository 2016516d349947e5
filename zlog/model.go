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

package zlog

import (
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

type lgr struct {
	mu  sync.RWMutex
	log *logrus.Logger
	fld Fields
}

// New builds a Logger writing to out (os.Stdout if nil), colorized via
// fatih/color + mattn/go-colorable when out is a TTY, plain text
// otherwise - the same "only colorize a real terminal" rule nabbar-golib's
// hookstandard.go follows, minus the multi-destination hook machinery
// this package has no use for.
func New(out io.Writer) Logger {
	if out == nil {
		out = os.Stdout
	}

	l := logrus.New()
	l.SetOutput(resolveWriter(out))
	l.SetLevel(InfoLevel.Logrus())
	l.SetFormatter(newFormatter(isTTY(out)))

	return &lgr{log: l, fld: NewFields()}
}

// resolveWriter wraps os.Stdout/os.Stderr with go-colorable so ANSI codes
// survive on Windows consoles; any other io.Writer (a file, a socket, a
// bytes.Buffer in tests) passes through unchanged.
func resolveWriter(out io.Writer) io.Writer {
	switch out {
	case os.Stdout:
		return colorable.NewColorableStdout()
	case os.Stderr:
		return colorable.NewColorableStderr()
	default:
		return out
	}
}

func isTTY(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func (l *lgr) Write(p []byte) (int, error) {
	l.Entry(InfoLevel, string(p)).Log()
	return len(p), nil
}

func (l *lgr) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.SetLevel(lvl.Logrus())
}

func (l *lgr) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	switch l.log.GetLevel() {
	case logrus.DebugLevel:
		return DebugLevel
	case logrus.InfoLevel:
		return InfoLevel
	case logrus.WarnLevel:
		return WarnLevel
	case logrus.ErrorLevel:
		return ErrorLevel
	case logrus.FatalLevel:
		return FatalLevel
	case logrus.PanicLevel:
		return PanicLevel
	default:
		return NilLevel
	}
}

func (l *lgr) SetFields(f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fld = f
}

func (l *lgr) GetFields() Fields {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fld
}

func (l *lgr) Entry(lvl Level, message string) *Entry {
	e := newEntry(l.log, lvl, message)
	e.Fields = l.GetFields().Merge(e.Fields)
	return e
}

func (l *lgr) Debug(message string, fields Fields) {
	l.Entry(DebugLevel, message).WithFields(fields).Log()
}

func (l *lgr) Info(message string, fields Fields) {
	l.Entry(InfoLevel, message).WithFields(fields).Log()
}

func (l *lgr) Warning(message string, fields Fields) {
	l.Entry(WarnLevel, message).WithFields(fields).Log()
}

func (l *lgr) Error(message string, err error, fields Fields) {
	l.Entry(ErrorLevel, message).WithFields(fields).WithError(err).Log()
}

func (l *lgr) SetJWWLevel(lvl Level) {
	setJWWLevel(l, lvl)
}

func (l *lgr) ToHCLog() hclog.Logger {
	return &hclogBridge{l: l}
}

// WithFields merges fields into the entry in one call, for the Logger
// convenience methods above.
func (e *Entry) WithFields(fields Fields) *Entry {
	e.Fields = e.Fields.Merge(fields)
	return e
}
