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
	"runtime"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	FieldTime    = "time"
	FieldLevel   = "level"
	FieldCaller  = "caller"
	FieldMessage = "message"
	FieldError   = "error"
)

// Entry is one log record in progress: level, timestamp, caller location
// and fields, mirroring the shape of nabbar-golib's logger.Entry narrowed
// to what zygote lifecycle diagnostics need (no gin context, no access-log
// mode).
type Entry struct {
	log     *logrus.Logger
	Level   Level
	Time    time.Time
	Caller  string
	Message string
	Err     error
	Fields  Fields
}

func newEntry(log *logrus.Logger, lvl Level, message string) *Entry {
	return &Entry{
		log:     log,
		Level:   lvl,
		Time:    time.Now(),
		Caller:  captureCaller(3),
		Message: message,
		Fields:  NewFields(),
	}
}

func captureCaller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return file + ":" + strconv.Itoa(line)
}

// WithField adds one field to the entry and returns it for chaining.
func (e *Entry) WithField(key string, val interface{}) *Entry {
	e.Fields = e.Fields.Add(key, val)
	return e
}

// WithError attaches an error to the entry; Log renders it under
// FieldError.
func (e *Entry) WithError(err error) *Entry {
	e.Err = err
	return e
}

// Log emits the entry through the underlying logrus.Logger. A nil
// underlying logger (e.g. a Logger built without New) makes Log a no-op
// rather than a panic.
func (e *Entry) Log() {
	if e.log == nil || e.Level == NilLevel {
		return
	}

	tag := e.Fields.Add(FieldCaller, e.Caller)
	if e.Err != nil {
		tag = tag.Add(FieldError, e.Err.Error())
	}

	e.log.WithFields(tag.Logrus()).WithTime(e.Time).Log(e.Level.Logrus(), e.Message)
}
