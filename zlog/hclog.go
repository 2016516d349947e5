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
	"log"

	"github.com/hashicorp/go-hclog"
)

const hclogArgsField = "hclog.args"

// hclogBridge adapts a Logger to hclog.Logger, grounded on nabbar-golib's
// _hclog wrapper: every hclog call forwards to the equivalent Logger
// method, level checks compare against the Logger's current threshold,
// and args/name are threaded through as ordinary Fields entries instead
// of hclog's own state.
type hclogBridge struct {
	l Logger
}

func (h *hclogBridge) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		return
	case hclog.Trace, hclog.Debug:
		h.l.Debug(msg, argsToFields(args))
	case hclog.Info:
		h.l.Info(msg, argsToFields(args))
	case hclog.Warn:
		h.l.Warning(msg, argsToFields(args))
	case hclog.Error:
		h.l.Error(msg, nil, argsToFields(args))
	}
}

func argsToFields(args []interface{}) Fields {
	f := NewFields()
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		f = f.Add(key, args[i+1])
	}
	return f
}

func (h *hclogBridge) Trace(msg string, args ...interface{}) { h.l.Debug(msg, argsToFields(args)) }
func (h *hclogBridge) Debug(msg string, args ...interface{}) { h.l.Debug(msg, argsToFields(args)) }
func (h *hclogBridge) Info(msg string, args ...interface{})  { h.l.Info(msg, argsToFields(args)) }
func (h *hclogBridge) Warn(msg string, args ...interface{})  { h.l.Warning(msg, argsToFields(args)) }
func (h *hclogBridge) Error(msg string, args ...interface{}) {
	h.l.Error(msg, nil, argsToFields(args))
}

func (h *hclogBridge) IsTrace() bool { return h.l.GetLevel() >= DebugLevel }
func (h *hclogBridge) IsDebug() bool { return h.l.GetLevel() >= DebugLevel }
func (h *hclogBridge) IsInfo() bool  { return h.l.GetLevel() >= InfoLevel }
func (h *hclogBridge) IsWarn() bool  { return h.l.GetLevel() >= WarnLevel }
func (h *hclogBridge) IsError() bool { return h.l.GetLevel() >= ErrorLevel }

func (h *hclogBridge) ImpliedArgs() []interface{} {
	if a, ok := h.l.GetFields()[hclogArgsField]; ok {
		if s, ok := a.([]interface{}); ok {
			return s
		}
	}
	return nil
}

func (h *hclogBridge) With(args ...interface{}) hclog.Logger {
	h.l.SetFields(h.l.GetFields().Add(hclogArgsField, args))
	return h
}

func (h *hclogBridge) Name() string {
	if a, ok := h.l.GetFields()["hclog.name"]; ok {
		if s, ok := a.(string); ok {
			return s
		}
	}
	return ""
}

func (h *hclogBridge) Named(name string) hclog.Logger {
	h.l.SetFields(h.l.GetFields().Add("hclog.name", name))
	return h
}

func (h *hclogBridge) ResetNamed(name string) hclog.Logger {
	return h.Named(name)
}

func (h *hclogBridge) SetLevel(level hclog.Level) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		h.l.SetLevel(NilLevel)
	case hclog.Trace, hclog.Debug:
		h.l.SetLevel(DebugLevel)
	case hclog.Info:
		h.l.SetLevel(InfoLevel)
	case hclog.Warn:
		h.l.SetLevel(WarnLevel)
	case hclog.Error:
		h.l.SetLevel(ErrorLevel)
	}
}

func (h *hclogBridge) GetLevel() hclog.Level {
	switch h.l.GetLevel() {
	case DebugLevel:
		return hclog.Debug
	case InfoLevel:
		return hclog.Info
	case WarnLevel:
		return hclog.Warn
	case ErrorLevel, FatalLevel, PanicLevel:
		return hclog.Error
	default:
		return hclog.Off
	}
}

func (h *hclogBridge) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	return log.New(h.StandardWriter(opts), "", 0)
}

func (h *hclogBridge) StandardWriter(_ *hclog.StandardLoggerOptions) io.Writer {
	return h.l
}
