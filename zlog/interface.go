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

	"github.com/hashicorp/go-hclog"
)

// Logger is the diagnostics sink every zygote subsystem logs through.
// It is also an io.Writer so it can be handed to jwalterweatherman's
// SetLogOutput (see SetJWWLevel) or to hclog's StandardWriter bridge.
type Logger interface {
	io.Writer

	SetLevel(lvl Level)
	GetLevel() Level

	SetFields(f Fields)
	GetFields() Fields

	Debug(message string, fields Fields)
	Info(message string, fields Fields)
	Warning(message string, fields Fields)
	Error(message string, err error, fields Fields)

	// Entry returns a fresh Entry at the given level, for callers that
	// want to build up fields before emitting (SetGinContext-style
	// chaining in nabbar-golib's logger.Entry, minus the gin dependency
	// this package has no use for).
	Entry(lvl Level, message string) *Entry

	// SetJWWLevel bridges github.com/spf13/jwalterweatherman (the Hugo/
	// Cobra/Viper logging facade) into this Logger.
	SetJWWLevel(lvl Level)

	// ToHCLog adapts this Logger to hashicorp/go-hclog, for embedding in
	// an hclog-based host the way nabbar-golib's hclog.go does.
	ToHCLog() hclog.Logger
}
