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
	"bytes"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// levelFormatter is a logrus.Formatter that tints the level tag per
// entry, the console coloring nabbar-golib's hookstandard.go gets for free
// from logrus.TextFormatter's ForceColors - done explicitly here with
// fatih/color so the same tinting also applies when building a one-line
// "[LEVEL] timestamp message key=val ..." shape rather than logrus's own layout.
type levelFormatter struct {
	color bool
}

func newFormatter(useColor bool) logrus.Formatter {
	return &levelFormatter{color: useColor}
}

func (f *levelFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer

	tag := levelTag(e.Level)
	if f.color {
		tag = colorFor(e.Level).Sprint(tag)
	}

	buf.WriteByte('[')
	buf.WriteString(tag)
	buf.WriteString("] ")
	buf.WriteString(e.Time.Format("2006-01-02T15:04:05.000Z07:00"))
	buf.WriteString(" ")
	buf.WriteString(e.Message)

	for k, v := range e.Data {
		buf.WriteString(" ")
		buf.WriteString(k)
		buf.WriteString("=")
		buf.WriteString(toString(v))
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func levelTag(l logrus.Level) string {
	switch l {
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.ErrorLevel:
		return "ERROR"
	case logrus.FatalLevel:
		return "FATAL"
	case logrus.PanicLevel:
		return "PANIC"
	default:
		return "?"
	}
}

func colorFor(l logrus.Level) *color.Color {
	switch l {
	case logrus.DebugLevel:
		return color.New(color.FgCyan)
	case logrus.InfoLevel:
		return color.New(color.FgGreen)
	case logrus.WarnLevel:
		return color.New(color.FgYellow)
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New()
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
