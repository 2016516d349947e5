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

package zconfig

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"
)

// Validate checks c's field constraints with go-playground/validator,
// the way nabbar-golib validates its own component config structs, instead
// of a hand-rolled chain of if statements.
func (c Config) Validate() error {
	if err := libval.New().Struct(c); err != nil {
		if _, ok := err.(*libval.InvalidValidationError); ok {
			return fmt.Errorf("zconfig: %w", err)
		}

		var msg string
		for _, fe := range err.(libval.ValidationErrors) {
			msg += fmt.Sprintf("field %q fails constraint %q; ", fe.Namespace(), fe.ActualTag())
		}
		return fmt.Errorf("zconfig: invalid configuration: %s", msg)
	}
	return nil
}

// Merge overlays non-zero fields of o onto c and returns the result,
// mirroring nabbar-golib's Options.Merge shape but without the inheritance
// machinery this package doesn't need.
func (c Config) Merge(o Config) Config {
	out := c

	if o.ProcessStrategy != "" {
		out.ProcessStrategy = o.ProcessStrategy
	}
	if o.ReadLimit != 0 {
		out.ReadLimit = o.ReadLimit
	}
	if o.RlimitNoFile != 0 {
		out.RlimitNoFile = o.RlimitNoFile
	}
	if o.SCMBatchSize != 0 {
		out.SCMBatchSize = o.SCMBatchSize
	}
	if o.LogLevel != "" {
		out.LogLevel = o.LogLevel
	}

	return out
}
