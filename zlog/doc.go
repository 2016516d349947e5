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

// Package zlog is the structured logging facade used internally for
// zygote lifecycle diagnostics: child created, a warning when Init runs
// with other goroutines already live, a failed call (task panic or returned
// error), a child closed, and - when enabled - the child loop's exit cause.
// It is not exposed as a pluggable logging
// interface for a host application - scope is deliberately limited to
// this library's own diagnostics.
//
// The engine is github.com/sirupsen/logrus. Two bridges let a host that
// already standardized on a different logging facade still see these
// messages: ToHCLog adapts a Logger to hashicorp/go-hclog (the way a
// Vault/Consul-style host embeds third-party loggers), and SetJWWLevel
// redirects spf13/jwalterweatherman (the logging library Hugo/Cobra/Viper
// use) into the same sink. Console output is colorized per level with
// fatih/color + mattn/go-colorable, and only when the sink is a TTY.
package zlog
