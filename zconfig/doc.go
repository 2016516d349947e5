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

// Package zconfig loads the handful of knobs a zygote host plausibly
// tunes at runtime: the preferred process-creation strategy, the payload
// read limit, the RLIMIT_NOFILE target and the log level.
//
// Unlike the much larger component-registry config system this package is
// distilled from, zconfig has no plugin surface: one Config struct, one
// Loader that knows how to fill it from environment variables
// (ZYGOTE_*, via viper's AutomaticEnv), an optional config file resolved
// either explicitly or under ~/.config/zygote/zygote.yaml (via
// mitchellh/go-homedir), and an optional file watch (via the fsnotify
// dependency viper already pulls in) that hot-reloads only the log level -
// the one field it is safe to change on a live, already-running zygote
// host.
package zconfig
