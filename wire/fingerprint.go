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

package wire

import (
	"crypto/md5"
	"reflect"
	"sync"
)

// Fingerprint is the 16-byte runtime type identifier written into every
// channel frame. It is opaque and process-local only (see DESIGN.md's open
// question on stability): derived from a type's fully qualified name, not
// from its memory layout, so it is stable for the lifetime of one running
// binary but carries no cross-build guarantee.
type Fingerprint [16]byte

var fingerprintCache sync.Map // map[reflect.Type]Fingerprint

// FingerprintOf computes (or retrieves from cache) the Fingerprint of v's
// concrete type.
func FingerprintOf(v any) Fingerprint {
	return fingerprintOfType(reflect.TypeOf(v))
}

// FingerprintOfType is the generic-friendly entry point used by pipe.Send,
// pipe.Receive and pipe.Decode, which know T even when the value itself is a nil interface or
// a zero value whose reflect.TypeOf would otherwise be ambiguous.
func FingerprintOfType[T any]() Fingerprint {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// T is an interface type or a nil pointer with no dynamic value;
		// fall back to reflect.TypeOf((*T)(nil)).Elem(), which always
		// resolves to the static type.
		t = reflect.TypeOf((*T)(nil)).Elem()
	}
	return fingerprintOfType(t)
}

func fingerprintOfType(t reflect.Type) Fingerprint {
	if cached, ok := fingerprintCache.Load(t); ok {
		return cached.(Fingerprint)
	}
	name := typeName(t)
	fp := Fingerprint(md5.Sum([]byte(name)))
	fingerprintCache.Store(t, fp)
	return fp
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.Name()
	}
	return t.String()
}
