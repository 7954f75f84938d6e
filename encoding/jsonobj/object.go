// Package jsonobj writes flat JSON objects whose values are strings or null.
//
// Entries are serialized straight into a strbuf.Builder in insertion order;
// nothing is kept per entry. Strings are treated as opaque bytes: only the
// quote, the backslash and control bytes are escaped, everything else
// (including any UTF-8, valid or not) is copied verbatim.
package jsonobj

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/vizee/urlparts/encoding/strbuf"
)

// Terminated as a value length means the value ends at its first NUL byte,
// or at the end of the slice if it has none.
const Terminated = -1

// Object is a flat JSON object under construction. The zero value is an empty
// object.
type Object struct {
	b    strbuf.Builder
	more bool
}

func New() *Object {
	return &Object{}
}

func (o *Object) next() {
	if !o.more {
		o.more = true
		o.b.AppendByte('{')
	} else {
		o.b.AppendByte(',')
	}
}

// AddEntry appends "key":value. key must not be nil and is read up to its
// first NUL byte. A nil value is written as null. n is the value length in
// bytes, or Terminated.
func (o *Object) AddEntry(key []byte, value []byte, n int) {
	if key == nil {
		panic(errors.AssertionFailedf("jsonobj: nil key"))
	}
	if value != nil {
		switch {
		case n == Terminated:
			value = cutNul(value)
		case n >= 0 && n <= len(value):
			value = value[:n]
		default:
			panic(errors.AssertionFailedf("jsonobj: invalid value length %d", n))
		}
	}

	o.next()
	appendQuoted(&o.b, bytesView(cutNul(key)))
	o.b.AppendByte(':')
	if value != nil {
		appendQuoted(&o.b, bytesView(value))
	} else {
		o.b.AppendString("null")
	}
}

func (o *Object) Add(key string, value string) {
	o.next()
	appendQuoted(&o.b, key)
	o.b.AppendByte(':')
	appendQuoted(&o.b, value)
}

func (o *Object) AddNull(key string) {
	o.next()
	appendQuoted(&o.b, key)
	o.b.AppendString(":null")
}

// AddOptional writes null when value is nil.
func (o *Object) AddOptional(key string, value *string) {
	if value != nil {
		o.Add(key, *value)
	} else {
		o.AddNull(key)
	}
}

func (o *Object) close() {
	if !o.more {
		o.b.AppendByte('{')
	}
	o.b.AppendByte('}')
	o.more = false
}

// Finalize closes the object and returns its text. o is empty afterwards.
func (o *Object) Finalize() string {
	o.close()
	return o.b.ReleaseString()
}

// FinalizeBytes is Finalize handing over the builder's storage, which holds a
// NUL byte right after the returned text.
func (o *Object) FinalizeBytes() []byte {
	o.close()
	return o.b.Release()
}

func (o *Object) Free() {
	o.b.Free()
	o.more = false
}

func cutNul(s []byte) []byte {
	if i := bytes.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}
