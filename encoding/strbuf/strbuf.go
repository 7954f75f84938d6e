// Package strbuf implements an append-only byte buffer with a fixed,
// predictable growth policy and an explicit hand-off of its storage.
package strbuf

import (
	"math"

	"github.com/cockroachdb/errors"
)

const maxInt = math.MaxInt

// Builder accumulates bytes. The zero value is an empty builder with no
// storage.
//
// Builder never shrinks and grows to 2*cap+need whenever an append does not
// fit. After Release or Free the builder holds no storage and may be reused as
// if it were new.
type Builder struct {
	buf []byte
}

// New returns a builder with n zeroed bytes of capacity preallocated. n <= 0
// allocates nothing.
func New(n int) *Builder {
	b := &Builder{}
	if n > 0 {
		b.buf = make([]byte, 0, n)
	}
	return b
}

func (b *Builder) Len() int {
	return len(b.buf)
}

func (b *Builder) Cap() int {
	return cap(b.buf)
}

// Bytes returns the content written so far. The slice aliases the builder's
// storage and is only valid until the next append.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// String returns a copy of the content written so far.
func (b *Builder) String() string {
	return string(b.buf)
}

// Reserve makes sure at least n more bytes can be appended without growing.
func (b *Builder) Reserve(n int) {
	if n > 0 && cap(b.buf)-len(b.buf) < n {
		b.grow(n)
	}
}

func (b *Builder) grow(need int) {
	if need <= 0 {
		panic(errors.AssertionFailedf("strbuf: grow by %d bytes", need))
	}
	oldCap := cap(b.buf)
	if capOverflows(oldCap, need) {
		panic(errors.AssertionFailedf("strbuf: capacity overflow growing %d by %d", oldCap, need))
	}
	// make zeroes the whole new region, including the tail past len.
	newbuf := make([]byte, len(b.buf), oldCap*2+need)
	copy(newbuf, b.buf)
	b.buf = newbuf
}

// capOverflows reports whether 2*oldCap+need exceeds maxInt.
func capOverflows(oldCap int, need int) bool {
	return oldCap > (maxInt-need)/2
}

func (b *Builder) AppendByte(c byte) {
	if len(b.buf) == cap(b.buf) {
		b.grow(1)
	}
	b.buf = append(b.buf, c)
}

// AppendBytes appends s verbatim. s may alias the builder's own storage.
func (b *Builder) AppendBytes(s []byte) {
	if len(s) == 0 {
		return
	}
	if cap(b.buf)-len(b.buf) < len(s) {
		b.grow(len(s))
	}
	b.buf = append(b.buf, s...)
}

func (b *Builder) AppendString(s string) {
	if len(s) == 0 {
		return
	}
	if cap(b.buf)-len(b.buf) < len(s) {
		b.grow(len(s))
	}
	b.buf = append(b.buf, s...)
}

// Release terminates the content with a NUL byte and hands the storage over
// to the caller. The returned slice holds the content only; the terminator
// sits right after it in the same backing array. The builder is left empty
// with no storage.
func (b *Builder) Release() []byte {
	b.AppendByte(0)
	buf := b.buf[:len(b.buf)-1]
	b.buf = nil
	return buf
}

// ReleaseString is Release without the copy into a string.
func (b *Builder) ReleaseString() string {
	return asString(b.Release())
}

// Free drops the storage without producing output.
func (b *Builder) Free() {
	b.buf = nil
}
