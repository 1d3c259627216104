// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree

import (
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// A TempBuffer is an append-only accumulator for the text of a token under
// construction. The zero value is ready for use.
type TempBuffer struct {
	buf []byte
}

// Reset discards the contents of b, retaining its storage.
func (b *TempBuffer) Reset() { b.buf = b.buf[:0] }

// Len reports the number of bytes written to b, which is also its write
// offset.
func (b *TempBuffer) Len() int { return len(b.buf) }

// IsEmpty reports whether b has no content.
func (b *TempBuffer) IsEmpty() bool { return len(b.buf) == 0 }

// Bytes returns a view of the contents of b. The view is only valid until the
// next modification of b.
func (b *TempBuffer) Bytes() []byte { return b.buf }

// Dup returns a copy of the contents of b owned by the caller.
func (b *TempBuffer) Dup() []byte { return append([]byte(nil), b.buf...) }

// String returns a copy of the contents of b as a string.
func (b *TempBuffer) String() string { return string(b.buf) }

// Equal reports whether the contents of b are exactly s.
func (b *TempBuffer) Equal(s string) bool { return mem.B(b.buf).EqualString(s) }

// HasSuffix reports whether the contents of b end with s.
func (b *TempBuffer) HasSuffix(s string) bool { return mem.HasSuffix(mem.B(b.buf), mem.S(s)) }

// LastByte returns the last byte written to b, or 0 if b is empty.
func (b *TempBuffer) LastByte() byte {
	if len(b.buf) == 0 {
		return 0
	}
	return b.buf[len(b.buf)-1]
}

// Trim removes first bytes from the front and last bytes from the end of b.
// If b is shorter than first+last, it is emptied.
func (b *TempBuffer) Trim(first, last int) {
	if first+last >= len(b.buf) {
		b.Reset()
		return
	}
	n := copy(b.buf, b.buf[first:len(b.buf)-last])
	b.buf = b.buf[:n]
}

// WriteRune appends the UTF-8 encoding of r to b.
func (b *TempBuffer) WriteRune(r rune) { b.buf = utf8.AppendRune(b.buf, r) }

// WriteByte appends c to b. It never fails.
func (b *TempBuffer) WriteByte(c byte) error { b.buf = append(b.buf, c); return nil }

// WriteString appends s to b.
func (b *TempBuffer) WriteString(s string) { b.buf = append(b.buf, s...) }

// Write appends p to b. It never fails.
func (b *TempBuffer) Write(p []byte) (int, error) { b.buf = append(b.buf, p...); return len(p), nil }

// WriteTo copies the contents of b to w, leaving b unchanged.
func (b *TempBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}
