// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree

import (
	"io"

	"github.com/creachadair/ejtree/internal/escape"

	"go4.org/mem"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Quote encodes src as a double-quoted eJSON string value. The contents are
// escaped and double quotation marks are added.
func Quote(src string) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = escape.AppendEscaped(buf, mem.S(src))
	return string(append(buf, '"'))
}

// Unescape decodes the text of a key or string token as reported by the
// scanner, replacing escape sequences with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unescape
// reports an error for an incomplete escape sequence.
func Unescape(text []byte) ([]byte, error) { return escape.Unescape(mem.B(text)) }

// UTF32Reader returns a reader that decodes UTF-32 input from r into UTF-8,
// suitable for use with NewScanner. A leading byte-order mark overrides the
// bigEndian setting.
func UTF32Reader(r io.Reader, bigEndian bool) io.Reader {
	e := utf32.LittleEndian
	if bigEndian {
		e = utf32.BigEndian
	}
	return utf32.UTF32(e, utf32.UseBOM).NewDecoder().Reader(r)
}
