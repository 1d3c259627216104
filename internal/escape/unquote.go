// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles escaping and unescaping of eJSON string text.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unescape decodes the text of an eJSON string whose enclosing quotation marks
// have already been removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// \u escape for a high surrogate followed by one for a low surrogate is
// combined into a single rune. Invalid escapes are replaced by the Unicode
// replacement rune. Unescape reports an error for an incomplete escape.
func Unescape(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/', '\'':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := hex4(src)
			if err != nil {
				return nil, err
			}
			src = rest
			if utf16.IsSurrogate(v) {
				if lo, tail, ok := lowSurrogate(src); ok {
					v = utf16.DecodeRune(v, lo)
					src = tail
				} else {
					v = utf8.RuneError
				}
			}
			dec = utf8.AppendRune(dec, v)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// hex4 decodes four hex digits from the front of src. An invalid digit yields
// the replacement rune.
func hex4(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	v, err := mem.ParseUint(src.SliceTo(4), 16, 32)
	if err != nil {
		return utf8.RuneError, src.SliceFrom(4), nil
	}
	return rune(v), src.SliceFrom(4), nil
}

// lowSurrogate reports whether src begins with a \u escape for a low
// surrogate, and if so returns its value and the remaining input.
func lowSurrogate(src mem.RO) (rune, mem.RO, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, false
	}
	v, rest, err := hex4(src.SliceFrom(2))
	if err != nil || v < 0xdc00 || v > 0xdfff {
		return 0, src, false
	}
	return v, rest, true
}
