// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package variant

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"math"
	"strconv"

	"github.com/creachadair/ejtree/internal/escape"

	"go4.org/mem"
)

// String renders v in eJSON notation. Native values render as <native>, and
// the undefined value as undefined.
func (v *Value) String() string { return string(v.appendEJSON(nil)) }

func (v *Value) appendEJSON(buf []byte) []byte {
	switch v.kind {
	case Undefined:
		return append(buf, "undefined"...)
	case Null:
		return append(buf, "null"...)
	case Boolean:
		return strconv.AppendBool(buf, v.b)
	case Number:
		return strconv.AppendFloat(buf, v.f, 'g', -1, 64)
	case LongInt:
		return append(strconv.AppendInt(buf, v.i, 10), 'L')
	case ULongInt:
		return append(strconv.AppendUint(buf, v.u, 10), "UL"...)
	case LongDouble:
		return append(strconv.AppendFloat(buf, v.f, 'g', -1, 64), "FL"...)
	case String:
		return appendQuoted(buf, v.s)
	case ByteSequence:
		return hex.AppendEncode(append(buf, "bx"...), v.p)
	case Object:
		buf = append(buf, '{')
		for i, key := range v.keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(appendQuoted(buf, key), ':')
			buf = v.members[key].appendEJSON(buf)
		}
		return append(buf, '}')
	case Array, Set:
		buf = append(buf, '[')
		for i, elt := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = elt.appendEJSON(buf)
		}
		return append(buf, ']')
	}
	return append(buf, "<native>"...)
}

func appendQuoted(buf []byte, s string) []byte {
	buf = append(buf, '"')
	buf = escape.AppendEscaped(buf, mem.S(s))
	return append(buf, '"')
}

// MarshalJSON encodes v as JSON. Integer kinds encode as JSON numbers, byte
// sequences as base64 strings, sets as arrays, and undefined and native values
// as null. Non-finite numbers cannot be encoded.
func (v *Value) MarshalJSON() ([]byte, error) { return v.appendJSON(nil) }

func (v *Value) appendJSON(buf []byte) ([]byte, error) {
	switch v.kind {
	case Undefined, Null, Native:
		return append(buf, "null"...), nil
	case Boolean:
		return strconv.AppendBool(buf, v.b), nil
	case Number, LongDouble:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return nil, errors.New("variant: cannot encode non-finite number")
		}
		return strconv.AppendFloat(buf, v.f, 'g', -1, 64), nil
	case LongInt:
		return strconv.AppendInt(buf, v.i, 10), nil
	case ULongInt:
		return strconv.AppendUint(buf, v.u, 10), nil
	case String:
		return appendQuoted(buf, v.s), nil
	case ByteSequence:
		buf = append(buf, '"')
		buf = base64.StdEncoding.AppendEncode(buf, v.p)
		return append(buf, '"'), nil
	case Object:
		buf = append(buf, '{')
		for i, key := range v.keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(appendQuoted(buf, key), ':')
			var err error
			if buf, err = v.members[key].appendJSON(buf); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	default: // Array, Set
		buf = append(buf, '[')
		for i, elt := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = elt.appendJSON(buf); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	}
}
