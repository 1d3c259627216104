// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package vcm

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/ejtree/internal/escape"
	"github.com/creachadair/ejtree/variant"

	"go4.org/mem"
)

// Eval converts the tree rooted at n into a variant value. Escapes in keys
// and strings are decoded, numeric suffixes select the kind of number, and
// byte sequences are decoded from hex, binary, or base64.
func Eval(n *Node) (*variant.Value, error) {
	switch n.Kind {
	case Object:
		obj := variant.NewObject()
		for i := 0; i < len(n.children); i += 2 {
			key := n.children[i]
			if key.Kind != Key || i+1 >= len(n.children) {
				return nil, fmt.Errorf("vcm: malformed object member at offset %d", i)
			}
			name, err := escape.Unescape(mem.S(key.Text))
			if err != nil {
				return nil, fmt.Errorf("vcm: key %q: %w", key.Text, err)
			}
			v, err := Eval(n.children[i+1])
			if err != nil {
				return nil, err
			}
			if err := obj.Set(string(name), v); err != nil {
				return nil, err
			}
		}
		return obj, nil

	case Array:
		arr := variant.NewArray()
		for _, c := range n.children {
			v, err := Eval(c)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil

	case String:
		s, err := escape.Unescape(mem.S(n.Text))
		if err != nil {
			return nil, fmt.Errorf("vcm: string %q: %w", n.Text, err)
		}
		return variant.NewString(string(s)), nil

	case Null:
		return variant.NewNull(), nil

	case Boolean:
		return variant.NewBool(n.Text == "true"), nil

	case Number:
		f, err := strconv.ParseFloat(strings.TrimSuffix(n.Text, "F"), 64)
		if err != nil {
			return nil, fmt.Errorf("vcm: invalid number %q: %w", n.Text, err)
		}
		return variant.NewNumber(f), nil

	case LongInt:
		z, err := strconv.ParseInt(strings.TrimSuffix(n.Text, "L"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vcm: invalid long integer %q: %w", n.Text, err)
		}
		return variant.NewLongInt(z), nil

	case ULongInt:
		z, err := strconv.ParseUint(strings.TrimSuffix(n.Text, "UL"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vcm: invalid unsigned long integer %q: %w", n.Text, err)
		}
		return variant.NewULongInt(z), nil

	case LongDouble:
		f, err := strconv.ParseFloat(strings.TrimSuffix(n.Text, "FL"), 64)
		if err != nil {
			return nil, fmt.Errorf("vcm: invalid long double %q: %w", n.Text, err)
		}
		return variant.NewLongDouble(f), nil

	case ByteSequence:
		p, err := DecodeBytes(n.Text)
		if err != nil {
			return nil, err
		}
		return variant.NewBytes(p), nil

	case Key:
		return nil, errors.New("vcm: cannot evaluate a key outside its object")
	}
	return nil, fmt.Errorf("vcm: cannot evaluate %v node", n.Kind)
}

// DecodeBytes decodes the text of a byte sequence literal: bx followed by hex
// digits, bb followed by binary digits in groups of 8 (dots are ignored), or
// b64 followed by base64 in the standard or URL-safe alphabet.
func DecodeBytes(text string) ([]byte, error) {
	switch {
	case strings.HasPrefix(text, "bx"):
		p, err := hex.DecodeString(text[2:])
		if err != nil {
			return nil, fmt.Errorf("vcm: invalid hex byte sequence %q: %w", text, err)
		}
		return p, nil

	case strings.HasPrefix(text, "bb"):
		bits := strings.ReplaceAll(text[2:], ".", "")
		if len(bits)%8 != 0 {
			return nil, fmt.Errorf("vcm: binary byte sequence %q is not a whole number of bytes", text)
		}
		p := make([]byte, len(bits)/8)
		for i := range p {
			b, err := strconv.ParseUint(bits[8*i:8*i+8], 2, 8)
			if err != nil {
				return nil, fmt.Errorf("vcm: invalid binary byte sequence %q: %w", text, err)
			}
			p[i] = byte(b)
		}
		return p, nil

	case strings.HasPrefix(text, "b64"):
		data := text[3:]
		enc := base64.StdEncoding
		if strings.ContainsAny(data, "-_") {
			enc = base64.URLEncoding
		}
		if !strings.HasSuffix(data, "=") && len(data)%4 != 0 {
			enc = enc.WithPadding(base64.NoPadding)
		}
		p, err := enc.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("vcm: invalid base64 byte sequence %q: %w", text, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("vcm: unknown byte sequence format %q", text)
}
