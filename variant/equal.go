// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package variant

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// Equal reports whether a and b are equal values. Values of different kinds
// are unequal. Objects are equal if they have the same keys with equal
// values, regardless of order; sets are equal if they have equal elements,
// regardless of order. Native values are equal only to themselves.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	} else if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Undefined, Null:
		return true
	case Boolean:
		return a.b == b.b
	case Number, LongDouble:
		return a.f == b.f
	case LongInt:
		return a.i == b.i
	case ULongInt:
		return a.u == b.u
	case String:
		return a.s == b.s
	case ByteSequence:
		return bytes.Equal(a.p, b.p)
	case Object:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for key, av := range a.members {
			if bv, ok := b.members[key]; !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i, elt := range a.items {
			if !Equal(elt, b.items[i]) {
				return false
			}
		}
		return true
	case Set:
		if len(a.items) != len(b.items) {
			return false
		}
	nextElt:
		for _, elt := range a.items {
			for _, other := range b.items {
				if Equal(elt, other) {
					continue nextElt
				}
			}
			return false
		}
		return true
	}
	return false
}

// CastToULongInt converts v to an unsigned integer. Numbers are truncated
// toward zero; strings are parsed as unsigned integers in any base accepted
// by strconv.ParseUint with base 0. It reports false if v is negative, not
// finite, out of range, or of a kind that does not convert.
func CastToULongInt(v *Value) (uint64, bool) {
	switch v.kind {
	case Number, LongDouble:
		if math.IsNaN(v.f) || v.f < 0 || v.f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(v.f), true
	case LongInt:
		if v.i < 0 {
			return 0, false
		}
		return uint64(v.i), true
	case ULongInt:
		return v.u, true
	case String:
		u, err := strconv.ParseUint(strings.TrimSpace(v.s), 0, 64)
		return u, err == nil
	}
	return 0, false
}
