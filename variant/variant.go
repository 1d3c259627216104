// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package variant implements a dynamic value type with ordered objects,
// arrays, sets, typed numbers, byte sequences and native entities.
//
// Container values support post-listeners, which are called after a
// mutation has been applied. Listeners are registered for one of the
// operations Grow, Shrink, or Change:
//
//	v := variant.NewObject()
//	l, err := v.RegisterPostListener(variant.Grow, func(src *variant.Value, op variant.Op, args []*variant.Value) bool {
//	   log.Printf("added key %s", args[0].Str())
//	   return true
//	})
//
// Values are shared by pointer. A value stored in several containers is the
// same value in all of them, so a mutation through one reference is visible
// through the others.
package variant

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotFound is reported when a key or element is not present.
	ErrNotFound = errors.New("not found")

	// ErrInvalidType is reported when an operation is applied to a value of
	// the wrong kind.
	ErrInvalidType = errors.New("invalid value type")
)

// Kind is the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Undefined Kind = iota
	Null
	Boolean
	Number
	LongInt
	ULongInt
	LongDouble
	String
	ByteSequence
	Object
	Array
	Set
	Native
)

var kindStr = [...]string{
	Undefined:    "undefined",
	Null:         "null",
	Boolean:      "boolean",
	Number:       "number",
	LongInt:      "longint",
	ULongInt:     "ulongint",
	LongDouble:   "longdouble",
	String:       "string",
	ByteSequence: "bsequence",
	Object:       "object",
	Array:        "array",
	Set:          "set",
	Native:       "native",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// A Value is a dynamic value. The zero value is not ready for use; construct
// values with the New functions.
type Value struct {
	kind Kind

	b bool
	f float64
	i int64
	u uint64
	s string
	p []byte

	keys    []string          // object: key order
	members map[string]*Value // object: key → value
	items   []*Value          // array, set

	native any

	listeners []*Listener
}

var undefined = &Value{kind: Undefined}

// Undef returns the undefined value. All undefined values are identical.
func Undef() *Value { return undefined }

// NewNull returns a new null value.
func NewNull() *Value { return &Value{kind: Null} }

// NewBool returns a new Boolean value.
func NewBool(b bool) *Value { return &Value{kind: Boolean, b: b} }

// NewNumber returns a new floating-point number value.
func NewNumber(f float64) *Value { return &Value{kind: Number, f: f} }

// NewLongInt returns a new signed 64-bit integer value.
func NewLongInt(z int64) *Value { return &Value{kind: LongInt, i: z} }

// NewULongInt returns a new unsigned 64-bit integer value.
func NewULongInt(z uint64) *Value { return &Value{kind: ULongInt, u: z} }

// NewLongDouble returns a new long double value. Long doubles are represented
// with float64 precision.
func NewLongDouble(f float64) *Value { return &Value{kind: LongDouble, f: f} }

// NewString returns a new string value.
func NewString(s string) *Value { return &Value{kind: String, s: s} }

// NewBytes returns a new byte sequence value holding a copy of p.
func NewBytes(p []byte) *Value { return &Value{kind: ByteSequence, p: slices.Clone(p)} }

// NewNative returns a new native value wrapping entity. The entity may
// implement any of the Matcher, ObserveHook, and Releaser interfaces.
func NewNative(entity any) *Value { return &Value{kind: Native, native: entity} }

// NewObject returns a new empty object.
func NewObject() *Value { return &Value{kind: Object, members: make(map[string]*Value)} }

// NewArray returns a new array containing the given values.
func NewArray(vs ...*Value) *Value { return &Value{kind: Array, items: slices.Clone(vs)} }

// NewSet returns a new set containing the distinct elements of vs.
func NewSet(vs ...*Value) *Value {
	s := &Value{kind: Set}
	for _, v := range vs {
		s.addUnique(v)
	}
	return s
}

// Kind reports the kind of v.
func (v *Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an object, array, or set.
func (v *Value) IsContainer() bool {
	switch v.kind {
	case Object, Array, Set:
		return true
	}
	return false
}

// Bool returns the value of a Boolean, or false for other kinds.
func (v *Value) Bool() bool { return v.kind == Boolean && v.b }

// Float returns the numeric value of v as a float64, or 0 if v is not
// numeric.
func (v *Value) Float() float64 {
	switch v.kind {
	case Number, LongDouble:
		return v.f
	case LongInt:
		return float64(v.i)
	case ULongInt:
		return float64(v.u)
	}
	return 0
}

// Int returns the value of a LongInt, or 0 for other kinds.
func (v *Value) Int() int64 { return v.i }

// Uint returns the value of a ULongInt, or 0 for other kinds.
func (v *Value) Uint() uint64 { return v.u }

// Str returns the contents of a String, or "" for other kinds.
func (v *Value) Str() string { return v.s }

// Bytes returns the contents of a byte sequence. The caller must not modify
// the returned slice.
func (v *Value) Bytes() []byte { return v.p }

// Entity returns the entity wrapped by a Native value, or nil.
func (v *Value) Entity() any { return v.native }

// Len reports the number of members of an object, or elements of an array or
// set. It returns 0 for other kinds.
func (v *Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.keys)
	case Array, Set:
		return len(v.items)
	case String:
		return len(v.s)
	case ByteSequence:
		return len(v.p)
	}
	return 0
}

// Release drops the contents of a container, or notifies the entity of a
// native value that implements Releaser. Values held by a container are not
// released, since they may be shared. Listeners are not called.
func (v *Value) Release() {
	switch v.kind {
	case Object:
		v.keys, v.members = nil, make(map[string]*Value)
	case Array, Set:
		v.items = nil
	case Native:
		if r, ok := v.native.(Releaser); ok {
			r.OnRelease()
		}
	}
	v.listeners = nil
}
