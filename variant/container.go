// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package variant

import (
	"fmt"
	"iter"
	"slices"
)

// Get returns the value of the member of object v with the given key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != Object {
		return nil, false
	}
	m, ok := v.members[key]
	return m, ok
}

// Set sets the value of the member of object v with the given key. A new key
// is added after the existing keys and fires Grow; replacing an existing
// member fires Change.
func (v *Value) Set(key string, val *Value) error {
	if v.kind != Object {
		return fmt.Errorf("set %q: %w", key, ErrInvalidType)
	} else if val == nil {
		return fmt.Errorf("set %q: nil value", key)
	}
	old, ok := v.members[key]
	v.members[key] = val
	if ok {
		v.notify(Change, NewString(key), old, val)
	} else {
		v.keys = append(v.keys, key)
		v.notify(Grow, NewString(key), val)
	}
	return nil
}

// Remove removes the member of object v with the given key, firing Shrink.
// It reports ErrNotFound if there is no such member.
func (v *Value) Remove(key string) error {
	if v.kind != Object {
		return fmt.Errorf("remove %q: %w", key, ErrInvalidType)
	}
	old, ok := v.members[key]
	if !ok {
		return fmt.Errorf("remove %q: %w", key, ErrNotFound)
	}
	delete(v.members, key)
	v.keys = slices.DeleteFunc(v.keys, func(s string) bool { return s == key })
	v.notify(Shrink, NewString(key), old)
	return nil
}

// Keys returns the keys of object v in insertion order.
func (v *Value) Keys() []string { return slices.Clone(v.keys) }

// Members returns an iterator over the members of object v in insertion
// order.
func (v *Value) Members() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for _, key := range v.keys {
			if !yield(key, v.members[key]) {
				return
			}
		}
	}
}

// Index returns the element at offset i of array or set v. A negative offset
// counts backward from the end. It returns nil if i is out of range.
func (v *Value) Index(i int) *Value {
	if i < 0 {
		i += len(v.items)
	}
	if i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns an iterator over the elements of array or set v.
func (v *Value) Items() iter.Seq2[int, *Value] { return slices.All(v.items) }

// Append adds val to the end of array v, firing Grow.
func (v *Value) Append(val *Value) error {
	if v.kind != Array {
		return fmt.Errorf("append: %w", ErrInvalidType)
	}
	v.items = append(v.items, val)
	v.notify(Grow, NewULongInt(uint64(len(v.items)-1)), val)
	return nil
}

// RemoveAt removes the element at offset i of array v, firing Shrink.
func (v *Value) RemoveAt(i int) error {
	if v.kind != Array && v.kind != Set {
		return fmt.Errorf("remove at %d: %w", i, ErrInvalidType)
	} else if i < 0 || i >= len(v.items) {
		return fmt.Errorf("remove at %d: %w", i, ErrNotFound)
	}
	old := v.items[i]
	v.items = slices.Delete(v.items, i, i+1)
	v.notify(Shrink, NewULongInt(uint64(i)), old)
	return nil
}

// Add adds val to set v if no equal element is already present, and reports
// whether it was added. Adding fires Grow.
func (v *Value) Add(val *Value) (bool, error) {
	if v.kind != Set {
		return false, fmt.Errorf("add: %w", ErrInvalidType)
	}
	if !v.addUnique(val) {
		return false, nil
	}
	v.notify(Grow, NewULongInt(uint64(len(v.items)-1)), val)
	return true, nil
}

func (v *Value) addUnique(val *Value) bool {
	if slices.ContainsFunc(v.items, func(elt *Value) bool { return Equal(elt, val) }) {
		return false
	}
	v.items = append(v.items, val)
	return true
}

// Displace replaces the contents of container v with the contents of src,
// preserving the identity of v, and fires Change. An object accepts only an
// object; an array or set accepts an array or a set. Other combinations
// report ErrInvalidType and leave v unchanged.
func (v *Value) Displace(src *Value) error {
	switch {
	case v.kind == Object && src.kind == Object:
		keys := slices.Clone(src.keys)
		members := make(map[string]*Value, len(keys))
		for _, key := range keys {
			members[key] = src.members[key]
		}
		v.keys, v.members = keys, members

	case v.kind == Array && (src.kind == Array || src.kind == Set):
		v.items = slices.Clone(src.items)

	case v.kind == Set && (src.kind == Array || src.kind == Set):
		items := src.items
		v.items = nil
		for _, elt := range items {
			v.addUnique(elt)
		}

	default:
		return fmt.Errorf("displace %v with %v: %w", v.kind, src.kind, ErrInvalidType)
	}
	v.notify(Change, src)
	return nil
}
