// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package vcm defines the variant construction tree built from eJSON source,
// a parser that constructs trees, and an evaluator that converts trees into
// variant values.
//
// The members of an object node are stored as alternating children: each KEY
// node is followed by the node for its value, as its next sibling under the
// same OBJECT parent.
package vcm

import (
	"fmt"
	"iter"

	"github.com/creachadair/ejtree/internal/escape"

	"go4.org/mem"
)

// Kind is the type of a Node.
type Kind byte

// Constants defining the valid Kind values.
const (
	Object Kind = iota + 1
	Array
	Key
	String
	Null
	Boolean
	Number
	LongInt
	ULongInt
	LongDouble
	ByteSequence
)

var kindStr = [...]string{
	0:            "INVALID",
	Object:       "OBJECT",
	Array:        "ARRAY",
	Key:          "KEY",
	String:       "STRING",
	Null:         "NULL",
	Boolean:      "BOOLEAN",
	Number:       "NUMBER",
	LongInt:      "LONG_INT",
	ULongInt:     "ULONG_INT",
	LongDouble:   "LONG_DOUBLE",
	ByteSequence: "BYTE_SEQUENCE",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// IsContainer reports whether k is Object or Array.
func (k Kind) IsContainer() bool { return k == Object || k == Array }

// A Node is a node of a variant construction tree.
type Node struct {
	Kind Kind

	// Text is the raw token text of a leaf. Keys and strings are in escaped
	// form without quotation marks; numbers retain their suffixes; byte
	// sequences retain their prefix. Containers have no text.
	Text string

	parent   *Node
	children []*Node
}

// NewNode constructs a detached node of the given kind and text.
func NewNode(kind Kind, text string) *Node { return &Node{Kind: kind, Text: text} }

// NewString constructs a detached STRING node for the unescaped string s.
func NewString(s string) *Node {
	return &Node{Kind: String, Text: string(escape.Escape(mem.S(s)))}
}

// Parent returns the parent of n, or nil if n is a root.
func (n *Node) Parent() *Node { return n.parent }

// Len reports the number of children of n.
func (n *Node) Len() int { return len(n.children) }

// Child returns the child of n at offset i, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns an iterator over the children of n in order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

// Append adds kids to the end of the children of n and returns n.
// It panics if n is not a container, or if any of kids already has a parent.
func (n *Node) Append(kids ...*Node) *Node {
	if !n.Kind.IsContainer() {
		panic(fmt.Sprintf("vcm: cannot append to %v node", n.Kind))
	}
	for _, kid := range kids {
		if kid.parent != nil {
			panic("vcm: node already has a parent")
		}
		kid.parent = n
		n.children = append(n.children, kid)
	}
	return n
}

// Members returns an iterator over the members of object n, yielding the
// unescaped key and the value node of each member in order.
func (n *Node) Members() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if n.Kind != Object {
			return
		}
		for i := 0; i+1 < len(n.children); i += 2 {
			if !yield(n.children[i].Unescape(), n.children[i+1]) {
				return
			}
		}
	}
}

// Find returns the value node of the first member of object n whose key
// equals key, or nil if there is none.
func (n *Node) Find(key string) *Node {
	for k, v := range n.Members() {
		if k == key {
			return v
		}
	}
	return nil
}

// Unescape returns the text of a KEY or STRING node with escapes decoded.
// Invalid escapes decode as the Unicode replacement rune. For other kinds it
// returns the raw text.
func (n *Node) Unescape() string {
	if n.Kind != Key && n.Kind != String {
		return n.Text
	}
	dec, err := escape.Unescape(mem.S(n.Text))
	if err != nil {
		return n.Text
	}
	return string(dec)
}

// Path traverses a path beginning at n and returns the node it reaches. Each
// element of path must be a string, which selects the value of an object
// member by key, or an int, which selects an array element by offset
// (negative offsets count backward from the end).
func (n *Node) Path(path ...any) (*Node, error) {
	cur := n
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if cur.Kind != Object {
				return nil, fmt.Errorf("cannot traverse %v with %q", cur.Kind, t)
			}
			next := cur.Find(t)
			if next == nil {
				return nil, fmt.Errorf("key %q not found", t)
			}
			cur = next
		case int:
			if cur.Kind != Array {
				return nil, fmt.Errorf("cannot traverse %v with %d", cur.Kind, t)
			}
			i := t
			if i < 0 {
				i += cur.Len()
			}
			if i < 0 || i >= cur.Len() {
				return nil, fmt.Errorf("array index %d out of bounds (n=%d)", t, cur.Len())
			}
			cur = cur.children[i]
		default:
			return nil, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

// Leaves returns an iterator over the leaf nodes of the tree rooted at n in
// order, including keys.
func (n *Node) Leaves() iter.Seq[*Node] {
	return func(yield func(*Node) bool) { n.walkLeaves(yield) }
}

func (n *Node) walkLeaves(yield func(*Node) bool) bool {
	if !n.Kind.IsContainer() {
		return yield(n)
	}
	for _, c := range n.children {
		if !c.walkLeaves(yield) {
			return false
		}
	}
	return true
}
