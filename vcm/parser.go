// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package vcm

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/ejtree"
	"github.com/creachadair/ejtree/internal/escape"

	"go4.org/mem"
)

// ErrEmptyInput is reported by Parse when the input contains no value.
var ErrEmptyInput = errors.New("vcm: empty input")

// An Option configures the behavior of Parse.
type Option func(*parseConfig)

type parseConfig struct {
	maxDepth int
	utf32    bool
	bigEnd   bool
}

// MaxDepth limits the nesting depth of objects and arrays to n.
// If n ≤ 0, nesting is not limited.
func MaxDepth(n int) Option { return func(c *parseConfig) { c.maxDepth = n } }

// UTF32 configures Parse to decode UTF-32 input. A leading byte-order mark
// overrides the bigEndian setting.
func UTF32(bigEndian bool) Option {
	return func(c *parseConfig) { c.utf32, c.bigEnd = true, bigEndian }
}

// Parse parses a single eJSON value from r and returns the root of its tree.
// In case of a syntax error, the error has type *ejtree.SyntaxError.
func Parse(r io.Reader, opts ...Option) (*Node, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.utf32 {
		r = ejtree.UTF32Reader(r, cfg.bigEnd)
	}
	st := ejtree.NewStream(r)
	st.SetMaxDepth(cfg.maxDepth)

	h := new(parseHandler)
	if err := st.Parse(h); err != nil {
		return nil, err
	} else if h.root == nil {
		return nil, ErrEmptyInput
	}
	return h.root, nil
}

// ParseString parses a single eJSON value from s.
func ParseString(s string, opts ...Option) (*Node, error) {
	return Parse(strings.NewReader(s), opts...)
}

// A parseHandler implements the ejtree.Handler interface to construct a tree
// from the events of a stream.
type parseHandler struct {
	root *Node
	stk  []*Node // open containers
}

// attach adds n to the innermost open container, or makes it the root.
func (h *parseHandler) attach(n *Node) error {
	if len(h.stk) != 0 {
		h.stk[len(h.stk)-1].Append(n)
		return nil
	} else if h.root != nil {
		return errors.New("vcm: multiple top-level values")
	}
	h.root = n
	return nil
}

func (h *parseHandler) open(kind Kind) error {
	n := &Node{Kind: kind}
	if err := h.attach(n); err != nil {
		return err
	}
	h.stk = append(h.stk, n)
	return nil
}

func (h *parseHandler) close() error {
	if len(h.stk) == 0 {
		return errors.New("vcm: unbalanced close")
	}
	h.stk = h.stk[:len(h.stk)-1]
	return nil
}

func (h *parseHandler) BeginObject(loc ejtree.Anchor) error { return h.open(Object) }
func (h *parseHandler) EndObject(loc ejtree.Anchor) error   { return h.close() }
func (h *parseHandler) BeginArray(loc ejtree.Anchor) error  { return h.open(Array) }
func (h *parseHandler) EndArray(loc ejtree.Anchor) error    { return h.close() }
func (h *parseHandler) EndOfInput(loc ejtree.Anchor)        {}

func (h *parseHandler) Key(loc ejtree.Anchor) error {
	if len(h.stk) == 0 || h.stk[len(h.stk)-1].Kind != Object {
		return fmt.Errorf("vcm: key %q outside an object", loc.Text())
	}
	return h.attach(&Node{Kind: Key, Text: string(loc.Text())})
}

func (h *parseHandler) Value(loc ejtree.Anchor) error {
	var kind Kind
	text := string(loc.Text())
	switch tok := loc.Token(); tok {
	case ejtree.String:
		kind = String
	case ejtree.Text:
		// Text is verbatim; store it escaped like any other string.
		kind, text = String, string(escape.Escape(mem.B(loc.Text())))
	case ejtree.Null:
		kind = Null
	case ejtree.Boolean:
		kind = Boolean
	case ejtree.Number:
		kind = Number
	case ejtree.LongInt:
		kind = LongInt
	case ejtree.ULongInt:
		kind = ULongInt
	case ejtree.LongDouble:
		kind = LongDouble
	case ejtree.ByteSequence:
		kind = ByteSequence
	default:
		return fmt.Errorf("vcm: unknown value %v", tok)
	}
	return h.attach(&Node{Kind: kind, Text: text})
}
