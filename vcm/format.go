// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package vcm

import (
	"strings"

	"github.com/creachadair/ejtree/internal/escape"

	"go4.org/mem"
)

// String renders the tree rooted at n as compact eJSON.
func (n *Node) String() string { return n.EJSON("") }

// EJSON renders the tree rooted at n as eJSON source text. If indent is
// non-empty, each member and element is written on its own line, indented by
// indent per nesting level.
//
// Keys and strings are written double-quoted. Text literals were converted to
// strings when the tree was built, so the output does not contain triple
// quotes.
func (n *Node) EJSON(indent string) string {
	var sb strings.Builder
	n.format(&sb, indent, 0)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder, indent string, depth int) {
	switch n.Kind {
	case Object, Array:
		lb, rb := byte('['), byte(']')
		if n.Kind == Object {
			lb, rb = '{', '}'
		}
		sb.WriteByte(lb)
		if len(n.children) == 0 {
			sb.WriteByte(rb)
			return
		}
		for i, c := range n.children {
			if c.Kind == Key {
				if i > 0 {
					sb.WriteByte(',')
				}
				newline(sb, indent, depth+1)
				c.format(sb, indent, depth+1)
				sb.WriteByte(':')
				if indent != "" {
					sb.WriteByte(' ')
				}
				continue
			}
			if n.Kind == Array {
				if i > 0 {
					sb.WriteByte(',')
				}
				newline(sb, indent, depth+1)
			}
			c.format(sb, indent, depth+1)
		}
		newline(sb, indent, depth)
		sb.WriteByte(rb)

	case Key, String:
		sb.WriteByte('"')
		sb.Write(escape.Escape(mem.S(n.Unescape())))
		sb.WriteByte('"')

	default:
		sb.WriteString(n.Text)
	}
}

func newline(sb *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	sb.WriteByte('\n')
	for range depth {
		sb.WriteString(indent)
	}
}
