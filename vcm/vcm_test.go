// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package vcm_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/creachadair/ejtree"
	"github.com/creachadair/ejtree/vcm"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode/utf32"
)

// shape renders the structure of a tree as kinds and texts, for comparison.
func shape(n *vcm.Node) string {
	if !n.Kind.IsContainer() {
		return n.Kind.String() + "<" + n.Text + ">"
	}
	var parts []string
	for c := range n.Children() {
		parts = append(parts, shape(c))
	}
	return n.Kind.String() + "(" + strings.Join(parts, " ") + ")"
}

func mustParse(t *testing.T, input string, opts ...vcm.Option) *vcm.Node {
	t.Helper()
	n, err := vcm.ParseString(input, opts...)
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", input, err)
	}
	return n
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"a":1,"b":2}`, `OBJECT(KEY<a> NUMBER<1> KEY<b> NUMBER<2>)`},
		{`[1,2,[3,4]]`, `ARRAY(NUMBER<1> NUMBER<2> ARRAY(NUMBER<3> NUMBER<4>))`},
		{`""`, `STRING<>`},
		{`'""'`, `STRING<"">`},
		{`"""line1\nline2"""`, `STRING<line1\\nline2>`},
		{`bx1A2B`, `BYTE_SEQUENCE<bx1A2B>`},
		{`123UL`, `ULONG_INT<123UL>`},
		{`1.5FL`, `LONG_DOUBLE<1.5FL>`},
		{`[true, null, -2L, 0.5F]`, `ARRAY(BOOLEAN<true> NULL<null> LONG_INT<-2L> NUMBER<0.5F>)`},
		{`{a: {}, 'b': [], "c": {d: bb0101}}`,
			`OBJECT(KEY<a> OBJECT() KEY<b> ARRAY() KEY<c> OBJECT(KEY<d> BYTE_SEQUENCE<bb0101>))`},
		{`{"k\"q": 'v'}`, `OBJECT(KEY<k\"q> STRING<v>)`},
	}
	for _, tc := range tests {
		n := mustParse(t, tc.input)
		if diff := cmp.Diff(tc.want, shape(n)); diff != "" {
			t.Errorf("Input: %#q\nTree: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestParseStructure(t *testing.T) {
	root := mustParse(t, `{"a":1,"b":2}`)
	if root.Parent() != nil {
		t.Errorf("Root parent: got %v, want nil", root.Parent())
	}
	if got := root.Len(); got != 4 {
		t.Errorf("Root children: got %d, want 4", got)
	}
	for c := range root.Children() {
		if c.Parent() != root {
			t.Errorf("Child %v: parent is not the root", c)
		}
		if c.Len() != 0 {
			t.Errorf("Child %v has %d children, want 0", c, c.Len())
		}
	}

	var keys []string
	for k, v := range root.Members() {
		keys = append(keys, k+"="+v.Text)
	}
	if diff := cmp.Diff([]string{"a=1", "b=2"}, keys); diff != "" {
		t.Errorf("Members: (-want, +got)\n%s", diff)
	}
	if got := root.Child(4); got != nil {
		t.Errorf("Child(4): got %v, want nil", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ejtree.ErrorKind
	}{
		{`{"a":1`, ejtree.UnexpectedEOF},
		{`bx1G`, ejtree.UnexpectedCharacter},
		{`1.5F5`, ejtree.BadNumber},
		{`[1, 2]]`, ejtree.UnexpectedCharacter},
		{`{"a": "b}`, ejtree.EOFInString},
	}
	for _, tc := range tests {
		_, err := vcm.ParseString(tc.input)
		var serr *ejtree.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got %v, want syntax error", tc.input, err)
		} else if serr.Kind != tc.kind {
			t.Errorf("Parse %#q: got kind %v, want %v", tc.input, serr.Kind, tc.kind)
		}
	}

	if _, err := vcm.ParseString("  \n "); !errors.Is(err, vcm.ErrEmptyInput) {
		t.Errorf("Parse empty: got %v, want %v", err, vcm.ErrEmptyInput)
	}
}

func TestParseOptions(t *testing.T) {
	t.Run("MaxDepth", func(t *testing.T) {
		const input = `{"a": [[1]]}`
		mustParse(t, input, vcm.MaxDepth(3))
		_, err := vcm.ParseString(input, vcm.MaxDepth(2))
		if !errors.Is(err, ejtree.MaxDepthExceeded) {
			t.Errorf("Parse: got %v, want %v", err, ejtree.MaxDepthExceeded)
		}
	})
	t.Run("UTF32", func(t *testing.T) {
		enc, err := utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewEncoder().String(`{"ключ": 'значение'}`)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		n, err := vcm.Parse(strings.NewReader(enc), vcm.UTF32(true))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got := n.Find("ключ"); got == nil || got.Text != "значение" {
			t.Errorf("Find: got %v, want значение", got)
		}
	})
}

func TestLeaves(t *testing.T) {
	root := mustParse(t, `{"a":"x\u0041",'b':[1L, bx0a, """t"""], c: null}`)
	var got []string
	for leaf := range root.Leaves() {
		got = append(got, leaf.Unescape())
	}
	want := []string{"a", "xA", "b", "1L", "bx0a", "t", "c", "null"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Leaves: (-want, +got)\n%s", diff)
	}
}

func TestPath(t *testing.T) {
	root := mustParse(t, `{
  list: [ {x: 1}, {x: 2} ],
  y: {hello: "there"},
  o: ["hi", "yourself"],
}`)

	tests := []struct {
		name string
		path []any
		want string
		fail bool
	}{
		{"NilInput", nil, root.String(), false},
		{"NoMatch", []any{"nonesuch"}, "", true},
		{"WrongType", []any{11}, "", true},
		{"ArrayPos", []any{"list", 1, "x"}, "2", false},
		{"ArrayNeg", []any{"list", -2, "x"}, "1", false},
		{"ArrayRange", []any{"o", 25}, "", true},
		{"ObjPath", []any{"y", "hello"}, `"there"`, false},
		{"BadElement", []any{1.5}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := root.Path(tc.path...)
			if err != nil {
				if !tc.fail {
					t.Errorf("Path: unexpected error: %v", err)
				}
				return
			} else if tc.fail {
				t.Fatalf("Path: got %v, want error", got)
			}
			if s := got.String(); s != tc.want {
				t.Errorf("Path: got %s, want %s", s, tc.want)
			}
		})
	}
}

func TestEJSON(t *testing.T) {
	root := mustParse(t, `{a: 'x"y', "b": [1, 2UL, """q\r"""], c: {}}`)
	const wantCompact = `{"a":"x\"y","b":[1,2UL,"q\\r"],"c":{}}`
	if got := root.String(); got != wantCompact {
		t.Errorf("String:\ngot:  %s\nwant: %s", got, wantCompact)
	}

	// The rendering must parse to a tree that renders the same way.
	again := mustParse(t, root.String())
	if diff := cmp.Diff(root.String(), again.String()); diff != "" {
		t.Errorf("Reparse: (-want, +got)\n%s", diff)
	}

	const wantIndent = `{
  "a": [
    1,
    2
  ],
  "b": {}
}`
	if got := mustParse(t, `{"a":[1,2],"b":{}}`).EJSON("  "); got != wantIndent {
		t.Errorf("EJSON:\ngot:\n%s\nwant:\n%s", got, wantIndent)
	}
}

func TestAppend(t *testing.T) {
	arr := vcm.NewNode(vcm.Array, "")
	s := vcm.NewString("a\tb")
	if arr.Append(s, vcm.NewNode(vcm.Null, "null")) != arr {
		t.Error("Append did not return its receiver")
	}
	if got := arr.String(); got != `["a\tb",null]` {
		t.Errorf("String: got %s", got)
	}
	if s.Parent() != arr {
		t.Error("Appended node has the wrong parent")
	}

	mtest.MustPanic(t, func() { vcm.NewNode(vcm.Array, "").Append(s) })
	mtest.MustPanic(t, func() { vcm.NewString("x").Append(vcm.NewString("y")) })
}

func TestEval(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"s": "a\tb\u00e9", n: 1.5F, l: -3L, u: 7UL, d: 2.5FL, t: true, z: null, arr: [1, "x"]}`,
			`{"s":"a\tbé","n":1.5,"l":-3L,"u":7UL,"d":2.5FL,"t":true,"z":null,"arr":[1,"x"]}`},
		{`[bx0aff, bb00000001.00000010, b64AQI=, b64AQI]`, `[bx0aff,bx0102,bx0102,bx0102]`},
		{`[b64/+8=, b64/+8]`, `[bxffef,bxffef]`},
		{`"""raw \n text"""`, `"raw \\n text"`},
		{`{"k\u0041": 1e3}`, `{"kA":1000}`},
		{`-0.25e-2`, `-0.0025`},
		{`{"a": 1, "a": 2}`, `{"a":2}`},
	}
	for _, tc := range tests {
		v, err := vcm.Eval(mustParse(t, tc.input))
		if err != nil {
			t.Errorf("Eval %#q: unexpected error: %v", tc.input, err)
			continue
		}
		if got := v.String(); got != tc.want {
			t.Errorf("Eval %#q:\ngot:  %s\nwant: %s", tc.input, got, tc.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []string{
		`bb0101`,                // not a whole byte
		`bx0`,                   // odd hex length
		`b64A`,                  // truncated base64
		`99999999999999999999L`, // out of range
	}
	for _, input := range tests {
		if v, err := vcm.Eval(mustParse(t, input)); err == nil {
			t.Errorf("Eval %#q: got %v, want error", input, v)
		}
	}
	if v, err := vcm.Eval(vcm.NewNode(vcm.Key, "k")); err == nil {
		t.Errorf("Eval key: got %v, want error", v)
	}
}

func TestParseInputFile(t *testing.T) {
	f, err := os.Open("../testdata/input.ejson")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	root, err := vcm.Parse(f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	name, err := root.Path("items", 2, "name")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got := name.Unescape(); got != "charlie été" {
		t.Errorf("Name: got %q, want %q", got, "charlie été")
	}
	if _, err := vcm.Eval(root); err != nil {
		t.Errorf("Eval: %v", err)
	}
}
