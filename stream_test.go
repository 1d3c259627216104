// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/ejtree"
	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true", "Value boolean <true>\n."},
		{"null", "Value null <null>\n."},
		{`'a b c'`, "Value string <a b c>\n."},
		{`"""x "y" z"""`, `Value text <x "y" z>` + "\n."},

		{`[0, 5L, 6UL, -6.32, 1.5F, 0.1e-2FL, bx0a]`, `
BeginArray
Value number <0>
Value long integer <5L>
Value unsigned long integer <6UL>
Value number <-6.32>
Value number <1.5F>
Value long double <0.1e-2FL>
Value byte sequence <bx0a>
EndArray
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{a:15}`, `
BeginObject
Key <a>
Value number <15>
EndObject
.`},

		{`{"x":null, 'y':[true]}`, `
BeginObject
Key <x>
Value null <null>
Key <y>
BeginArray
Value boolean <true>
EndArray
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},
	}

	for _, test := range tests {
		st := ejtree.NewStream(strings.NewReader(test.input))
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamCommas(t *testing.T) {
	const input = `[1, {a: 2, b: 3,},]`
	const want = `
BeginArray
Value number <1>
Comma
BeginObject
Key <a>
Value number <2>
Comma
Key <b>
Value number <3>
Comma
EndObject
Comma
EndArray
.`
	th := &commaHandler{new(testHandler)}
	if err := ejtree.NewStream(strings.NewReader(input)).Parse(th); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		{`{`, `BeginObject`, `at 1:1: unexpected end of input`},
		{`}`, ``, `at 1:0: unexpected right brace '}'`},
		{`{false:1}`, `
BeginObject
Key <false>
Value number <1>
EndObject`, ``},
		{`{"true":}`, `
BeginObject
Key <true>`, `at 1:8: unexpected right brace '}'`},
		{`[`, `BeginArray`, `at 1:1: unexpected end of input`},
		{`[15,`, `
BeginArray
Value number <15>`, `at 1:4: unexpected end of input`},
		{`[1 forthright]`, `
BeginArray
Value number <1>`, `at 1:3: unexpected character 'f'`},
		{`"what did you`, ``, `at 1:13: end of input in string`},
	}

	for _, test := range tests {
		st := ejtree.NewStream(strings.NewReader(test.input))
		th := new(testHandler)
		err := st.Parse(th)
		if test.estr == "" {
			if err != nil {
				t.Errorf("Input: %#q: unexpected error: %v", test.input, err)
			}
			continue
		} else if err == nil {
			t.Error("Parse did not report an error")
			continue
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamHandlerError(t *testing.T) {
	errStop := errors.New("stop")
	th := &stopHandler{testHandler: new(testHandler), stop: "b", err: errStop}
	err := ejtree.NewStream(strings.NewReader(`{a: 1, b: 2, c: 3}`)).Parse(th)
	if err != errStop {
		t.Errorf("Parse: got error %v, want %v", err, errStop)
	}
	const want = `
BeginObject
Key <a>
Value number <1>`
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestParseOne(t *testing.T) {
	const input = `{ "love": [true] }`
	const want = `
BeginObject
Key <love>
BeginArray
Value boolean <true>
EndArray
EndObject
---
.`
	th := new(testHandler)

	st := ejtree.NewStream(strings.NewReader(input))
	for {
		err := st.ParseOne(th)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		th.pr("---")
	}

	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf bytes.Buffer
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) BeginObject(loc ejtree.Anchor) error { t.pr("BeginObject"); return nil }
func (t *testHandler) EndObject(loc ejtree.Anchor) error   { t.pr("EndObject"); return nil }
func (t *testHandler) BeginArray(loc ejtree.Anchor) error  { t.pr("BeginArray"); return nil }
func (t *testHandler) EndArray(loc ejtree.Anchor) error    { t.pr("EndArray"); return nil }
func (t *testHandler) EndOfInput(loc ejtree.Anchor)        { t.pr(".") }

func (t *testHandler) Key(loc ejtree.Anchor) error {
	t.pr("Key <%s>", string(loc.Text()))
	return nil
}

func (t *testHandler) Value(loc ejtree.Anchor) error {
	t.pr(`Value %s <%s>`, loc.Token(), string(loc.Text()))
	return nil
}

type commaHandler struct{ *testHandler }

func (c commaHandler) Comma(loc ejtree.Anchor) { c.pr("Comma") }

type stopHandler struct {
	*testHandler
	stop string
	err  error
}

func (s *stopHandler) Key(loc ejtree.Anchor) error {
	if string(loc.Text()) == s.stop {
		return s.err
	}
	return s.testHandler.Key(loc)
}
