// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/ejtree"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode/utf32"
)

// scanAll returns the tokens and texts of input up to the first error.
func scanAll(s *ejtree.Scanner) ([]ejtree.Token, []string, error) {
	var toks []ejtree.Token
	var texts []string
	for {
		err := s.Next()
		if err == io.EOF {
			return toks, texts, nil
		} else if err != nil {
			return toks, texts, err
		}
		toks = append(toks, s.Token())
		texts = append(texts, string(s.Text()))
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []ejtree.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Top-level scalars
		{"true", []ejtree.Token{ejtree.Boolean}},
		{" false ", []ejtree.Token{ejtree.Boolean}},
		{"null", []ejtree.Token{ejtree.Null}},
		{`""`, []ejtree.Token{ejtree.String}},
		{`'single'`, []ejtree.Token{ejtree.String}},
		{`"""text"""`, []ejtree.Token{ejtree.Text}},
		{"125", []ejtree.Token{ejtree.Number}},
		{"bx00ff", []ejtree.Token{ejtree.ByteSequence}},

		// Containers
		{"{}", []ejtree.Token{ejtree.StartObject, ejtree.EndObject}},
		{"[ ]", []ejtree.Token{ejtree.StartArray, ejtree.EndArray}},
		{`{"a":1}`, []ejtree.Token{
			ejtree.StartObject, ejtree.Key, ejtree.Number, ejtree.EndObject,
		}},
		{`{a: 'x', "b": "y", 'c': """z"""}`, []ejtree.Token{
			ejtree.StartObject,
			ejtree.Key, ejtree.String, ejtree.Comma,
			ejtree.Key, ejtree.String, ejtree.Comma,
			ejtree.Key, ejtree.Text,
			ejtree.EndObject,
		}},
		{`["", 1]`, []ejtree.Token{
			ejtree.StartArray, ejtree.String, ejtree.Comma, ejtree.Number, ejtree.EndArray,
		}},

		// Trailing commas
		{`[1,]`, []ejtree.Token{
			ejtree.StartArray, ejtree.Number, ejtree.Comma, ejtree.EndArray,
		}},
		{`{"a":true,}`, []ejtree.Token{
			ejtree.StartObject, ejtree.Key, ejtree.Boolean, ejtree.Comma, ejtree.EndObject,
		}},

		// Numbers
		{`[1, 2L, 3UL, 4.5F, 6.0FL, -7e+8, 1E5, 2.5e-3FL]`, []ejtree.Token{
			ejtree.StartArray,
			ejtree.Number, ejtree.Comma,
			ejtree.LongInt, ejtree.Comma,
			ejtree.ULongInt, ejtree.Comma,
			ejtree.Number, ejtree.Comma,
			ejtree.LongDouble, ejtree.Comma,
			ejtree.Number, ejtree.Comma,
			ejtree.Number, ejtree.Comma,
			ejtree.LongDouble,
			ejtree.EndArray,
		}},

		// Byte sequences
		{`[bx0aFF, bb0101.1100, b64AQID, b64YQ==]`, []ejtree.Token{
			ejtree.StartArray,
			ejtree.ByteSequence, ejtree.Comma,
			ejtree.ByteSequence, ejtree.Comma,
			ejtree.ByteSequence, ejtree.Comma,
			ejtree.ByteSequence,
			ejtree.EndArray,
		}},

		// Nesting
		{`{"a": {"b": [null, [true]]}, c: {}}`, []ejtree.Token{
			ejtree.StartObject,
			ejtree.Key, ejtree.StartObject,
			ejtree.Key, ejtree.StartArray,
			ejtree.Null, ejtree.Comma, ejtree.StartArray, ejtree.Boolean, ejtree.EndArray,
			ejtree.EndArray,
			ejtree.EndObject, ejtree.Comma,
			ejtree.Key, ejtree.StartObject, ejtree.EndObject,
			ejtree.EndObject,
		}},
	}

	for _, test := range tests {
		got, _, err := scanAll(ejtree.NewScanner(strings.NewReader(test.input)))
		if err != nil {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerText(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`{'k\n': "a\u0041", x-y_z: 'q'}`, []string{
			"{", `k\n`, `a\u0041`, ",", "x-y_z", "q", "}",
		}},
		{`"""a "quoted" b"""`, []string{`a "quoted" b`}},
		{`"""line 1
line 2"""`, []string{"line 1\nline 2"}},
		{`"\"\\\/\b\f\n\r\t"`, []string{`\"\\\/\b\f\n\r\t`}},
		{`[1E5, -0.5e+2, 3UL]`, []string{"[", "1e5", ",", "-0.5e+2", ",", "3UL", "]"}},
		{`[true,false,null]`, []string{"[", "true", ",", "false", ",", "null", "]"}},
		{`b64YQ==`, []string{"b64YQ=="}},
		{`b64/+8=`, []string{"b64/+8="}},
		{`bb0000.0001`, []string{"bb0000.0001"}},
		{`""`, []string{""}},
	}
	for _, test := range tests {
		_, got, err := scanAll(ejtree.NewScanner(strings.NewReader(test.input)))
		if err != nil {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTexts: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  ejtree.ErrorKind
	}{
		{`{`, ejtree.UnexpectedEOF},
		{`[`, ejtree.UnexpectedEOF},
		{`{"a":`, ejtree.UnexpectedEOF},
		{`[1`, ejtree.UnexpectedEOF},
		{`}`, ejtree.UnexpectedRightBrace},
		{`]`, ejtree.UnexpectedRightBracket},
		{`[1}`, ejtree.UnexpectedRightBrace},
		{`{"a":}`, ejtree.UnexpectedRightBrace},
		{`{"a":1]`, ejtree.UnexpectedRightBracket},
		{`{"": 1}`, ejtree.UnexpectedKeyName},
		{`[,1]`, ejtree.UnexpectedComma},
		{`{,}`, ejtree.UnexpectedComma},
		{`[1,,2]`, ejtree.UnexpectedComma},
		{`{"a" 1}`, ejtree.UnexpectedCharacter},
		{`{1: 2}`, ejtree.UnexpectedCharacter},
		{`1 2`, ejtree.UnexpectedCharacter},
		{`"a",`, ejtree.UnexpectedCharacter},
		{`[12Lx]`, ejtree.UnexpectedCharacter},
		{`@`, ejtree.UnexpectedCharacter},

		{`trux`, ejtree.UnexpectedCharacter},
		{`truu`, ejtree.UnexpectedKeyword},
		{`tru`, ejtree.UnexpectedKeyword},
		{`[nul]`, ejtree.UnexpectedKeyword},
		{`nulll`, ejtree.UnexpectedKeyword},

		{`b64YQ=a`, ejtree.UnexpectedBase64},
		{`bxZZ`, ejtree.UnexpectedCharacter},
		{`bb012`, ejtree.UnexpectedCharacter},
		{`bq`, ejtree.UnexpectedCharacter},
		{`b65`, ejtree.UnexpectedCharacter},

		{`12a`, ejtree.UnexpectedNumberInteger},
		{`12U`, ejtree.UnexpectedNumberInteger},
		{`12LL`, ejtree.UnexpectedCharacter},
		{`1.5x`, ejtree.UnexpectedNumberFraction},
		{`1.e5`, ejtree.UnexpectedNumberFraction},
		{`1.5L`, ejtree.UnexpectedNumberFraction},
		{`1ex`, ejtree.UnexpectedNumberExponent},
		{`1e+5L`, ejtree.UnexpectedNumberExponent},
		{`1e`, ejtree.BadNumber},
		{`-`, ejtree.BadNumber},
		{`-F`, ejtree.BadNumber},
		{`-.`, ejtree.BadNumber},
		{`[-.F]`, ejtree.BadNumber},
		{`-e5`, ejtree.BadNumber},
		{`-UL`, ejtree.BadNumber},
		{`[1e-]`, ejtree.BadNumber},
		{`1.0FF`, ejtree.BadNumber},
		{`1.0F5`, ejtree.BadNumber},

		{`"abc`, ejtree.EOFInString},
		{`'abc`, ejtree.EOFInString},
		{`"""abc""`, ejtree.EOFInString},
		{`"abc\`, ejtree.EOFInString},
		{`"\u12`, ejtree.EOFInString},
		{`"a\qb"`, ejtree.BadStringEscape},
		{`"\u12g4"`, ejtree.BadStringEscape},

		{"\"a\x00\"", ejtree.UnexpectedNullCharacter},
		{"[\x00]", ejtree.UnexpectedNullCharacter},
	}
	for _, test := range tests {
		_, _, err := scanAll(ejtree.NewScanner(strings.NewReader(test.input)))
		var serr *ejtree.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input: %#q: got error %v, want %v", test.input, err, test.want)
			continue
		}
		if serr.Kind != test.want {
			t.Errorf("Input: %#q: got kind %v, want %v", test.input, serr.Kind, test.want)
		}
		if !errors.Is(err, test.want) {
			t.Errorf("Input: %#q: errors.Is(%v) is false", test.input, test.want)
		}
	}
}

func TestScannerErrorLocation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[1,\n  x]", `at 2:2: unexpected character 'x'`},
		{"{", `at 1:1: unexpected end of input`},
		{`{"a": 12a}`, `at 1:8: unexpected character in integer 'a'`},
		{"\"\\q\"", `at 1:2: bad string escape entity 'q'`},
	}
	for _, test := range tests {
		_, _, err := scanAll(ejtree.NewScanner(strings.NewReader(test.input)))
		if err == nil {
			t.Errorf("Input: %#q: got nil, want error", test.input)
			continue
		}
		if got := err.Error(); got != test.want {
			t.Errorf("Input: %#q:\ngot:  %s\nwant: %s", test.input, got, test.want)
		}
	}
}

func TestScannerErrorIsSticky(t *testing.T) {
	s := ejtree.NewScanner(strings.NewReader(`[1 2]`))
	if err := s.Next(); err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	err := s.Next()
	if !errors.Is(err, ejtree.UnexpectedCharacter) {
		t.Fatalf("Next: got %v, want %v", err, ejtree.UnexpectedCharacter)
	}
	if s.Err() != err {
		t.Errorf("Err: got %v, want %v", s.Err(), err)
	}
	if s.Token() != ejtree.Invalid {
		t.Errorf("Token: got %v, want %v", s.Token(), ejtree.Invalid)
	}
}

func TestScannerMaxDepth(t *testing.T) {
	tests := []struct {
		input string
		depth int
		ok    bool
	}{
		{`[[[1]]]`, 0, true},
		{`[[[1]]]`, 3, true},
		{`[[[1]]]`, 2, false},
		{`{"a": {"b": {}}}`, 2, false},
		{`{"a": [], "b": [], "c": {}}`, 2, true},
		{`1`, 1, true},
	}
	for _, test := range tests {
		s := ejtree.NewScanner(strings.NewReader(test.input))
		s.SetMaxDepth(test.depth)
		_, _, err := scanAll(s)
		if test.ok && err != nil {
			t.Errorf("Input %#q depth %d: unexpected error: %v", test.input, test.depth, err)
		} else if !test.ok && !errors.Is(err, ejtree.MaxDepthExceeded) {
			t.Errorf("Input %#q depth %d: got %v, want %v",
				test.input, test.depth, err, ejtree.MaxDepthExceeded)
		}
	}
}

func TestScannerReset(t *testing.T) {
	s := ejtree.NewScanner(strings.NewReader(`[1`))
	if _, _, err := scanAll(s); err == nil {
		t.Fatal("Scan: got nil, want error")
	}
	s.Reset(strings.NewReader(`{"ok": true}`))
	got, _, err := scanAll(s)
	if err != nil {
		t.Fatalf("Scan after Reset: %v", err)
	}
	want := []ejtree.Token{ejtree.StartObject, ejtree.Key, ejtree.Boolean, ejtree.EndObject}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens after Reset: (-want, +got)\n%s", diff)
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok ejtree.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{ejtree.StartObject, "1:0-1"}, {ejtree.EndObject, "1:2-3"}}},
		{`{ "a": 1 }`, []tokPos{
			{ejtree.StartObject, "1:0-1"}, {ejtree.Key, "1:2-6"},
			{ejtree.Number, "1:7-8"}, {ejtree.EndObject, "1:9-10"},
		}},
		{"[\n true,\n 2L\n]", []tokPos{
			{ejtree.StartArray, "1:0-1"}, {ejtree.Boolean, "2:1-5"}, {ejtree.Comma, "2:5-6"},
			{ejtree.LongInt, "3:1-3"}, {ejtree.EndArray, "4:0-1"},
		}},
		{"\"\"\"a\nb\"\"\"", []tokPos{{ejtree.Text, "1:0-2:4"}}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := ejtree.NewScanner(strings.NewReader(tc.input))
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestScannerCopy(t *testing.T) {
	s := ejtree.NewScanner(strings.NewReader(`["alpha", "bravo", "charlie"]`))
	var got []string
	var keep [][]byte
	for s.Next() == nil {
		if s.Token() == ejtree.String {
			keep = append(keep, s.Copy())
		}
	}
	for _, b := range keep {
		got = append(got, string(b))
	}
	if diff := cmp.Diff([]string{"alpha", "bravo", "charlie"}, got); diff != "" {
		t.Errorf("Copies: (-want, +got)\n%s", diff)
	}
}

func TestUTF32Reader(t *testing.T) {
	const input = `{"a": [true, "é"]}`
	want := []string{"{", "a", "[", "true", ",", "é", "]", "}"}

	tests := []struct {
		name      string
		enc       utf32.Endianness
		bom       utf32.BOMPolicy
		bigEndian bool
	}{
		{"LE/BOM", utf32.LittleEndian, utf32.UseBOM, false},
		{"BE/BOM", utf32.BigEndian, utf32.UseBOM, false}, // BOM overrides
		{"BE/NoBOM", utf32.BigEndian, utf32.IgnoreBOM, true},
		{"LE/NoBOM", utf32.LittleEndian, utf32.IgnoreBOM, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := utf32.UTF32(tc.enc, tc.bom).NewEncoder().String(input)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			r := ejtree.UTF32Reader(strings.NewReader(enc), tc.bigEndian)
			_, got, err := scanAll(ejtree.NewScanner(r))
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Texts: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"<\x1e>", `"<\u001e>"`},
		{"héllo", `"héllo"`},
	}
	for _, test := range tests {
		got := ejtree.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, false},
		{`ok go`, "ok go", false},
		{`abc\ndef`, "abc\ndef", false},
		{`\b\f\n\r\t`, "\b\f\n\r\t", false},
		{`a \u0026 b`, "a & b", false},
		{`\ud83d\ude00`, "\U0001f600", false}, // surrogate pair
		{`\ud83d!`, "\ufffd!", false},         // unpaired surrogate
		{`\u00x9`, "\ufffd", false},           // invalid Unicode escape
		{`a\"b\'c`, `a"b'c`, false},
		{`a\\b\/c`, `a\b/c`, false},
		{`\`, ``, true},    // incomplete escape
		{`\u`, ``, true},   // incomplete Unicode escape
		{`\u00`, ``, true}, // incomplete Unicode escape
	}
	for _, test := range tests {
		got, err := ejtree.Unescape([]byte(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unescape(%#q): got %v, want no error", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unescape(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unescape(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}
