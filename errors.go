// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree

import "fmt"

// An ErrorKind classifies a malformed construct reported by the scanner.
// ErrorKind values satisfy the error interface, so that a *SyntaxError can be
// matched by kind with errors.Is.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnexpectedCharacter ErrorKind = iota + 1
	UnexpectedNullCharacter
	UnexpectedNumberExponent
	UnexpectedNumberFraction
	UnexpectedNumberInteger
	UnexpectedNumber
	UnexpectedRightBrace
	UnexpectedRightBracket
	UnexpectedKeyName
	UnexpectedComma
	UnexpectedKeyword
	UnexpectedBase64
	BadNumber
	BadJSON
	BadStringEscape
	EOFInString
	UnexpectedEOF
	MaxDepthExceeded
)

var kindStr = [...]string{
	0:                        "unknown error",
	UnexpectedCharacter:      "unexpected character",
	UnexpectedNullCharacter:  "unexpected null character",
	UnexpectedNumberExponent: "unexpected character in number exponent",
	UnexpectedNumberFraction: "unexpected character in number fraction",
	UnexpectedNumberInteger:  "unexpected character in integer",
	UnexpectedNumber:         "unexpected number",
	UnexpectedRightBrace:     "unexpected right brace",
	UnexpectedRightBracket:   "unexpected right bracket",
	UnexpectedKeyName:        "unexpected key name",
	UnexpectedComma:          "unexpected comma",
	UnexpectedKeyword:        "unexpected keyword",
	UnexpectedBase64:         "unexpected base64 character",
	BadNumber:                "bad number",
	BadJSON:                  "bad eJSON",
	BadStringEscape:          "bad string escape entity",
	EOFInString:              "end of input in string",
	UnexpectedEOF:            "unexpected end of input",
	MaxDepthExceeded:         "maximum nesting depth exceeded",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the scanner for
// malformed input.
type SyntaxError struct {
	Kind     ErrorKind
	Location LineCol
	Offset   int  // byte offset of the offending character
	Char     rune // the offending character, or -1 at end of input
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Char < 0 {
		return fmt.Sprintf("at %s: %v", s.Location, s.Kind)
	}
	return fmt.Sprintf("at %s: %v %q", s.Location, s.Kind, s.Char)
}

// Unwrap supports error wrapping, so that errors.Is(err, kind) reports true
// for a *SyntaxError of that kind.
func (s *SyntaxError) Unwrap() error { return s.Kind }
