// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ejtree implements a scanner and stream parser for eJSON, the
// extended JSON literal syntax used by HVML documents.
//
// eJSON extends JSON with unquoted and single-quoted object keys,
// single-quoted strings, triple-quoted text, byte sequences (bx..., bb...,
// b64...) and typed numeric suffixes (L, UL, F, FL).
//
// # Scanning
//
// The Scanner type implements the eJSON tokenizer as an explicit state
// machine that consumes one decoded character at a time. Construct a scanner
// from an io.Reader and call its Next method to iterate over the tokens:
//
//	s := ejtree.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// is either an I/O error or a *SyntaxError carrying an ErrorKind:
//
//	if err := s.Err(); errors.Is(err, ejtree.BadNumber) {
//	   log.Fatalf("Malformed number: %v", err)
//	}
//
// The text of string and key tokens retains its escape sequences; use
// Unescape to decode them. Input encoded as UTF-32 can be adapted with
// UTF32Reader.
//
// # Streaming
//
// The Stream type delivers the tokens of a scanner to a Handler as structural
// events. Construct a Stream from an io.Reader and call its Parse method:
//
//	s := ejtree.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream:
//
//	eJSON type | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	key        | Key                       | name: (quoted or unquoted)
//	value      | Value                     | strings, text, numbers, keywords,
//	           |                           | byte sequences
//	--         | EndOfInput                | end of input
//
// The Anchor passed to a handler method is only valid for the duration of
// that method call; the handler must copy any data it needs to retain beyond
// the lifetime of the call.
//
// # Trees
//
// Package vcm builds a tree from a stream and evaluates it into values of
// package variant. Packages varmgr and interp bind those values to names.
package ejtree
