// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/creachadair/ejtree"
)

func BenchmarkScanner(b *testing.B) {
	input, err := os.ReadFile("testdata/input.ejson")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Scanner", func(b *testing.B) {
		s := ejtree.NewScanner(bytes.NewReader(input))
		for b.Loop() {
			s.Reset(bytes.NewReader(input))
			for {
				err := s.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Unescape", func(b *testing.B) {
		s := ejtree.NewScanner(bytes.NewReader(input))
		for b.Loop() {
			s.Reset(bytes.NewReader(input))
			for {
				err := s.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
				switch s.Token() {
				case ejtree.Key, ejtree.String:
					ejtree.Unescape(s.Text())
				}
			}
		}
	})

	b.Run("Stream", func(b *testing.B) {
		for b.Loop() {
			st := ejtree.NewStream(bytes.NewReader(input))
			if err := st.Parse(nopHandler{}); err != nil {
				b.Fatalf("Parse failed: %v", err)
			}
		}
	})
}

func TestInputFile(t *testing.T) {
	f, err := os.Open("testdata/input.ejson")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	s := ejtree.NewScanner(f)
	var ntok int
	for s.Next() == nil {
		ntok++
	}
	if err := s.Err(); err != io.EOF {
		t.Fatalf("Scan failed after %d tokens: %v", ntok, err)
	}
	t.Logf("Scanned %d tokens", ntok)
}

type nopHandler struct{}

func (nopHandler) BeginObject(ejtree.Anchor) error { return nil }
func (nopHandler) EndObject(ejtree.Anchor) error   { return nil }
func (nopHandler) BeginArray(ejtree.Anchor) error  { return nil }
func (nopHandler) EndArray(ejtree.Anchor) error    { return nil }
func (nopHandler) Key(ejtree.Anchor) error         { return nil }
func (nopHandler) Value(ejtree.Anchor) error       { return nil }
func (nopHandler) EndOfInput(ejtree.Anchor)        {}
