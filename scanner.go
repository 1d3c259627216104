// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the eJSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid      Token = iota // invalid token
	StartObject               // left brace "{"
	EndObject                 // right brace "}"
	StartArray                // left square bracket "["
	EndArray                  // right square bracket "]"
	Key                       // object key, quoted or unquoted, without quotes
	String                    // single- or double-quoted string, without quotes
	Text                      // triple-quoted text, without quotes
	Null                      // constant: null
	Boolean                   // constant: true or false
	Number                    // number, possibly with an F suffix
	LongInt                   // integer with an L suffix
	ULongInt                  // integer with a UL suffix
	LongDouble                // number with an FL suffix
	ByteSequence              // byte sequence: bx..., bb..., b64...
	Comma                     // comma ","
)

var tokenStr = [...]string{
	Invalid:      "invalid token",
	StartObject:  `"{"`,
	EndObject:    `"}"`,
	StartArray:   `"["`,
	EndArray:     `"]"`,
	Key:          "key",
	String:       "string",
	Text:         "text",
	Null:         "null",
	Boolean:      "boolean",
	Number:       "number",
	LongInt:      "long integer",
	ULongInt:     "unsigned long integer",
	LongDouble:   "long double",
	ByteSequence: "byte sequence",
	Comma:        `","`,
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsValue reports whether t is a scalar value token.
func (t Token) IsValue() bool { return t >= String && t <= ByteSequence }

// state identifies a state of the tokenizer.
type state byte

const (
	stInit state = iota
	stFinished
	stObject
	stAfterObject
	stArray
	stAfterArray
	stBeforeName
	stAfterName
	stBeforeValue
	stAfterValue
	stNameUnquoted
	stNameSingleQuoted
	stNameDoubleQuoted
	stValueSingleQuoted
	stValueDoubleQuoted
	stValueTwoDoubleQuoted
	stValueThreeDoubleQuoted
	stKeyword
	stAfterKeyword
	stByteSequence
	stAfterByteSequence
	stHexByteSequence
	stBinaryByteSequence
	stBase64ByteSequence
	stValueNumber
	stAfterValueNumber
	stValueNumberInteger
	stValueNumberFraction
	stValueNumberExponent
	stValueNumberExponentInteger
	stValueNumberSuffixInteger
	stStringEscape
	stStringEscapeHex4
)

// An action tells the driver loop what to do with the current character
// after a state handler has run.
type action byte

const (
	advance   action = iota // consume the character and continue
	reconsume               // dispatch the same character in the new state
	emit                    // consume the character and return the token
	emitNext                // return the token; the next call redispatches the character
	done                    // end of input
	failed                  // an error has been recorded
)

// Marks recorded on the open-container stack.
const (
	markObject = '{'
	markArray  = '['
	markMember = ':' // a key has been read; its value is pending
)

var keywords = [...]string{"true", "false", "null"}

// A Scanner reads lexical tokens from an eJSON input stream. Each call to
// Next advances the scanner to the next token, or reports an error.
type Scanner struct {
	r     *bufio.Reader
	state state
	ret   state  // state to resume after an escape sequence
	stk   []byte // open containers and pending members
	depth int    // number of open containers
	max   int    // maximum container depth, 0 for no limit

	buf  TempBuffer // text of the current token
	hex  TempBuffer // digits of a \u escape
	tbuf [][]byte   // allocation pool for Copy

	tok  Token
	text []byte
	pbuf [utf8.UTFMax]byte
	err  error

	// The current character, and whether it has yet to be consumed.
	ch   rune
	size int
	have bool

	off        int // input offset after the current character
	line, col  int // apparent position after the current character (0-based)
	cpos       int // offset of the current character
	cline, ccl int // position of the current character

	pos, end    int // start and end offsets of current token
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new eJSON scanner that consumes UTF-8 input from r.
// Use UTF32Reader to scan UTF-32 encoded input.
func NewScanner(r io.Reader) *Scanner {
	s := new(Scanner)
	s.Reset(r)
	return s
}

// Reset discards the state of s and prepares it to scan a new document from
// r. The maximum depth setting is retained.
func (s *Scanner) Reset(r io.Reader) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	*s = Scanner{
		r:    br,
		max:  s.max,
		stk:  s.stk[:0],
		buf:  TempBuffer{buf: s.buf.buf[:0]},
		hex:  TempBuffer{buf: s.hex.buf[:0]},
		tbuf: s.tbuf,
	}
}

// SetMaxDepth limits the nesting depth of objects and arrays to n. If n ≤ 0,
// nesting is not limited. Exceeding the limit is reported as a
// MaxDepthExceeded error.
func (s *Scanner) SetMaxDepth(n int) { s.max = n }

// Depth reports the number of objects and arrays currently open.
func (s *Scanner) Depth() int { return s.depth }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid
	s.text = nil

	for {
		if !s.have {
			if err := s.read(); err != nil {
				return s.setErr(posError{s.off, err})
			}
		}
		switch s.step(s.ch) {
		case advance:
			s.have = false
		case reconsume:
			// dispatch s.ch again in the new state
		case emit:
			s.have = false
			s.end, s.eline, s.ecol = s.off, s.line, s.col
			return nil
		case emitNext:
			s.end, s.eline, s.ecol = s.cpos, s.cline, s.ccl
			return nil
		case done:
			return s.setErr(io.EOF)
		case failed:
			return s.err
		}
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the text of the current token. Quotation marks are removed
// from keys, strings and text, but escape sequences are retained as written.
// The return value is only valid until the next call of Next. The caller must
// copy the contents of the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.text }

// Copy returns a copy of the text of the current token.
func (s *Scanner) Copy() []byte { return s.copyOf(s.text) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// read decodes the next character of the input into s.ch.
// At the end of input, s.ch is set to eofRune.
func (s *Scanner) read() error {
	ch, nb, err := s.r.ReadRune()
	if err == io.EOF {
		ch, nb = eofRune, 0
	} else if err != nil {
		return err
	}
	s.ch, s.size, s.have = ch, nb, true
	s.cpos, s.cline, s.ccl = s.off, s.line, s.col
	s.off += nb
	if ch == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col += nb
	}
	return nil
}

// step dispatches ch to the handler for the current state.
func (s *Scanner) step(ch rune) action {
	if ch == 0 {
		return s.fail(UnexpectedNullCharacter)
	}
	switch s.state {
	case stInit:
		return s.stepInit(ch)
	case stFinished:
		return s.stepFinished(ch)
	case stObject:
		return s.stepContainer(ch, '{', markObject, StartObject, stBeforeName)
	case stArray:
		return s.stepContainer(ch, '[', markArray, StartArray, stBeforeValue)
	case stAfterObject:
		return s.stepAfterContainer(ch, '}', markObject, EndObject, UnexpectedRightBrace)
	case stAfterArray:
		return s.stepAfterContainer(ch, ']', markArray, EndArray, UnexpectedRightBracket)
	case stBeforeName:
		return s.stepBeforeName(ch)
	case stAfterName:
		return s.stepAfterName(ch)
	case stBeforeValue:
		return s.stepBeforeValue(ch)
	case stAfterValue:
		return s.stepAfterValue(ch)
	case stNameUnquoted:
		return s.stepNameUnquoted(ch)
	case stNameSingleQuoted:
		return s.stepQuoted(ch, '\'', stAfterName, Invalid)
	case stNameDoubleQuoted:
		return s.stepQuoted(ch, '"', stAfterName, Invalid)
	case stValueSingleQuoted:
		return s.stepQuoted(ch, '\'', stAfterValue, String)
	case stValueDoubleQuoted:
		return s.stepValueDoubleQuoted(ch)
	case stValueTwoDoubleQuoted:
		return s.stepValueTwoDoubleQuoted(ch)
	case stValueThreeDoubleQuoted:
		return s.stepValueThreeDoubleQuoted(ch)
	case stKeyword:
		return s.stepKeyword(ch)
	case stAfterKeyword:
		return s.stepAfterKeyword(ch)
	case stByteSequence:
		return s.stepByteSequence(ch)
	case stAfterByteSequence:
		return s.emitValue(ByteSequence)
	case stHexByteSequence:
		return s.stepByteDigits(ch, isHexDigit)
	case stBinaryByteSequence:
		return s.stepByteDigits(ch, isBinaryRune)
	case stBase64ByteSequence:
		return s.stepBase64(ch)
	case stValueNumber:
		return s.stepValueNumber(ch)
	case stAfterValueNumber:
		return s.stepAfterValueNumber(ch)
	case stValueNumberInteger:
		return s.stepNumberInteger(ch)
	case stValueNumberFraction:
		return s.stepNumberFraction(ch)
	case stValueNumberExponent:
		return s.stepNumberExponent(ch)
	case stValueNumberExponentInteger:
		return s.stepNumberExponentInteger(ch)
	case stValueNumberSuffixInteger:
		return s.stepNumberSuffixInteger(ch)
	case stStringEscape:
		return s.stepStringEscape(ch)
	case stStringEscapeHex4:
		return s.stepStringEscapeHex4(ch)
	default:
		panic(fmt.Sprintf("invalid scanner state %d", s.state))
	}
}

func (s *Scanner) stepInit(ch rune) action {
	switch {
	case isSpace(ch):
		return advance
	case ch == eofRune:
		return done
	}
	return s.switchTo(stBeforeValue, reconsume)
}

func (s *Scanner) stepFinished(ch rune) action {
	switch {
	case isSpace(ch):
		return advance
	case ch == eofRune:
		return done
	}
	return s.fail(UnexpectedCharacter)
}

// stepContainer opens an object or array on the character open.
func (s *Scanner) stepContainer(ch, open rune, mark byte, tok Token, next state) action {
	if ch != open {
		return s.fail(UnexpectedCharacter)
	} else if !s.push(mark) {
		return s.fail(MaxDepthExceeded)
	}
	s.mark()
	s.buf.Reset()
	s.punct(tok, ch)
	return s.switchTo(next, emit)
}

// stepAfterContainer closes an object or array on the character close.
func (s *Scanner) stepAfterContainer(ch, close rune, mark byte, tok Token, bad ErrorKind) action {
	if ch != close {
		return s.fail(UnexpectedCharacter)
	} else if s.top() != mark {
		return s.fail(bad)
	}
	s.pop()
	s.mark()
	s.punct(tok, ch)
	if len(s.stk) == 0 {
		return s.switchTo(stFinished, emit)
	}
	return s.switchTo(stAfterValue, emit)
}

func (s *Scanner) stepBeforeName(ch rune) action {
	switch {
	case isSpace(ch):
		return advance
	case ch == '"':
		s.beginName()
		return s.switchTo(stNameDoubleQuoted, advance)
	case ch == '\'':
		s.beginName()
		return s.switchTo(stNameSingleQuoted, advance)
	case isAlpha(ch):
		s.beginName()
		return s.switchTo(stNameUnquoted, reconsume)
	case ch == '}':
		return s.switchTo(stAfterObject, reconsume)
	case ch == ',':
		return s.fail(UnexpectedComma)
	case ch == eofRune:
		return s.fail(UnexpectedEOF)
	}
	return s.fail(UnexpectedCharacter)
}

func (s *Scanner) stepAfterName(ch rune) action {
	switch {
	case isSpace(ch):
		return advance
	case ch == ':':
		if s.buf.IsEmpty() {
			return s.fail(UnexpectedKeyName)
		}
		s.tok, s.text = Key, s.buf.Bytes()
		return s.switchTo(stBeforeValue, emit)
	case ch == eofRune:
		return s.fail(UnexpectedEOF)
	}
	return s.fail(UnexpectedCharacter)
}

func (s *Scanner) stepBeforeValue(ch rune) action {
	switch {
	case isSpace(ch):
		return advance
	case ch == '"':
		s.beginValue()
		return s.switchTo(stValueDoubleQuoted, advance)
	case ch == '\'':
		s.beginValue()
		return s.switchTo(stValueSingleQuoted, advance)
	case ch == 'b':
		s.beginValue()
		return s.switchTo(stByteSequence, reconsume)
	case ch == 't' || ch == 'f' || ch == 'n':
		s.beginValue()
		return s.switchTo(stKeyword, reconsume)
	case isDigit(ch) || ch == '-':
		s.beginValue()
		return s.switchTo(stValueNumber, reconsume)
	case ch == '{':
		return s.switchTo(stObject, reconsume)
	case ch == '[':
		return s.switchTo(stArray, reconsume)
	case ch == '}':
		return s.switchTo(stAfterObject, reconsume)
	case ch == ']':
		return s.switchTo(stAfterArray, reconsume)
	case ch == ',':
		return s.fail(UnexpectedComma)
	case ch == eofRune:
		return s.fail(UnexpectedEOF)
	}
	return s.fail(UnexpectedCharacter)
}

func (s *Scanner) stepAfterValue(ch rune) action {
	if len(s.stk) == 0 {
		return s.switchTo(stFinished, reconsume)
	}
	switch {
	case isSpace(ch):
		return advance
	case ch == '}':
		if s.top() == markMember {
			s.pop()
		}
		return s.switchTo(stAfterObject, reconsume)
	case ch == ']':
		return s.switchTo(stAfterArray, reconsume)
	case ch == ',':
		s.mark()
		s.punct(Comma, ch)
		switch s.top() {
		case markObject:
			return s.switchTo(stBeforeName, emit)
		case markArray:
			return s.switchTo(stBeforeValue, emit)
		case markMember:
			s.pop()
			return s.switchTo(stBeforeName, emit)
		}
		return s.fail(UnexpectedComma)
	case ch == eofRune:
		return s.fail(UnexpectedEOF)
	}
	return s.fail(UnexpectedCharacter)
}

func (s *Scanner) stepNameUnquoted(ch rune) action {
	switch {
	case isSpace(ch) || ch == ':':
		return s.switchTo(stAfterName, reconsume)
	case isNameRune(ch):
		s.buf.WriteRune(ch)
		return advance
	case ch == eofRune:
		return s.fail(UnexpectedEOF)
	}
	return s.fail(UnexpectedCharacter)
}

// stepQuoted accumulates a quoted name or single-quoted string closed by
// quote. If tok != Invalid, the closing quote emits a token of that type.
func (s *Scanner) stepQuoted(ch, quote rune, next state, tok Token) action {
	switch ch {
	case quote:
		if tok == Invalid {
			return s.switchTo(next, advance)
		}
		s.tok, s.text = tok, s.buf.Bytes()
		return s.switchTo(next, emit)
	case '\\':
		s.ret = s.state
		return s.switchTo(stStringEscape, advance)
	case eofRune:
		return s.fail(EOFInString)
	}
	s.buf.WriteRune(ch)
	return advance
}

func (s *Scanner) stepValueDoubleQuoted(ch rune) action {
	if ch == '"' && s.buf.IsEmpty() {
		// Two quotes in a row: either an empty string or the start of text.
		return s.switchTo(stValueTwoDoubleQuoted, advance)
	}
	return s.stepQuoted(ch, '"', stAfterValue, String)
}

func (s *Scanner) stepValueTwoDoubleQuoted(ch rune) action {
	if ch == '"' {
		s.buf.WriteString(`"""`)
		return s.switchTo(stValueThreeDoubleQuoted, advance)
	}
	s.tok, s.text = String, s.buf.Bytes()
	return s.switchTo(stAfterValue, emitNext)
}

// stepValueThreeDoubleQuoted accumulates triple-quoted text verbatim. The
// buffer holds the opening quotes, so a close requires at least six bytes.
func (s *Scanner) stepValueThreeDoubleQuoted(ch rune) action {
	switch ch {
	case '"':
		s.buf.WriteRune(ch)
		if s.buf.Len() >= 6 && s.buf.HasSuffix(`"""`) {
			s.buf.Trim(3, 3)
			s.tok, s.text = Text, s.buf.Bytes()
			return s.switchTo(stAfterValue, emit)
		}
		return advance
	case eofRune:
		return s.fail(EOFInString)
	}
	s.buf.WriteRune(ch)
	return advance
}

func (s *Scanner) stepKeyword(ch rune) action {
	if isDelimiter(ch) {
		return s.switchTo(stAfterKeyword, reconsume)
	}
	if !isKeywordRune(ch) {
		return s.fail(UnexpectedCharacter)
	} else if !extendsKeyword(s.buf.Bytes(), ch) {
		return s.fail(UnexpectedKeyword)
	}
	s.buf.WriteRune(ch)
	return advance
}

func (s *Scanner) stepAfterKeyword(ch rune) action {
	if !isDelimiter(ch) {
		return s.fail(UnexpectedCharacter)
	}
	switch {
	case s.buf.Equal("true"), s.buf.Equal("false"):
		return s.emitValue(Boolean)
	case s.buf.Equal("null"):
		return s.emitValue(Null)
	}
	return s.fail(UnexpectedKeyword)
}

// stepByteSequence reads the prefix of a byte sequence: bx, bb, or b64.
func (s *Scanner) stepByteSequence(ch rune) action {
	switch {
	case s.buf.IsEmpty() && ch == 'b':
		s.buf.WriteRune(ch)
		return advance
	case s.buf.Equal("b") && ch == 'b':
		s.buf.WriteRune(ch)
		return s.switchTo(stBinaryByteSequence, advance)
	case s.buf.Equal("b") && ch == 'x':
		s.buf.WriteRune(ch)
		return s.switchTo(stHexByteSequence, advance)
	case s.buf.Equal("b") && ch == '6':
		s.buf.WriteRune(ch)
		return advance
	case s.buf.Equal("b6") && ch == '4':
		s.buf.WriteRune(ch)
		return s.switchTo(stBase64ByteSequence, advance)
	}
	return s.fail(UnexpectedCharacter)
}

// stepByteDigits accumulates the digits of a hex or binary byte sequence.
func (s *Scanner) stepByteDigits(ch rune, ok func(rune) bool) action {
	switch {
	case isDelimiter(ch):
		return s.switchTo(stAfterByteSequence, reconsume)
	case ok(ch):
		s.buf.WriteRune(ch)
		return advance
	}
	return s.fail(UnexpectedCharacter)
}

func (s *Scanner) stepBase64(ch rune) action {
	switch {
	case isDelimiter(ch):
		return s.switchTo(stAfterByteSequence, reconsume)
	case ch == '=':
		s.buf.WriteRune(ch)
		return advance
	case isBase64Rune(ch):
		if s.buf.HasSuffix("=") {
			return s.fail(UnexpectedBase64)
		}
		s.buf.WriteRune(ch)
		return advance
	}
	return s.fail(UnexpectedCharacter)
}

func (s *Scanner) stepValueNumber(ch rune) action {
	switch {
	case isDigit(ch):
		return s.switchTo(stValueNumberInteger, reconsume)
	case ch == '-':
		s.buf.WriteRune(ch)
		return s.switchTo(stValueNumberInteger, advance)
	}
	return s.fail(BadNumber)
}

func (s *Scanner) stepAfterValueNumber(ch rune) action {
	if !isDelimiter(ch) {
		return s.fail(BadNumber)
	}
	switch s.buf.LastByte() {
	case '-', '+', 'e':
		return s.fail(BadNumber)
	}
	return s.emitValue(Number)
}

func (s *Scanner) stepNumberInteger(ch rune) action {
	switch {
	case isDelimiter(ch):
		return s.switchTo(stAfterValueNumber, reconsume)
	case isDigit(ch):
		s.buf.WriteRune(ch)
		return advance
	case !isDigit(rune(s.buf.LastByte())) && strings.ContainsRune("EeF.UL", ch):
		// A sign must be followed by at least one digit.
		return s.fail(BadNumber)
	case ch == 'E' || ch == 'e':
		s.buf.WriteByte('e')
		return s.switchTo(stValueNumberExponent, advance)
	case ch == '.' || ch == 'F':
		s.buf.WriteRune(ch)
		return s.switchTo(stValueNumberFraction, advance)
	case ch == 'U' || ch == 'L':
		return s.switchTo(stValueNumberSuffixInteger, reconsume)
	}
	return s.fail(UnexpectedNumberInteger)
}

func (s *Scanner) stepNumberFraction(ch rune) action {
	afterF := s.buf.HasSuffix("F")
	switch {
	case isDelimiter(ch):
		return s.switchTo(stAfterValueNumber, reconsume)
	case isDigit(ch):
		if afterF {
			return s.fail(BadNumber)
		}
		s.buf.WriteRune(ch)
		return advance
	case ch == 'F':
		if afterF {
			return s.fail(BadNumber)
		}
		s.buf.WriteRune(ch)
		return advance
	case ch == 'L':
		if !afterF {
			return s.fail(UnexpectedNumberFraction)
		}
		s.buf.WriteRune(ch)
		s.tok, s.text = LongDouble, s.buf.Bytes()
		return s.switchTo(stAfterValue, emit)
	case ch == 'E' || ch == 'e':
		if afterF || s.buf.HasSuffix(".") {
			return s.fail(UnexpectedNumberFraction)
		}
		s.buf.WriteByte('e')
		return s.switchTo(stValueNumberExponent, advance)
	}
	return s.fail(UnexpectedNumberFraction)
}

func (s *Scanner) stepNumberExponent(ch rune) action {
	switch {
	case isDelimiter(ch):
		return s.switchTo(stAfterValueNumber, reconsume)
	case isDigit(ch):
		return s.switchTo(stValueNumberExponentInteger, reconsume)
	case ch == '+' || ch == '-':
		s.buf.WriteRune(ch)
		return s.switchTo(stValueNumberExponentInteger, advance)
	}
	return s.fail(UnexpectedNumberExponent)
}

func (s *Scanner) stepNumberExponentInteger(ch rune) action {
	last := s.buf.LastByte()
	switch {
	case isDelimiter(ch):
		return s.switchTo(stAfterValueNumber, reconsume)
	case isDigit(ch):
		if last == 'F' {
			return s.fail(BadNumber)
		}
		s.buf.WriteRune(ch)
		return advance
	case ch == 'F':
		if !isDigit(rune(last)) {
			return s.fail(UnexpectedNumberExponent)
		}
		s.buf.WriteRune(ch)
		return advance
	case ch == 'L':
		if last != 'F' {
			return s.fail(UnexpectedNumberExponent)
		}
		s.buf.WriteRune(ch)
		s.tok, s.text = LongDouble, s.buf.Bytes()
		return s.switchTo(stAfterValue, emit)
	}
	return s.fail(UnexpectedNumberExponent)
}

func (s *Scanner) stepNumberSuffixInteger(ch rune) action {
	last := rune(s.buf.LastByte())
	switch {
	case isDelimiter(ch):
		if last == 'U' {
			return s.fail(UnexpectedNumberInteger)
		}
		return s.switchTo(stAfterValueNumber, reconsume)
	case ch == 'U' && isDigit(last):
		s.buf.WriteRune(ch)
		return advance
	case ch == 'L' && (isDigit(last) || last == 'U'):
		s.buf.WriteRune(ch)
		if s.buf.HasSuffix("UL") {
			s.tok = ULongInt
		} else {
			s.tok = LongInt
		}
		s.text = s.buf.Bytes()
		return s.switchTo(stAfterValue, emit)
	}
	return s.fail(UnexpectedNumberInteger)
}

// stepStringEscape handles the character after a backslash. Escapes are
// retained in the token text in their escaped form.
func (s *Scanner) stepStringEscape(ch rune) action {
	switch ch {
	case '\\', '/', '"', 'b', 'f', 'n', 'r', 't':
		s.buf.WriteByte('\\')
		s.buf.WriteRune(ch)
		return s.switchTo(s.ret, advance)
	case 'u':
		s.hex.Reset()
		return s.switchTo(stStringEscapeHex4, advance)
	case eofRune:
		return s.fail(EOFInString)
	}
	return s.fail(BadStringEscape)
}

func (s *Scanner) stepStringEscapeHex4(ch rune) action {
	switch {
	case isHexDigit(ch):
		s.hex.WriteRune(ch)
		if s.hex.Len() == 4 {
			s.buf.WriteString(`\u`)
			s.buf.Write(s.hex.Bytes())
			return s.switchTo(s.ret, advance)
		}
		return advance
	case ch == eofRune:
		return s.fail(EOFInString)
	}
	return s.fail(BadStringEscape)
}

// emitValue emits the buffered text as a token of type tok. The current
// character is a delimiter, which is redispatched by the next call.
func (s *Scanner) emitValue(tok Token) action {
	s.tok, s.text = tok, s.buf.Bytes()
	return s.switchTo(stAfterValue, emitNext)
}

func (s *Scanner) switchTo(st state, a action) action { s.state = st; return a }

func (s *Scanner) punct(tok Token, ch rune) {
	n := utf8.EncodeRune(s.pbuf[:], ch)
	s.tok, s.text = tok, s.pbuf[:n]
}

// beginName prepares to read an object key. A pending-member mark is pushed
// when the enclosing container is an object.
func (s *Scanner) beginName() {
	s.mark()
	s.buf.Reset()
	if s.top() == markObject {
		s.push(markMember)
	}
}

func (s *Scanner) beginValue() {
	s.mark()
	s.buf.Reset()
}

// mark records the current character as the start of a token.
func (s *Scanner) mark() { s.pos, s.pline, s.pcol = s.cpos, s.cline, s.ccl }

// push adds mark to the container stack, and reports false if doing so would
// exceed the depth limit.
func (s *Scanner) push(mark byte) bool {
	if mark != markMember {
		if s.max > 0 && s.depth >= s.max {
			return false
		}
		s.depth++
	}
	s.stk = append(s.stk, mark)
	return true
}

func (s *Scanner) pop() {
	n := len(s.stk) - 1
	if s.stk[n] != markMember {
		s.depth--
	}
	s.stk = s.stk[:n]
}

func (s *Scanner) top() byte {
	if len(s.stk) == 0 {
		return 0
	}
	return s.stk[len(s.stk)-1]
}

func isBinaryRune(ch rune) bool { return isBinaryDigit(ch) || ch == '.' }

func isKeywordRune(ch rune) bool {
	switch ch {
	case 't', 'r', 'u', 'e', 'f', 'a', 'l', 's', 'n':
		return true
	}
	return false
}

// extendsKeyword reports whether prefix followed by ch is a prefix of one of
// the keywords true, false, or null.
func extendsKeyword(prefix []byte, ch rune) bool {
	for _, kw := range keywords {
		if len(prefix) < len(kw) && rune(kw[len(prefix)]) == ch &&
			mem.HasPrefix(mem.S(kw), mem.B(prefix)) {
			return true
		}
	}
	return false
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// fail records a syntax error of the given kind at the current character.
func (s *Scanner) fail(kind ErrorKind) action {
	s.tok, s.text = Invalid, nil
	s.setErr(&SyntaxError{
		Kind:     kind,
		Location: LineCol{Line: s.cline + 1, Column: s.ccl},
		Offset:   s.cpos,
		Char:     s.ch,
	})
	return failed
}

func (s *Scanner) copyOf(text []byte) []byte {
	const minBlockSlop = 4
	const smallSizeFraction = 16
	const bufBlockBytes = 16384

	// Large values are copied outright rather than packed into a block.
	if len(text) >= bufBlockBytes/smallSizeFraction {
		return append([]byte(nil), text...)
	}

	i := 0
	for i < len(s.tbuf) {
		if n := len(s.tbuf[i]) + len(text); n < cap(s.tbuf[i]) {
			break
		} else if cap(s.tbuf[i])-len(text) < minBlockSlop {
			// The block is nearly full; replace it. Copies already handed out
			// keep the old block alive.
			s.tbuf[i] = make([]byte, 0, bufBlockBytes)
			break
		}
		i++
	}
	if i == len(s.tbuf) {
		s.tbuf = append(s.tbuf, make([]byte, 0, bufBlockBytes))
	}
	p := len(s.tbuf[i])
	s.tbuf[i] = append(s.tbuf[i], text...)
	return s.tbuf[i][p : p+len(text):p+len(text)]
}
