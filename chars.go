// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree

// eofRune is dispatched to the state machine when the input is exhausted.
const eofRune rune = -1

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\n' || ch == '\t' || ch == '\f' || ch == '\r'
}

func isDigit(ch rune) bool       { return '0' <= ch && ch <= '9' }
func isBinaryDigit(ch rune) bool { return ch == '0' || ch == '1' }
func isAlpha(ch rune) bool       { return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isAlnum(ch rune) bool       { return isDigit(ch) || isAlpha(ch) }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isDelimiter reports whether ch ends an unquoted literal.
// The end of input counts as a delimiter.
func isDelimiter(ch rune) bool {
	return isSpace(ch) || ch == '}' || ch == ']' || ch == ',' || ch == eofRune
}

func isNameRune(ch rune) bool { return isAlnum(ch) || ch == '-' || ch == '_' }

func isBase64Rune(ch rune) bool { return isAlnum(ch) || ch == '+' || ch == '-' || ch == '/' }
