package preprocess

import (
	"strings"
	"unicode/utf8"
)

// Strip removes comments and blanks string literal contents while keeping
// every newline, so a line number computed on the result matches the
// original text. Block comments vanish except for their newlines, line
// comments are dropped up to the end of the line, and string contents
// become spaces with the delimiting quotes kept. A backslash escape inside
// a string becomes two spaces. Bytes outside comments and strings are
// copied unchanged, invalid UTF-8 included. Strip is idempotent.
func Strip(src string) string {
	const (
		modeCode = iota
		modeBlock
		modeString
	)

	n := len(src)
	var b strings.Builder
	b.Grow(len(src))

	mode := modeCode
	for i := 0; i < n; {
		c := src[i]
		switch mode {
		case modeBlock:
			if c == '*' && i+1 < n && src[i+1] == '/' {
				mode = modeCode
				i += 2
				continue
			}
			if c == '\n' {
				b.WriteByte('\n')
			}
			i++

		case modeString:
			switch {
			case c == '"':
				mode = modeCode
				b.WriteByte('"')
				i++
			case c == '\\' && i+1 < n:
				b.WriteByte(' ')
				if src[i+1] == '\n' {
					b.WriteByte('\n')
				} else {
					b.WriteByte(' ')
				}
				_, size := utf8.DecodeRuneInString(src[i+1:])
				i += 1 + size
			case c == '\n':
				b.WriteByte('\n')
				i++
			default:
				// One space per character keeps rune columns aligned.
				_, size := utf8.DecodeRuneInString(src[i:])
				b.WriteByte(' ')
				i += size
			}

		default:
			if c == '/' && i+1 < n && src[i+1] == '/' {
				for i < n && src[i] != '\n' {
					i++
				}
				continue
			}
			if c == '/' && i+1 < n && src[i+1] == '*' {
				mode = modeBlock
				i += 2
				continue
			}
			if c == '"' {
				mode = modeString
			}
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}
