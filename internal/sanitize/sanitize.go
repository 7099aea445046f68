// Package sanitize normalizes diagram source code before it is staged
// for rendering. The external interpreter chokes on string literals that
// span physical lines, which generated code produces regularly.
package sanitize

import "strings"

// Source rewrites literal line breaks inside quoted string literals as
// explicit \n escape sequences, leaving every other byte untouched.
//
// This is a best-effort literal scan over single- and double-quoted,
// non-nested literals, not a language-aware lexer. It is idempotent:
// an already-escaped \n inside a literal is left alone.
func Source(code string) string {
	var b strings.Builder
	b.Grow(len(code))

	var quote byte // 0 when outside a literal
	escaped := false

	for i := 0; i < len(code); i++ {
		c := code[i]

		if quote == 0 {
			if c == '"' || c == '\'' {
				quote = c
			}
			b.WriteByte(c)
			continue
		}

		if escaped {
			escaped = false
			b.WriteByte(c)
			continue
		}

		switch c {
		case '\\':
			escaped = true
			b.WriteByte(c)
		case quote:
			quote = 0
			b.WriteByte(c)
		case '\r':
			// Swallow the CR of a CRLF pair; the LF branch writes the escape.
			if i+1 < len(code) && code[i+1] == '\n' {
				continue
			}
			b.WriteString(`\n`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
