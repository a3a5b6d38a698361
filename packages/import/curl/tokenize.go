package curl

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// tokenize splits a shell command line into words the way a POSIX shell
// would, without expansion. Single quotes are literal, double quotes honour
// backslash before $ ` " \ and newline, $'...' decodes C escapes, and a
// backslash-newline outside quotes continues the line.
func tokenize(cmd string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false

	flush := func() {
		if inToken {
			tokens = append(tokens, current.String())
			current.Reset()
			inToken = false
		}
	}

	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		switch {
		case c == '\\':
			if i+1 >= len(cmd) {
				// A trailing backslash is dropped.
				continue
			}
			next := cmd[i+1]
			i++
			if next == '\n' {
				continue
			}
			if next == '\r' && i+1 < len(cmd) && cmd[i+1] == '\n' {
				i++
				continue
			}
			current.WriteByte(next)
			inToken = true

		case c == '\'':
			end := strings.IndexByte(cmd[i+1:], '\'')
			if end < 0 {
				return nil, errUnterminatedQuote
			}
			current.WriteString(cmd[i+1 : i+1+end])
			inToken = true
			i += end + 1

		case c == '$' && i+1 < len(cmd) && cmd[i+1] == '\'':
			n, err := readANSIQuoted(cmd[i+2:], &current)
			if err != nil {
				return nil, err
			}
			inToken = true
			i += n + 1

		case c == '"':
			n, err := readDoubleQuoted(cmd[i+1:], &current)
			if err != nil {
				return nil, err
			}
			inToken = true
			i += n

		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()

		default:
			current.WriteByte(c)
			inToken = true
		}
	}

	flush()
	return tokens, nil
}

// readDoubleQuoted copies the body of a double-quoted word into b and
// returns the number of bytes consumed, including the closing quote.
func readDoubleQuoted(s string, b *strings.Builder) (int, error) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			return i + 1, nil
		case '\\':
			if i+1 < len(s) {
				switch next := s[i+1]; next {
				case '$', '`', '"', '\\':
					b.WriteByte(next)
					i++
					continue
				case '\n':
					i++
					continue
				}
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return 0, errUnterminatedQuote
}

// readANSIQuoted decodes the body of a $'...' word into b and returns the
// number of bytes consumed, including the closing quote.
func readANSIQuoted(s string, b *strings.Builder) (int, error) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\'' {
			return i + 1, nil
		}
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}

		i++
		switch esc := s[i]; esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case 'e', 'E':
			b.WriteByte(0x1b)
		case '\\', '\'', '"', '?':
			b.WriteByte(esc)
		case 'x':
			v, n := parseHex(s[i+1:], 2)
			if n == 0 {
				b.WriteString(`\x`)
				continue
			}
			b.WriteByte(byte(v))
			i += n
		case 'u', 'U':
			width := 4
			if esc == 'U' {
				width = 8
			}
			v, n := parseHex(s[i+1:], width)
			if n == 0 || !utf8.ValidRune(rune(v)) {
				b.WriteByte('\\')
				b.WriteByte(esc)
				continue
			}
			b.WriteRune(rune(v))
			i += n
		default:
			b.WriteByte('\\')
			b.WriteByte(esc)
		}
	}
	return 0, errUnterminatedQuote
}

// parseHex reads up to max hex digits from the front of s.
func parseHex(s string, max int) (uint64, int) {
	n := 0
	for n < len(s) && n < max && isHex(s[n]) {
		n++
	}
	if n == 0 {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, 0
	}
	return v, n
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
