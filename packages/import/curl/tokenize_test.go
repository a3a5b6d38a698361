package curl

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{
			input:    `-X POST -d "hello world"`,
			expected: []string{"-X", "POST", "-d", "hello world"},
		},
		{
			input:    `-H 'Content-Type: application/json'`,
			expected: []string{"-H", "Content-Type: application/json"},
		},
		{
			input:    `-d '{"key": "value"}'`,
			expected: []string{"-d", `{"key": "value"}`},
		},
		{
			input:    `-d 'it'\''s'`,
			expected: []string{"-d", "it's"},
		},
		{
			input:    `'a\nb'`,
			expected: []string{`a\nb`},
		},
		{
			input:    `"a\"b" "\$x" "c\d" "e'f"`,
			expected: []string{`a"b`, `$x`, `c\d`, `e'f`},
		},
		{
			input:    `a\ b c`,
			expected: []string{"a b", "c"},
		},
		{
			input:    "curl \\\n  -X POST \\\r\n  'url'",
			expected: []string{"curl", "-X", "POST", "url"},
		},
		{
			input:    `'' x`,
			expected: []string{"", "x"},
		},
		{
			input:    `pre'mid'"post"`,
			expected: []string{"premidpost"},
		},
		{
			input:    `$'line1\nline2\x41é\'q'`,
			expected: []string{"line1\nline2Aé'q"},
		},
		{
			input:    `$'\q\xZZ'`,
			expected: []string{`\q\xZZ`},
		},
		{
			input:    "  \t\n ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		tokens, err := tokenize(tt.input)
		if err != nil {
			t.Errorf("tokenize(%q): unexpected error %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(tokens, tt.expected) {
			t.Errorf("tokenize(%q): got %q, expected %q", tt.input, tokens, tt.expected)
		}
	}
}

func TestTokenize_Unterminated(t *testing.T) {
	for _, input := range []string{`'open`, `"open`, `$'open`, `ok "open\"`} {
		if _, err := tokenize(input); err != errUnterminatedQuote {
			t.Errorf("tokenize(%q): expected unterminated quote, got %v", input, err)
		}
	}
}
