package export

import (
	"strings"

	"github.com/MehmetMelik/steq/packages/model"
)

// Header is an effective header as rendered: enabled, with a non-blank key.
type Header struct {
	Key   string
	Value string
}

// multilineSep continues a shell command on the next line, indented two
// spaces.
const multilineSep = " \\\n  "

// ShellEscape single-quotes s for a POSIX shell. Embedded single quotes close
// the quote, emit an escaped quote and reopen it.
func ShellEscape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// BuildURL appends the enabled, non-blank query parameters to baseURL in
// order, form-encoded. The separator is "&" when baseURL already has a "?".
func BuildURL(baseURL string, queryParams []model.KeyValue) string {
	var b strings.Builder
	n := 0
	for _, p := range queryParams {
		if !p.IsActive() {
			continue
		}
		if n > 0 {
			b.WriteByte('&')
		}
		formEncode(&b, p.Key)
		b.WriteByte('=')
		formEncode(&b, p.Value)
		n++
	}
	if n == 0 {
		return baseURL
	}

	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + b.String()
}

const upperhex = "0123456789ABCDEF"

// formEncode writes s using the application/x-www-form-urlencoded byte
// serializer: ASCII alphanumerics and "*-._" are kept, space becomes "+",
// every other byte is percent-encoded.
func formEncode(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '*', c == '-', c == '.', c == '_':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}
}

// ContentTypeFor returns the implicit Content-Type for a body type. None and
// graphql have no mapping.
func ContentTypeFor(bodyType model.BodyType) (string, bool) {
	switch bodyType {
	case model.BodyJSON:
		return "application/json", true
	case model.BodyFormURLEncoded:
		return "application/x-www-form-urlencoded", true
	case model.BodyText:
		return "text/plain", true
	case model.BodyMultipart:
		return "multipart/form-data", true
	default:
		return "", false
	}
}

// EffectiveHeaders returns the enabled, non-blank headers in order. When the
// body type maps to a content type and no header already names Content-Type
// (in any case), one is appended last. Keys are not trimmed.
func EffectiveHeaders(headers []model.KeyValue, bodyType model.BodyType) []Header {
	var out []Header
	hasContentType := false
	for _, h := range headers {
		if !h.IsActive() {
			continue
		}
		if strings.EqualFold(h.Key, "content-type") {
			hasContentType = true
		}
		out = append(out, Header{Key: h.Key, Value: h.Value})
	}

	if ct, ok := ContentTypeFor(bodyType); ok && bodyType != model.BodyNone && !hasContentType {
		out = append(out, Header{Key: "Content-Type", Value: ct})
	}
	return out
}

// joinTokens joins tokens on one line, or one per line when there are more
// than threshold of them.
func joinTokens(tokens []string, threshold int) string {
	if len(tokens) > threshold {
		return strings.Join(tokens, multilineSep)
	}
	return strings.Join(tokens, " ")
}
