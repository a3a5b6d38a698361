package export

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/MehmetMelik/steq/packages/model"
	"github.com/tidwall/pretty"
)

var fetchPretty = &pretty.Options{Width: 80, Indent: "  ", SortKeys: false}

func exportAsFetch(input model.ExportRequestInput) string {
	url := BuildURL(input.URL, input.QueryParams)
	headers := EffectiveHeaders(input.Headers, input.BodyType)

	// Options are written field by field so the key order is method,
	// headers, body.
	var opts bytes.Buffer
	opts.WriteString(`{"method":`)
	opts.WriteString(jsonQuote(string(input.Method)))
	if len(headers) > 0 {
		opts.WriteString(`,"headers":{`)
		for i, h := range dedupeHeaders(headers) {
			if i > 0 {
				opts.WriteByte(',')
			}
			opts.WriteString(jsonQuote(h.Key))
			opts.WriteByte(':')
			opts.WriteString(jsonQuote(h.Value))
		}
		opts.WriteByte('}')
	}
	if input.HasBody() {
		opts.WriteString(`,"body":`)
		opts.WriteString(jsonQuote(input.Body()))
	}
	opts.WriteByte('}')

	formatted := strings.TrimSuffix(string(pretty.PrettyOptions(opts.Bytes(), fetchPretty)), "\n")
	return "fetch(" + jsonQuote(url) + ", " + formatted + ")"
}

// dedupeHeaders collapses repeated keys the way an object literal does: the
// key keeps its first position and takes its last value.
func dedupeHeaders(headers []Header) []Header {
	index := make(map[string]int, len(headers))
	out := make([]Header, 0, len(headers))
	for _, h := range headers {
		if i, ok := index[h.Key]; ok {
			out[i].Value = h.Value
			continue
		}
		index[h.Key] = len(out)
		out = append(out, h)
	}
	return out
}

// jsonQuote encodes s as a JSON string without HTML escaping.
func jsonQuote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // a string always encodes
	return strings.TrimSuffix(buf.String(), "\n")
}
