package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMethod is returned by ParseMethod for names outside the closed method set.
var ErrUnknownMethod = errors.New("unknown HTTP method")

type HttpMethod string

const (
	MethodGet     HttpMethod = "GET"
	MethodPost    HttpMethod = "POST"
	MethodPut     HttpMethod = "PUT"
	MethodPatch   HttpMethod = "PATCH"
	MethodDelete  HttpMethod = "DELETE"
	MethodHead    HttpMethod = "HEAD"
	MethodOptions HttpMethod = "OPTIONS"
)

// Methods returns every supported method in display order.
func Methods() []HttpMethod {
	return []HttpMethod{
		MethodGet,
		MethodPost,
		MethodPut,
		MethodPatch,
		MethodDelete,
		MethodHead,
		MethodOptions,
	}
}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (HttpMethod, error) {
	upper := HttpMethod(strings.ToUpper(strings.TrimSpace(s)))
	for _, m := range Methods() {
		if m == upper {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMethod, s)
}

func (m HttpMethod) String() string {
	return string(m)
}

// KeyValue is one row of a header or query parameter table. Disabled rows
// are kept in the model but skipped wherever the request is consumed.
type KeyValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// IsActive reports whether the row is enabled and has a non-blank key.
func (kv KeyValue) IsActive() bool {
	return kv.Enabled && strings.TrimSpace(kv.Key) != ""
}

type BodyType int

const (
	BodyNone BodyType = iota
	BodyJSON
	BodyText
	BodyFormURLEncoded
	BodyMultipart
	BodyGraphQL
)

var bodyTypeNames = [...]string{
	BodyNone:           "none",
	BodyJSON:           "json",
	BodyText:           "text",
	BodyFormURLEncoded: "form_url_encoded",
	BodyMultipart:      "multipart",
	BodyGraphQL:        "graphql",
}

func (b BodyType) String() string {
	if b < 0 || int(b) >= len(bodyTypeNames) {
		return fmt.Sprintf("BodyType(%d)", int(b))
	}
	return bodyTypeNames[b]
}

// ParseBodyType maps a wire name to a BodyType. Unknown names map to BodyNone.
func ParseBodyType(s string) BodyType {
	for i, name := range bodyTypeNames {
		if name == s {
			return BodyType(i)
		}
	}
	return BodyNone
}

func (b BodyType) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(bodyTypeNames) {
		return nil, fmt.Errorf("invalid body type %d", int(b))
	}
	return []byte(bodyTypeNames[b]), nil
}

func (b *BodyType) UnmarshalText(text []byte) error {
	*b = ParseBodyType(string(text))
	return nil
}

// RequestSettings controls execution. TimeoutMs 0 means no timeout and
// MaxRedirects only applies when FollowRedirects is set.
type RequestSettings struct {
	TimeoutMs       uint64 `json:"timeout_ms"`
	FollowRedirects bool   `json:"follow_redirects"`
	MaxRedirects    uint   `json:"max_redirects"`
}

// DefaultRequestSettings returns the settings used when a document omits them.
func DefaultRequestSettings() RequestSettings {
	return RequestSettings{
		TimeoutMs:       30000,
		FollowRedirects: true,
		MaxRedirects:    10,
	}
}
