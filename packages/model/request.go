package model

import (
	"encoding/json"
	"fmt"
)

// ExecuteRequestInput is the canonical request value consumed by variable
// resolution and by the network executor.
type ExecuteRequestInput struct {
	Method      HttpMethod      `json:"method"`
	URL         string          `json:"url"`
	Headers     []KeyValue      `json:"headers"`
	QueryParams []KeyValue      `json:"query_params"`
	BodyType    BodyType        `json:"body_type"`
	BodyContent *string         `json:"body_content"`
	AuthType    AuthType        `json:"auth_type"`
	AuthConfig  AuthConfig      `json:"auth_config"`
	Settings    RequestSettings `json:"settings"`
}

// NewExecuteRequest returns a request with no headers, no body, no auth and
// default settings.
func NewExecuteRequest(method HttpMethod, url string) ExecuteRequestInput {
	return ExecuteRequestInput{
		Method:      method,
		URL:         url,
		Headers:     []KeyValue{},
		QueryParams: []KeyValue{},
		BodyType:    BodyNone,
		AuthType:    AuthNone,
		AuthConfig:  NoAuth{},
		Settings:    DefaultRequestSettings(),
	}
}

// Auth returns the active auth config, falling back to the default for
// AuthType when the config is unset.
func (r ExecuteRequestInput) Auth() AuthConfig {
	if r.AuthConfig == nil {
		return DefaultConfigForType(r.AuthType)
	}
	return r.AuthConfig
}

// ExportInput projects the request onto the fields export rendering uses.
func (r ExecuteRequestInput) ExportInput() ExportRequestInput {
	return ExportRequestInput{
		Method:      r.Method,
		URL:         r.URL,
		Headers:     CloneKeyValues(r.Headers),
		QueryParams: CloneKeyValues(r.QueryParams),
		BodyType:    r.BodyType,
		BodyContent: cloneString(r.BodyContent),
	}
}

func (r *ExecuteRequestInput) UnmarshalJSON(data []byte) error {
	type plain ExecuteRequestInput
	aux := struct {
		*plain
		AuthConfig json.RawMessage  `json:"auth_config"`
		Settings   *RequestSettings `json:"settings"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.Method == "" {
		r.Method = MethodGet
	} else {
		m, err := ParseMethod(string(r.Method))
		if err != nil {
			return err
		}
		r.Method = m
	}
	if r.Headers == nil {
		r.Headers = []KeyValue{}
	}
	if r.QueryParams == nil {
		r.QueryParams = []KeyValue{}
	}

	if len(aux.AuthConfig) == 0 || string(aux.AuthConfig) == "null" {
		r.AuthConfig = DefaultConfigForType(r.AuthType)
	} else {
		cfg, err := UnmarshalAuthConfig(aux.AuthConfig)
		if err != nil {
			return err
		}
		r.AuthConfig = cfg
	}

	if aux.Settings == nil {
		r.Settings = DefaultRequestSettings()
	} else {
		r.Settings = *aux.Settings
	}
	return nil
}

func (r ExecuteRequestInput) MarshalJSON() ([]byte, error) {
	type plain ExecuteRequestInput
	p := plain(r)
	p.AuthConfig = r.Auth()
	if p.Headers == nil {
		p.Headers = []KeyValue{}
	}
	if p.QueryParams == nil {
		p.QueryParams = []KeyValue{}
	}
	return json.Marshal(p)
}

// ExportRequestInput is the subset of a request that export rendering reads.
// Auth and settings are not part of a rendered snippet.
type ExportRequestInput struct {
	Method      HttpMethod `json:"method"`
	URL         string     `json:"url"`
	Headers     []KeyValue `json:"headers"`
	QueryParams []KeyValue `json:"queryParams"`
	BodyType    BodyType   `json:"bodyType"`
	BodyContent *string    `json:"bodyContent"`
}

// Body returns the body content, or "" when absent.
func (r ExportRequestInput) Body() string {
	if r.BodyContent == nil {
		return ""
	}
	return *r.BodyContent
}

// HasBody reports whether the request carries a body worth rendering: a
// non-empty content with a body type other than none.
func (r ExportRequestInput) HasBody() bool {
	return r.BodyType != BodyNone && r.Body() != ""
}

// StringPtr returns a pointer to s, for optional body content literals.
func StringPtr(s string) *string {
	return &s
}

// CloneKeyValues copies a key/value table so the result shares no backing
// array with kvs.
func CloneKeyValues(kvs []KeyValue) []KeyValue {
	if kvs == nil {
		return nil
	}
	out := make([]KeyValue, len(kvs))
	copy(out, kvs)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// DecodeExecuteRequest validates and decodes a request document.
func DecodeExecuteRequest(data []byte) (ExecuteRequestInput, error) {
	var r ExecuteRequestInput
	if err := ValidateDocument(data); err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("decode request: %w", err)
	}
	return r, nil
}
