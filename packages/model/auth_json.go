package model

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Each variant marshals as a flat object with a "type" discriminant, the
// same shape the desktop backend stores.

func (a NoAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type AuthType `json:"type"`
	}{AuthNone})
}

func (a BearerAuth) MarshalJSON() ([]byte, error) {
	type fields BearerAuth
	return json.Marshal(struct {
		Type AuthType `json:"type"`
		fields
	}{AuthBearer, fields(a)})
}

func (a BasicAuth) MarshalJSON() ([]byte, error) {
	type fields BasicAuth
	return json.Marshal(struct {
		Type AuthType `json:"type"`
		fields
	}{AuthBasic, fields(a)})
}

func (a APIKeyAuth) MarshalJSON() ([]byte, error) {
	type fields APIKeyAuth
	return json.Marshal(struct {
		Type AuthType `json:"type"`
		fields
	}{AuthAPIKey, fields(a)})
}

func (a OAuth2Auth) MarshalJSON() ([]byte, error) {
	type fields OAuth2Auth
	return json.Marshal(struct {
		Type AuthType `json:"type"`
		fields
	}{AuthOAuth2, fields(a)})
}

func (a OAuth1Auth) MarshalJSON() ([]byte, error) {
	type fields OAuth1Auth
	return json.Marshal(struct {
		Type AuthType `json:"type"`
		fields
	}{AuthOAuth1, fields(a)})
}

func (a DigestAuth) MarshalJSON() ([]byte, error) {
	type fields DigestAuth
	return json.Marshal(struct {
		Type AuthType `json:"type"`
		fields
	}{AuthDigest, fields(a)})
}

func (a AWSV4Auth) MarshalJSON() ([]byte, error) {
	type fields AWSV4Auth
	return json.Marshal(struct {
		Type AuthType `json:"type"`
		fields
	}{AuthAWSV4, fields(a)})
}

// UnmarshalAuthConfig decodes a tagged auth object. Fields absent from the
// document keep their default for the variant.
func UnmarshalAuthConfig(data []byte) (AuthConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("auth config: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("auth config: expected object, got %s", doc.Type)
	}
	tag := doc.Get("type")
	if !tag.Exists() {
		return nil, fmt.Errorf("auth config: missing \"type\"")
	}
	t, ok := ParseAuthType(tag.String())
	if !ok {
		return nil, fmt.Errorf("auth config: unknown type %q", tag.String())
	}

	switch v := DefaultConfigForType(t).(type) {
	case NoAuth:
		return v, nil
	case BearerAuth:
		return decodeVariant(data, v)
	case BasicAuth:
		return decodeVariant(data, v)
	case APIKeyAuth:
		return decodeVariant(data, v)
	case OAuth2Auth:
		return decodeVariant(data, v)
	case OAuth1Auth:
		return decodeVariant(data, v)
	case DigestAuth:
		return decodeVariant(data, v)
	case AWSV4Auth:
		return decodeVariant(data, v)
	}
	return nil, fmt.Errorf("auth config: unhandled type %s", t)
}

// decodeVariant fills v from data. The "type" key is ignored because the
// variant structs have no field for it.
func decodeVariant[T AuthConfig](data []byte, v T) (AuthConfig, error) {
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("auth config %s: %w", v.Type(), err)
	}
	return v, nil
}
