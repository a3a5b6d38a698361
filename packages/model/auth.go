package model

import (
	"fmt"
)

type AuthType int

const (
	AuthNone AuthType = iota
	AuthBearer
	AuthBasic
	AuthAPIKey
	AuthOAuth2
	AuthOAuth1
	AuthDigest
	AuthAWSV4

	// NumAuthTypes is the number of auth types. Tables indexed by AuthType
	// assert their length against it.
	NumAuthTypes = int(iota)
)

var authTypeNames = [...]string{
	AuthNone:   "none",
	AuthBearer: "bearer",
	AuthBasic:  "basic",
	AuthAPIKey: "api_key",
	AuthOAuth2: "oauth2",
	AuthOAuth1: "oauth1",
	AuthDigest: "digest",
	AuthAWSV4:  "aws_v4",
}

var _ = [1]struct{}{}[len(authTypeNames)-NumAuthTypes]

// AuthTypes returns every auth type in declaration order.
func AuthTypes() []AuthType {
	types := make([]AuthType, NumAuthTypes)
	for i := range types {
		types[i] = AuthType(i)
	}
	return types
}

func (t AuthType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("AuthType(%d)", int(t))
	}
	return authTypeNames[t]
}

func (t AuthType) Valid() bool {
	return t >= 0 && int(t) < NumAuthTypes
}

// ParseAuthType maps a wire name to an AuthType. The boolean is false for
// unknown names, in which case AuthNone is returned.
func ParseAuthType(s string) (AuthType, bool) {
	for i, name := range authTypeNames {
		if name == s {
			return AuthType(i), true
		}
	}
	return AuthNone, false
}

func (t AuthType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid auth type %d", int(t))
	}
	return []byte(authTypeNames[t]), nil
}

func (t *AuthType) UnmarshalText(text []byte) error {
	*t, _ = ParseAuthType(string(text))
	return nil
}

type APIKeyLocation string

const (
	APIKeyInHeader APIKeyLocation = "header"
	APIKeyInQuery  APIKeyLocation = "query"
)

type OAuth2GrantType string

const (
	GrantAuthorizationCode OAuth2GrantType = "authorization_code"
	GrantClientCredentials OAuth2GrantType = "client_credentials"
	GrantPassword          OAuth2GrantType = "password"
	GrantImplicit          OAuth2GrantType = "implicit"
)

type OAuth1SignatureMethod string

const (
	SignatureHMACSHA1 OAuth1SignatureMethod = "HMAC-SHA1"
	SignatureRSASHA1  OAuth1SignatureMethod = "RSA-SHA1"
)

// AuthConfig is the closed union of per-type auth settings. Exactly one
// variant is active; its Type is the discriminant.
//
// MapStrings returns a copy of the config with fn applied to every
// string-valued field. Each variant names its fields explicitly, so a new
// field that is not a string is never passed through fn.
type AuthConfig interface {
	Type() AuthType
	MapStrings(fn func(string) string) AuthConfig
	isAuthConfig()
}

type NoAuth struct{}

type BearerAuth struct {
	Token string `json:"token"`
}

type BasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type APIKeyAuth struct {
	Key      string         `json:"key"`
	Value    string         `json:"value"`
	Location APIKeyLocation `json:"location"`
}

type OAuth2Auth struct {
	GrantType    OAuth2GrantType `json:"grant_type"`
	AccessToken  string          `json:"access_token"`
	TokenURL     string          `json:"token_url"`
	AuthURL      string          `json:"auth_url"`
	ClientID     string          `json:"client_id"`
	ClientSecret string          `json:"client_secret"`
	Scope        string          `json:"scope"`
	Username     string          `json:"username"`
	Password     string          `json:"password"`
	RedirectURI  string          `json:"redirect_uri"`
}

type OAuth1Auth struct {
	ConsumerKey     string                `json:"consumer_key"`
	ConsumerSecret  string                `json:"consumer_secret"`
	Token           string                `json:"token"`
	TokenSecret     string                `json:"token_secret"`
	SignatureMethod OAuth1SignatureMethod `json:"signature_method"`
}

type DigestAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AWSV4Auth struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Region    string `json:"region"`
	Service   string `json:"service"`
}

func (NoAuth) Type() AuthType     { return AuthNone }
func (BearerAuth) Type() AuthType { return AuthBearer }
func (BasicAuth) Type() AuthType  { return AuthBasic }
func (APIKeyAuth) Type() AuthType { return AuthAPIKey }
func (OAuth2Auth) Type() AuthType { return AuthOAuth2 }
func (OAuth1Auth) Type() AuthType { return AuthOAuth1 }
func (DigestAuth) Type() AuthType { return AuthDigest }
func (AWSV4Auth) Type() AuthType  { return AuthAWSV4 }

func (NoAuth) isAuthConfig()     {}
func (BearerAuth) isAuthConfig() {}
func (BasicAuth) isAuthConfig()  {}
func (APIKeyAuth) isAuthConfig() {}
func (OAuth2Auth) isAuthConfig() {}
func (OAuth1Auth) isAuthConfig() {}
func (DigestAuth) isAuthConfig() {}
func (AWSV4Auth) isAuthConfig()  {}

func (a NoAuth) MapStrings(func(string) string) AuthConfig {
	return a
}

func (a BearerAuth) MapStrings(fn func(string) string) AuthConfig {
	return BearerAuth{Token: fn(a.Token)}
}

func (a BasicAuth) MapStrings(fn func(string) string) AuthConfig {
	return BasicAuth{
		Username: fn(a.Username),
		Password: fn(a.Password),
	}
}

func (a APIKeyAuth) MapStrings(fn func(string) string) AuthConfig {
	return APIKeyAuth{
		Key:      fn(a.Key),
		Value:    fn(a.Value),
		Location: APIKeyLocation(fn(string(a.Location))),
	}
}

func (a OAuth2Auth) MapStrings(fn func(string) string) AuthConfig {
	return OAuth2Auth{
		GrantType:    OAuth2GrantType(fn(string(a.GrantType))),
		AccessToken:  fn(a.AccessToken),
		TokenURL:     fn(a.TokenURL),
		AuthURL:      fn(a.AuthURL),
		ClientID:     fn(a.ClientID),
		ClientSecret: fn(a.ClientSecret),
		Scope:        fn(a.Scope),
		Username:     fn(a.Username),
		Password:     fn(a.Password),
		RedirectURI:  fn(a.RedirectURI),
	}
}

func (a OAuth1Auth) MapStrings(fn func(string) string) AuthConfig {
	return OAuth1Auth{
		ConsumerKey:     fn(a.ConsumerKey),
		ConsumerSecret:  fn(a.ConsumerSecret),
		Token:           fn(a.Token),
		TokenSecret:     fn(a.TokenSecret),
		SignatureMethod: OAuth1SignatureMethod(fn(string(a.SignatureMethod))),
	}
}

func (a DigestAuth) MapStrings(fn func(string) string) AuthConfig {
	return DigestAuth{
		Username: fn(a.Username),
		Password: fn(a.Password),
	}
}

func (a AWSV4Auth) MapStrings(fn func(string) string) AuthConfig {
	return AWSV4Auth{
		AccessKey: fn(a.AccessKey),
		SecretKey: fn(a.SecretKey),
		Region:    fn(a.Region),
		Service:   fn(a.Service),
	}
}
