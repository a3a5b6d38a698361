package model

// defaultAuthConfigs holds the zero-value config of every variant. The
// assertion below stops compilation when an AuthType is added without a
// matching entry at the end of the table.
var defaultAuthConfigs = [...]AuthConfig{
	AuthNone:   NoAuth{},
	AuthBearer: BearerAuth{},
	AuthBasic:  BasicAuth{},
	AuthAPIKey: APIKeyAuth{Location: APIKeyInHeader},
	AuthOAuth2: OAuth2Auth{GrantType: GrantAuthorizationCode},
	AuthOAuth1: OAuth1Auth{SignatureMethod: SignatureHMACSHA1},
	AuthDigest: DigestAuth{},
	AuthAWSV4:  AWSV4Auth{},
}

var _ = [1]struct{}{}[len(defaultAuthConfigs)-NumAuthTypes]

// DefaultConfigForType returns the zero-value config for t: empty strings
// everywhere, header location for API keys, the authorization code grant
// for OAuth 2.0 and HMAC-SHA1 for OAuth 1.0. Switching the auth type of a
// request replaces its config with this value; nothing carries over.
//
// An invalid AuthType is a programming error and panics.
func DefaultConfigForType(t AuthType) AuthConfig {
	if !t.Valid() {
		panic("model: DefaultConfigForType called with " + t.String())
	}
	return defaultAuthConfigs[t]
}

// SwitchAuthType returns the auth type and config a request should carry
// after the user selects t. The previous config is discarded.
func SwitchAuthType(t AuthType) (AuthType, AuthConfig) {
	return t, DefaultConfigForType(t)
}
