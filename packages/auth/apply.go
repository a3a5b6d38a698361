package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MehmetMelik/steq/packages/model"
)

// ErrRequiresHandshake is returned for auth schemes whose credentials depend
// on a server challenge or a token exchange, which only an executor can do.
var ErrRequiresHandshake = errors.New("auth requires a server handshake")

const authorizationHeader = "Authorization"

type applier struct {
	now func() time.Time
}

// Option configures Apply.
type Option func(*applier)

// WithClock sets the time source used for request signing.
func WithClock(now func() time.Time) Option {
	return func(a *applier) {
		a.now = now
	}
}

// Apply returns a copy of input with its auth config written out as headers
// or query parameters. An enabled header of the same name is never
// overwritten, so applying twice is a no-op. Input is not modified.
func Apply(input model.ExecuteRequestInput, opts ...Option) (model.ExecuteRequestInput, error) {
	a := &applier{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	out := input
	out.Headers = model.CloneKeyValues(input.Headers)
	out.QueryParams = model.CloneKeyValues(input.QueryParams)
	out.BodyContent = cloneString(input.BodyContent)

	switch cfg := input.Auth().(type) {
	case model.NoAuth:
	case model.BearerAuth:
		if cfg.Token != "" {
			out.Headers = setHeader(out.Headers, authorizationHeader, "Bearer "+cfg.Token)
		}
	case model.BasicAuth:
		if cfg.Username != "" || cfg.Password != "" {
			creds := cfg.Username + ":" + cfg.Password
			out.Headers = setHeader(out.Headers, authorizationHeader,
				"Basic "+base64.StdEncoding.EncodeToString([]byte(creds)))
		}
	case model.APIKeyAuth:
		if strings.TrimSpace(cfg.Key) == "" {
			break
		}
		switch cfg.Location {
		case model.APIKeyInQuery:
			out.QueryParams = setQueryParam(out.QueryParams, cfg.Key, cfg.Value)
		case model.APIKeyInHeader, "":
			out.Headers = setHeader(out.Headers, cfg.Key, cfg.Value)
		default:
			return input, fmt.Errorf("api key: unknown location %q", cfg.Location)
		}
	case model.OAuth2Auth:
		if cfg.AccessToken == "" {
			return input, fmt.Errorf("oauth2 %s grant without access token: %w", cfg.GrantType, ErrRequiresHandshake)
		}
		out.Headers = setHeader(out.Headers, authorizationHeader, "Bearer "+cfg.AccessToken)
	case model.OAuth1Auth, model.DigestAuth:
		return input, fmt.Errorf("%s: %w", cfg.Type(), ErrRequiresHandshake)
	case model.AWSV4Auth:
		if hasHeader(out.Headers, authorizationHeader) {
			break
		}
		signed, err := signAWSRequest(out, cfg, a.now())
		if err != nil {
			return input, fmt.Errorf("aws_v4: %w", err)
		}
		out = signed
	default:
		return input, fmt.Errorf("unhandled auth type %s", cfg.Type())
	}
	return out, nil
}

func hasHeader(headers []model.KeyValue, key string) bool {
	for _, h := range headers {
		if h.Enabled && strings.EqualFold(strings.TrimSpace(h.Key), key) {
			return true
		}
	}
	return false
}

// setHeader appends key: value unless an enabled header already has the key.
func setHeader(headers []model.KeyValue, key, value string) []model.KeyValue {
	if hasHeader(headers, key) {
		return headers
	}
	return append(headers, model.KeyValue{Key: key, Value: value, Enabled: true})
}

// setQueryParam appends key=value unless an enabled parameter already has
// the key. Query keys are case sensitive.
func setQueryParam(params []model.KeyValue, key, value string) []model.KeyValue {
	for _, p := range params {
		if p.Enabled && p.Key == key {
			return params
		}
	}
	return append(params, model.KeyValue{Key: key, Value: value, Enabled: true})
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
