package env

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/MehmetMelik/steq/packages/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestResolveRequestVariables(t *testing.T) {
	input := model.ExecuteRequestInput{
		Method:      model.MethodGet,
		URL:         "{{baseUrl}}/posts",
		Headers:     []model.KeyValue{{Key: "Authorization", Value: "Bearer {{token}}", Enabled: true}},
		QueryParams: []model.KeyValue{{Key: "page", Value: "{{page}}", Enabled: true}},
		BodyType:    model.BodyJSON,
		BodyContent: model.StringPtr(`{"key": "{{apiKey}}"}`),
		AuthType:    model.AuthNone,
		AuthConfig:  model.NoAuth{},
		Settings:    model.DefaultRequestSettings(),
	}
	vars := []Variable{
		{Name: "baseUrl", Value: "https://api.example.com"},
		{Name: "token", Value: "abc123"},
		{Name: "page", Value: "1"},
		{Name: "apiKey", Value: "secret"},
	}

	got := ResolveRequestVariables(input, vars)

	assert.Equal(t, "https://api.example.com/posts", got.URL)
	assert.Equal(t, "Bearer abc123", got.Headers[0].Value)
	assert.Equal(t, "1", got.QueryParams[0].Value)
	require.NotNil(t, got.BodyContent)
	assert.Equal(t, `{"key": "secret"}`, *got.BodyContent)

	// Input is untouched.
	assert.Equal(t, "{{baseUrl}}/posts", input.URL)
	assert.Equal(t, "Bearer {{token}}", input.Headers[0].Value)
	assert.Equal(t, `{"key": "{{apiKey}}"}`, *input.BodyContent)
}

func TestResolveRequestVariablesPassThrough(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodPost, "http://localhost")
	input.Settings = model.RequestSettings{TimeoutMs: 5, FollowRedirects: false, MaxRedirects: 3}

	got := ResolveRequestVariables(input, nil)
	assert.Equal(t, model.MethodPost, got.Method)
	assert.Equal(t, model.BodyNone, got.BodyType)
	assert.Nil(t, got.BodyContent)
	assert.Equal(t, model.AuthNone, got.AuthType)
	assert.Equal(t, input.Settings, got.Settings)
}

func TestResolveRequestVariablesKeepsEnabledFlags(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodGet, "http://localhost")
	input.Headers = []model.KeyValue{
		{Key: "X-{{name}}", Value: "{{val}}", Enabled: false},
		{Key: "X-Other", Value: "{{val}}", Enabled: true},
	}
	input.QueryParams = []model.KeyValue{{Key: "q", Value: "{{search}}", Enabled: true}}

	got := ResolveRequestVariables(input, []Variable{{Name: "val", Value: "resolved"}, {Name: "name", Value: "Custom"}})

	assert.Equal(t, []model.KeyValue{
		{Key: "X-Custom", Value: "resolved", Enabled: false},
		{Key: "X-Other", Value: "resolved", Enabled: true},
	}, got.Headers)
	assert.Equal(t, []model.KeyValue{{Key: "q", Value: "{{search}}", Enabled: true}}, got.QueryParams)
}

func TestResolveRequestVariablesFirstDuplicateWins(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodGet, "{{host}}")
	got := ResolveRequestVariables(input, []Variable{{Name: "host", Value: "a"}, {Name: "host", Value: "b"}})
	assert.Equal(t, "a", got.URL)
}

func TestResolveRequestVariablesGraphQL(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodPost, "{{gql}}")
	input.BodyType = model.BodyGraphQL
	input.BodyContent = model.StringPtr(`{"query":"{{q}}","variables":"","operationName":""}`)

	got := ResolveRequestVariables(input, []Variable{{Name: "q", Value: "query { x }"}})

	require.NotNil(t, got.BodyContent)
	var gql model.GraphQLContent
	require.NoError(t, json.Unmarshal([]byte(*got.BodyContent), &gql))
	assert.Equal(t, "query { x }", gql.Query)
	assert.Equal(t, "", gql.Variables)
}

func TestResolveRequestVariablesGraphQLFieldsIndependently(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodPost, "http://x/graphql")
	input.BodyType = model.BodyGraphQL
	input.BodyContent = model.StringPtr(model.GraphQLContent{
		Query:         `query {{op}}($id: ID!) { user(id: $id) { name } }`,
		Variables:     `{"id": "{{userId}}"}`,
		OperationName: "{{op}}",
	}.Encode())

	got := ResolveRequestVariables(input, []Variable{
		{Name: "op", Value: "GetUser"},
		{Name: "userId", Value: `"7"`},
	})

	gql, ok := model.ParseGraphQLContent(*got.BodyContent)
	require.True(t, ok)
	assert.Equal(t, `query GetUser($id: ID!) { user(id: $id) { name } }`, gql.Query)
	// The substituted quote lands inside the variables string, still valid JSON text.
	assert.Equal(t, `{"id": ""7""}`, gql.Variables)
	assert.Equal(t, "GetUser", gql.OperationName)
}

func TestResolveRequestVariablesMalformedGraphQLFallsBack(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodPost, "http://x/graphql")
	input.BodyType = model.BodyGraphQL
	input.BodyContent = model.StringPtr(`{"query": "{{q}}"`)

	got := ResolveRequestVariables(input, []Variable{{Name: "q", Value: "{ me }"}})
	assert.Equal(t, `{"query": "{ me }"`, *got.BodyContent)
}

func TestResolveRequestVariablesEmptyBody(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodPost, "http://x")
	input.BodyType = model.BodyText
	input.BodyContent = model.StringPtr("")

	got := ResolveRequestVariables(input, []Variable{{Name: "a", Value: "b"}})
	require.NotNil(t, got.BodyContent)
	assert.Equal(t, "", *got.BodyContent)
}

func TestResolveRequestVariablesAuth(t *testing.T) {
	vars := []Variable{
		{Name: "user", Value: "alice"},
		{Name: "pass", Value: "s3cret"},
		{Name: "region", Value: "eu-west-1"},
		{Name: "loc", Value: "query"},
	}

	tests := []struct {
		name     string
		config   model.AuthConfig
		expected model.AuthConfig
	}{
		{
			name:     "none",
			config:   model.NoAuth{},
			expected: model.NoAuth{},
		},
		{
			name:     "basic",
			config:   model.BasicAuth{Username: "{{user}}", Password: "{{pass}}"},
			expected: model.BasicAuth{Username: "alice", Password: "s3cret"},
		},
		{
			name:     "api key location is a template too",
			config:   model.APIKeyAuth{Key: "k", Value: "{{pass}}", Location: "{{loc}}"},
			expected: model.APIKeyAuth{Key: "k", Value: "s3cret", Location: model.APIKeyInQuery},
		},
		{
			name:     "aws",
			config:   model.AWSV4Auth{AccessKey: "AK", SecretKey: "{{pass}}", Region: "{{region}}", Service: "{{svc}}"},
			expected: model.AWSV4Auth{AccessKey: "AK", SecretKey: "s3cret", Region: "eu-west-1", Service: "{{svc}}"},
		},
		{
			name:     "oauth2",
			config:   model.OAuth2Auth{GrantType: model.GrantPassword, Username: "{{user}}", Password: "{{pass}}", Scope: "read"},
			expected: model.OAuth2Auth{GrantType: model.GrantPassword, Username: "alice", Password: "s3cret", Scope: "read"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := model.NewExecuteRequest(model.MethodGet, "http://x")
			input.AuthType = tt.config.Type()
			input.AuthConfig = tt.config

			got := ResolveRequestVariables(input, vars)
			assert.Equal(t, tt.expected, got.AuthConfig)
			assert.Equal(t, tt.config.Type(), got.AuthType)
		})
	}
}

func TestResolveRequestVariablesNilAuthConfig(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodGet, "http://x")
	input.AuthType = model.AuthBearer
	input.AuthConfig = nil

	got := ResolveRequestVariables(input, nil)
	assert.Equal(t, model.BearerAuth{}, got.AuthConfig)
}

func TestResolveRequestVariablesIsDeterministic(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodGet, "{{a}}/{{b}}")
	vars := []Variable{{Name: "a", Value: "x"}}
	assert.Equal(t, ResolveRequestVariables(input, vars), ResolveRequestVariables(input, vars))
}

// Live preview resolves on every keystroke while the executor resolves the
// same request; both must see the same value.
func TestResolveRequestConcurrentCallersAgree(t *testing.T) {
	defer goleak.VerifyNone(t)

	input := model.NewExecuteRequest(model.MethodPost, "{{baseUrl}}/graphql")
	input.Headers = []model.KeyValue{{Key: "X-Tenant", Value: "{{tenant}}", Enabled: true}}
	input.BodyType = model.BodyGraphQL
	input.BodyContent = model.StringPtr(model.GraphQLContent{
		Query:     "query { user(id: {{id}}) { name } }",
		Variables: `{"tenant":"{{tenant}}"}`,
	}.Encode())
	input.AuthType = model.AuthAWSV4
	input.AuthConfig = model.AWSV4Auth{AccessKey: "{{ak}}", SecretKey: "{{sk}}", Region: "eu-west-1", Service: "appsync"}

	r := NewResolver([]Variable{
		{Name: "baseUrl", Value: "https://api.example.com"},
		{Name: "tenant", Value: "acme"},
		{Name: "id", Value: "7"},
		{Name: "ak", Value: "AKID"},
	})
	want := r.ResolveRequest(input)

	var wg sync.WaitGroup
	got := make([]model.ExecuteRequestInput, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = r.ResolveRequest(input)
		}(i)
	}
	wg.Wait()

	for i := range got {
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Errorf("caller %d resolved differently (-want +got):\n%s", i, diff)
		}
	}
	assert.Equal(t, "AKID", want.AuthConfig.(model.AWSV4Auth).AccessKey)
	assert.Equal(t, "{{sk}}", want.AuthConfig.(model.AWSV4Auth).SecretKey)
}

func TestExtractRequestRefs(t *testing.T) {
	input := model.NewExecuteRequest(model.MethodGet, "{{baseUrl}}/users/{{id}}")
	input.Headers = []model.KeyValue{{Key: "X-{{baseUrl}}", Value: "{{token}}", Enabled: false}}
	input.BodyContent = model.StringPtr("{{id}} {{body}}")
	input.AuthType = model.AuthBearer
	input.AuthConfig = model.BearerAuth{Token: "{{token}} {{secret}}"}

	assert.Equal(t, []string{"baseUrl", "id", "token", "body", "secret"}, ExtractRequestRefs(input))
}
