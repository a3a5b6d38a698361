package env

import (
	"github.com/MehmetMelik/steq/packages/model"
)

// ResolveRequestVariables returns a copy of input with every template field
// resolved against variablePairs (first duplicate wins). Method, body type,
// auth type, settings and every enabled flag pass through unchanged.
func ResolveRequestVariables(input model.ExecuteRequestInput, variablePairs []Variable) model.ExecuteRequestInput {
	return NewResolver(variablePairs).ResolveRequest(input)
}

// ResolveRequest resolves url, header and query parameter keys and values,
// body content and every string field of the auth config. It never fails:
// a graphql body that does not parse is resolved as plain text.
func (r *Resolver) ResolveRequest(input model.ExecuteRequestInput) model.ExecuteRequestInput {
	return model.ExecuteRequestInput{
		Method:      input.Method,
		URL:         r.Resolve(input.URL),
		Headers:     r.resolveKeyValues(input.Headers),
		QueryParams: r.resolveKeyValues(input.QueryParams),
		BodyType:    input.BodyType,
		BodyContent: r.resolveBody(input.BodyType, input.BodyContent),
		AuthType:    input.AuthType,
		AuthConfig:  input.Auth().MapStrings(r.Resolve),
		Settings:    input.Settings,
	}
}

func (r *Resolver) resolveKeyValues(kvs []model.KeyValue) []model.KeyValue {
	if kvs == nil {
		return nil
	}
	out := make([]model.KeyValue, len(kvs))
	for i, kv := range kvs {
		out[i] = model.KeyValue{
			Key:     r.Resolve(kv.Key),
			Value:   r.Resolve(kv.Value),
			Enabled: kv.Enabled,
		}
	}
	return out
}

func (r *Resolver) resolveBody(bodyType model.BodyType, content *string) *string {
	if content == nil || *content == "" {
		return content
	}

	if bodyType == model.BodyGraphQL {
		if gql, ok := model.ParseGraphQLContent(*content); ok {
			resolved := model.GraphQLContent{
				Query:         r.Resolve(gql.Query),
				Variables:     r.Resolve(gql.Variables),
				OperationName: r.Resolve(gql.OperationName),
			}.Encode()
			return &resolved
		}
	}

	resolved := r.Resolve(*content)
	return &resolved
}

// ExtractRequestRefs lists the variable names a request references across
// url, headers, query parameters, body and auth fields, de-duplicated in
// first-seen order. Disabled rows are included since they are still edited.
func ExtractRequestRefs(input model.ExecuteRequestInput) []string {
	var refs []string
	seen := make(map[string]bool)
	add := func(text string) string {
		for _, name := range ExtractVariableRefs(text) {
			if !seen[name] {
				seen[name] = true
				refs = append(refs, name)
			}
		}
		return text
	}

	add(input.URL)
	for _, kv := range input.Headers {
		add(kv.Key)
		add(kv.Value)
	}
	for _, kv := range input.QueryParams {
		add(kv.Key)
		add(kv.Value)
	}
	if input.BodyContent != nil {
		add(*input.BodyContent)
	}
	input.Auth().MapStrings(add)
	return refs
}
