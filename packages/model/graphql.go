package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// GraphQLContent is the structure stored, JSON encoded, in the body content
// of a graphql request. Variables is itself JSON text and opaque here.
type GraphQLContent struct {
	Query         string `json:"query"`
	Variables     string `json:"variables"`
	OperationName string `json:"operationName"`
}

// ParseGraphQLContent decodes body content as a GraphQLContent object. It
// reports false for anything that is not a JSON object with string fields.
func ParseGraphQLContent(content string) (GraphQLContent, bool) {
	var gql GraphQLContent
	if !gjson.Valid(content) || !gjson.Parse(content).IsObject() {
		return gql, false
	}
	if err := json.Unmarshal([]byte(content), &gql); err != nil {
		return gql, false
	}
	return gql, true
}

// Encode serializes the content the way body content stores it: compact,
// field order query, variables, operationName, without HTML escaping.
func (g GraphQLContent) Encode() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a struct of strings cannot fail.
	_ = enc.Encode(g)
	return strings.TrimSuffix(buf.String(), "\n")
}
