package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"github.com/MehmetMelik/steq/packages/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []*ValidationResult {
	req := model.NewExecuteRequest(model.MethodPost, "{{baseUrl}}/users")
	return []*ValidationResult{
		{File: "ok.json", Request: &req, Duration: 2 * time.Millisecond},
		{File: "warn.json", Request: &req, Unresolved: []string{"baseUrl"}},
		{File: "strict.json", Request: &req, Unresolved: []string{"baseUrl"}, Strict: true},
		{File: "bad.json", Err: errors.New("url: is required")},
	}
}

func TestValidationResultPassed(t *testing.T) {
	results := sampleResults()
	assert.True(t, results[0].Passed())
	assert.True(t, results[1].Passed())
	assert.False(t, results[2].Passed())
	assert.False(t, results[3].Passed())
}

func TestVariableRefDisplayValue(t *testing.T) {
	assert.Equal(t, "v", VariableRef{Name: "a", Value: "v", Resolved: true}.DisplayValue())
	assert.Equal(t, secretMask, VariableRef{Name: "a", Value: "v", Resolved: true, Secret: true}.DisplayValue())
	assert.Equal(t, "", VariableRef{Name: "a", Secret: true}.DisplayValue())
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	for _, r := range sampleResults() {
		f.FormatValidation(r)
	}
	require.NoError(t, f.Flush(5*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "✓ ok.json POST {{baseUrl}}/users")
	assert.Contains(t, out, "→ unresolved: baseUrl")
	assert.Contains(t, out, "✗ strict.json")
	assert.Contains(t, out, "✗ bad.json (url: is required)")
	assert.Contains(t, out, "Files: 2 valid, 2 invalid, 4 total")
	assert.Contains(t, out, "Time:  5ms")
}

func TestConsoleFormatVariables(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatVariables("req.json", []VariableRef{
		{Name: "baseUrl", Value: "https://api.example.com", Resolved: true},
		{Name: "token", Value: "abc", Resolved: true, Secret: true},
		{Name: "id", Resolved: false},
	})
	f.FormatVariables("empty.json", nil)

	assert.Equal(t, "req.json\n"+
		"  ✓ baseUrl = https://api.example.com\n"+
		"  ✓ token   = ******\n"+
		"  ✗ id      unresolved\n"+
		"empty.json\n"+
		"  (no variables)\n", buf.String())
}

func TestConsoleFormatter_Misc(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatHeader("1.2.3")
	f.FormatNotice("copied to clipboard")
	f.FormatError(errors.New("boom"))

	assert.Equal(t, "steq 1.2.3\n\n› copied to clipboard\nError: boom\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	f := NewJSONFormatter(JSONWithWriter(&buf), JSONWithClock(func() time.Time { return fixed }))

	for _, r := range sampleResults() {
		f.FormatValidation(r)
	}
	require.NoError(t, f.Flush(3*time.Millisecond))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, JSONSummary{Total: 4, Valid: 2, Invalid: 2}, out.Summary)
	assert.Equal(t, "2024-05-06T07:08:09Z", out.Time)
	require.Len(t, out.Files, 4)
	assert.Equal(t, "POST", out.Files[0].Method)
	assert.Equal(t, []string{"baseUrl"}, out.Files[2].Unresolved)
	assert.Equal(t, "url: is required", out.Files[3].Error)
}

func TestJSONFormatVariables(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatVariables("req.json", []VariableRef{
		{Name: "token", Value: "abc", Resolved: true, Secret: true},
		{Name: "id"},
	})

	var out JSONVariables
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, JSONVariables{
		File: "req.json",
		Variables: []JSONVariable{
			{Name: "token", Value: secretMask, Resolved: true},
			{Name: "id"},
		},
	}, out)
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))

	for _, r := range sampleResults() {
		f.FormatValidation(r)
	}
	require.NoError(t, f.Flush(time.Second))

	assert.Contains(t, buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`)

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))
	assert.Equal(t, 4, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	require.Len(t, suites.TestSuites, 1)

	cases := suites.TestSuites[0].TestCases
	require.Len(t, cases, 4)
	assert.Nil(t, cases[0].Failure)
	assert.Nil(t, cases[1].Failure)
	require.NotNil(t, cases[2].Failure)
	assert.Equal(t, "baseUrl", cases[2].Failure.Content)
	require.NotNil(t, cases[3].Error)
	assert.Equal(t, "url: is required", cases[3].Error.Message)
}
