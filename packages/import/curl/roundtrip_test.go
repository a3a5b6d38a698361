package curl

import (
	"reflect"
	"testing"

	"github.com/MehmetMelik/steq/packages/export"
	"github.com/MehmetMelik/steq/packages/model"
)

// Importing a rendered curl command recovers the request it was rendered from.
func TestExportRoundTrip(t *testing.T) {
	inputs := []model.ExportRequestInput{
		{
			Method: model.MethodGet,
			URL:    "https://api.example.com/users",
		},
		{
			Method:      model.MethodDelete,
			URL:         "https://api.example.com/users?force=true",
			QueryParams: []model.KeyValue{{Key: "reason", Value: "it's done", Enabled: true}, {Key: "x", Value: "off"}},
			Headers:     []model.KeyValue{{Key: "Authorization", Value: "Bearer t0k'en", Enabled: true}},
		},
		{
			Method:      model.MethodPost,
			URL:         "https://api.example.com/users",
			Headers:     []model.KeyValue{{Key: "Accept", Value: "application/json", Enabled: true}, {Key: "X-Off", Value: "1"}},
			BodyType:    model.BodyJSON,
			BodyContent: model.StringPtr("{\n  \"name\": \"O'Brien\",\n  \"tags\": [\"a\", \"b\"]\n}"),
		},
		{
			Method:      model.MethodPut,
			URL:         "{{baseUrl}}/notes/{{id}}",
			BodyType:    model.BodyText,
			BodyContent: model.StringPtr(`$HOME and "quotes" and \backslash`),
		},
		{
			Method:      model.MethodPatch,
			URL:         "https://api.example.com/form",
			BodyType:    model.BodyFormURLEncoded,
			BodyContent: model.StringPtr("a=1&b=two+words"),
		},
	}

	converter := NewConverter()
	for _, in := range inputs {
		t.Run(string(in.Method), func(t *testing.T) {
			cmd, err := export.ExportRequest(in, export.FormatCurl)
			if err != nil {
				t.Fatal(err)
			}

			req, err := converter.ConvertCommand(cmd)
			if err != nil {
				t.Fatalf("import of %q failed: %v", cmd, err)
			}

			if req.Method != in.Method {
				t.Errorf("method: got %s, expected %s", req.Method, in.Method)
			}
			if want := export.BuildURL(in.URL, in.QueryParams); req.URL != want {
				t.Errorf("url: got %q, expected %q", req.URL, want)
			}

			wantHeaders := []model.KeyValue{}
			for _, h := range export.EffectiveHeaders(in.Headers, in.BodyType) {
				wantHeaders = append(wantHeaders, model.KeyValue{Key: h.Key, Value: h.Value, Enabled: true})
			}
			if !reflect.DeepEqual(req.Headers, wantHeaders) {
				t.Errorf("headers: got %+v, expected %+v", req.Headers, wantHeaders)
			}

			if in.HasBody() {
				if req.BodyContent == nil || *req.BodyContent != in.Body() {
					t.Errorf("body: got %v, expected %q", req.BodyContent, in.Body())
				}
				if req.BodyType != in.BodyType {
					t.Errorf("body type: got %s, expected %s", req.BodyType, in.BodyType)
				}
			} else if req.BodyContent != nil {
				t.Errorf("expected no body, got %q", *req.BodyContent)
			}
		})
	}
}
