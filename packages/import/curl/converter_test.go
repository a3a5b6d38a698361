package curl

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/MehmetMelik/steq/packages/model"
)

func TestParse_SimpleGet(t *testing.T) {
	converter := NewConverter()

	parsed, err := converter.Parse(`curl https://api.example.com/users`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Method != model.MethodGet {
		t.Errorf("expected method GET, got %s", parsed.Method)
	}
	if parsed.URL != "https://api.example.com/users" {
		t.Errorf("expected URL https://api.example.com/users, got %s", parsed.URL)
	}
	if parsed.HasBody {
		t.Error("expected no body")
	}
}

func TestParse_PostWithData(t *testing.T) {
	converter := NewConverter()

	parsed, err := converter.Parse(`curl -X POST https://api.example.com/users -d '{"name":"John"}'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Method != model.MethodPost {
		t.Errorf("expected method POST, got %s", parsed.Method)
	}
	if parsed.Body != `{"name":"John"}` {
		t.Errorf("expected body {\"name\":\"John\"}, got %s", parsed.Body)
	}
}

func TestParse_WithHeaders(t *testing.T) {
	converter := NewConverter()

	parsed, err := converter.Parse(`curl -H "Content-Type: application/json" -H "Authorization: Bearer token123" -H 'X-Empty:' https://api.example.com/users`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []model.KeyValue{
		{Key: "Content-Type", Value: "application/json", Enabled: true},
		{Key: "Authorization", Value: "Bearer token123", Enabled: true},
		{Key: "X-Empty", Value: "", Enabled: true},
	}
	if !reflect.DeepEqual(parsed.Headers, expected) {
		t.Errorf("headers: got %+v, expected %+v", parsed.Headers, expected)
	}
}

func TestParse_WithBasicAuth(t *testing.T) {
	converter := NewConverter()

	parsed, err := converter.Parse(`curl -u admin:password123 https://api.example.com/admin`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.BasicAuth != "admin:password123" {
		t.Errorf("expected basicAuth admin:password123, got %s", parsed.BasicAuth)
	}
}

func TestParse_ImplicitPost(t *testing.T) {
	converter := NewConverter()

	// Without -X, -d should imply POST
	parsed, err := converter.Parse(`curl -d "name=John" https://api.example.com/users`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Method != model.MethodPost {
		t.Errorf("expected implicit POST method, got %s", parsed.Method)
	}
}

func TestParse_Flags(t *testing.T) {
	var warnings []string
	converter := NewConverter(WithWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, format)
	}))

	parsed, err := converter.Parse(`curl -k -L https://api.example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !parsed.Insecure {
		t.Error("expected Insecure to be true")
	}
	if !parsed.FollowRedirects {
		t.Error("expected FollowRedirects to be true")
	}
	if len(warnings) != 1 {
		t.Errorf("expected one warning for -k, got %d", len(warnings))
	}
}

func TestParse_FlagForms(t *testing.T) {
	tests := []struct {
		name   string
		cmd    string
		method model.HttpMethod
		url    string
		body   string
		follow bool
	}{
		{"bundled switches", `curl -sSL https://x.io`, model.MethodGet, "https://x.io", "", true},
		{"attached method", `curl -XPUT https://x.io -d a=1`, model.MethodPut, "https://x.io", "a=1", false},
		{"long with equals", `curl --request=PATCH --data-raw='{"a":1}' https://x.io`, model.MethodPatch, "https://x.io", `{"a":1}`, false},
		{"url flag", `curl --url https://x.io/path --compressed`, model.MethodGet, "https://x.io/path", "", false},
		{"lowercase method", `curl -X delete https://x.io`, model.MethodDelete, "https://x.io", "", false},
		{"data that looks like a flag", `curl -d '-Hello' https://x.io`, model.MethodPost, "https://x.io", "-Hello", false},
		{"multiple data joined", `curl -d a=1 --data b=2 https://x.io`, model.MethodPost, "https://x.io", "a=1&b=2", false},
		{"data urlencode", `curl --data-urlencode 'q=a b&c' https://x.io`, model.MethodPost, "https://x.io", "q=a+b%26c", false},
		{"unknown flag with value", `curl --connect-timeout 5 https://x.io`, model.MethodGet, "https://x.io", "", false},
		{"host without scheme", `curl -v example.com/a`, model.MethodGet, "example.com/a", "", false},
		{"template url", `curl '{{baseUrl}}/users'`, model.MethodGet, "{{baseUrl}}/users", "", false},
		{"without curl prefix", `-X HEAD https://x.io`, model.MethodHead, "https://x.io", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := NewConverter().Parse(tt.cmd)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed.Method != tt.method {
				t.Errorf("method: got %s, expected %s", parsed.Method, tt.method)
			}
			if parsed.URL != tt.url {
				t.Errorf("url: got %q, expected %q", parsed.URL, tt.url)
			}
			if parsed.Body != tt.body {
				t.Errorf("body: got %q, expected %q", parsed.Body, tt.body)
			}
			if parsed.FollowRedirects != tt.follow {
				t.Errorf("follow: got %v, expected %v", parsed.FollowRedirects, tt.follow)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		`curl`,
		``,
		`curl -X`,
		`curl -H`,
		`curl -X FETCH https://x.io`,
		`curl -H 'unterminated https://x.io`,
		`curl -s`,
		`curl --max-redirs many https://x.io`,
		`curl -m -1 https://x.io`,
	}

	for _, cmd := range tests {
		if _, err := NewConverter().Parse(cmd); err == nil {
			t.Errorf("Parse(%q): expected error", cmd)
		}
	}
}

func TestToRequest(t *testing.T) {
	converter := NewConverter()

	req, err := converter.ConvertCommand(`curl -X POST -H "Content-Type: application/json" -d '{"name":"John"}' -u admin:secret --max-time 2.5 --max-redirs 3 -L https://api.example.com/users`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Method != model.MethodPost || req.URL != "https://api.example.com/users" {
		t.Errorf("unexpected request line %s %s", req.Method, req.URL)
	}
	if req.BodyType != model.BodyJSON {
		t.Errorf("expected json body, got %s", req.BodyType)
	}
	if req.BodyContent == nil || *req.BodyContent != `{"name":"John"}` {
		t.Errorf("unexpected body %v", req.BodyContent)
	}
	if req.AuthType != model.AuthBasic {
		t.Errorf("expected basic auth, got %s", req.AuthType)
	}
	if cfg, ok := req.AuthConfig.(model.BasicAuth); !ok || cfg.Username != "admin" || cfg.Password != "secret" {
		t.Errorf("unexpected auth config %#v", req.AuthConfig)
	}

	expected := model.RequestSettings{TimeoutMs: 2500, FollowRedirects: true, MaxRedirects: 3}
	if req.Settings != expected {
		t.Errorf("settings: got %+v, expected %+v", req.Settings, expected)
	}
}

func TestToRequest_Defaults(t *testing.T) {
	converter := NewConverter(WithSettings(model.RequestSettings{TimeoutMs: 100, FollowRedirects: true, MaxRedirects: 7}))

	req, err := converter.ConvertCommand(`curl https://x.io`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.BodyType != model.BodyNone || req.BodyContent != nil {
		t.Errorf("expected no body, got %s %v", req.BodyType, req.BodyContent)
	}
	if req.AuthType != model.AuthNone {
		t.Errorf("expected no auth, got %s", req.AuthType)
	}
	// curl does not follow redirects without -L.
	expected := model.RequestSettings{TimeoutMs: 100, FollowRedirects: false, MaxRedirects: 7}
	if req.Settings != expected {
		t.Errorf("settings: got %+v, expected %+v", req.Settings, expected)
	}
	if req.Headers == nil || req.QueryParams == nil {
		t.Error("expected empty, non-nil tables")
	}
}

func TestToRequest_GetMovesDataToQuery(t *testing.T) {
	req, err := NewConverter().ConvertCommand(`curl -G -d 'q=hello+world' -d 'page=2' https://x.io/search`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Method != model.MethodGet {
		t.Errorf("expected GET, got %s", req.Method)
	}
	if req.BodyContent != nil {
		t.Errorf("expected no body, got %q", *req.BodyContent)
	}
	expected := []model.KeyValue{
		{Key: "q", Value: "hello world", Enabled: true},
		{Key: "page", Value: "2", Enabled: true},
	}
	if !reflect.DeepEqual(req.QueryParams, expected) {
		t.Errorf("query: got %+v, expected %+v", req.QueryParams, expected)
	}
}

func TestInferBodyType(t *testing.T) {
	tests := []struct {
		contentType string
		body        string
		json        bool
		expected    model.BodyType
	}{
		{"", `{"a":1}`, false, model.BodyJSON},
		{"", `[1,2]`, false, model.BodyJSON},
		{"", `"just a string"`, false, model.BodyFormURLEncoded},
		{"", `a=1&b=2`, false, model.BodyFormURLEncoded},
		{"", `a=1`, true, model.BodyJSON},
		{"application/json; charset=utf-8", `x`, false, model.BodyJSON},
		{"application/vnd.api+json", `{}`, false, model.BodyJSON},
		{"Application/X-WWW-Form-Urlencoded", `a=1`, false, model.BodyFormURLEncoded},
		{"multipart/form-data; boundary=x", `--x`, false, model.BodyMultipart},
		{"text/plain", `{"a":1}`, false, model.BodyText},
		{"application/xml", `<a/>`, false, model.BodyText},
	}

	for _, tt := range tests {
		if got := inferBodyType(tt.contentType, tt.body, tt.json); got != tt.expected {
			t.Errorf("inferBodyType(%q, %q, %v): got %s, expected %s", tt.contentType, tt.body, tt.json, got, tt.expected)
		}
	}
}

func TestConvertFile(t *testing.T) {
	content := `# exported requests
curl -X POST \
  -H 'Content-Type: application/json' \
  -d '{
  "name": "it'\''s"
}' \
  'https://api.example.com/users'

# second
curl https://api.example.com/health
`
	path := filepath.Join(t.TempDir(), "requests.sh")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	parsed, err := NewConverter().ConvertFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(parsed))
	}
	if parsed[0].Body != "{\n  \"name\": \"it's\"\n}" {
		t.Errorf("unexpected body %q", parsed[0].Body)
	}
	if parsed[0].Name != "post_users" {
		t.Errorf("unexpected name %q", parsed[0].Name)
	}
	if parsed[1].URL != "https://api.example.com/health" || parsed[1].Method != model.MethodGet {
		t.Errorf("unexpected second command %s %s", parsed[1].Method, parsed[1].URL)
	}
}

func TestConvertFile_Missing(t *testing.T) {
	_, err := NewConverter().ConvertFile(filepath.Join(t.TempDir(), "nope.sh"))
	if err == nil || !strings.Contains(err.Error(), "failed to open file") {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestGenerateName(t *testing.T) {
	tests := []struct {
		url    string
		method string
		expect string
	}{
		{"https://api.example.com/users", "GET", "get_users"},
		{"https://api.example.com/users/123", "GET", "get_users_123"},
		{"https://api.example.com/", "POST", "post_root"},
		{"https://api.example.com/api/v1/users", "PUT", "put_api_v1_users"},
		{"https://api.example.com/my-items?x=1", "DELETE", "delete_my_items"},
		{"{{baseUrl}}/users", "GET", "get_users"},
		{"example.com", "GET", "get_root"},
	}

	for _, tt := range tests {
		result := generateName(tt.url, tt.method)
		if result != tt.expect {
			t.Errorf("generateName(%q, %q): got %q, expected %q", tt.url, tt.method, result, tt.expect)
		}
	}
}
