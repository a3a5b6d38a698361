// Package curl imports curl command lines as request values. It is the
// inverse of the curl export format.
package curl

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/MehmetMelik/steq/packages/model"
	"github.com/tidwall/gjson"
)

// Converter converts curl commands to request values.
type Converter struct {
	settings model.RequestSettings
	warnFunc func(format string, args ...any)
}

// Option is a functional option for Converter.
type Option func(*Converter)

// WithSettings sets the request settings imported requests start from.
// Flags such as -L and --max-time override them.
func WithSettings(s model.RequestSettings) Option {
	return func(c *Converter) {
		c.settings = s
	}
}

// WithWarnFunc sets a callback for flags that are recognised but have no
// equivalent in a request value.
func WithWarnFunc(fn func(format string, args ...any)) Option {
	return func(c *Converter) {
		c.warnFunc = fn
	}
}

// NewConverter creates a new curl converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		settings: model.DefaultRequestSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParsedCurl represents a parsed curl command.
type ParsedCurl struct {
	Method          model.HttpMethod
	URL             string
	Headers         []model.KeyValue
	Body            string
	HasBody         bool
	JSON            bool
	Get             bool
	BasicAuth       string
	Insecure        bool
	FollowRedirects bool
	MaxRedirects    *uint
	TimeoutMs       *uint64
	Name            string
}

// curl flags that take no value. Anything not listed here or in Parse is
// assumed to take a value when one follows.
var booleanFlags = map[string]bool{
	"-s": true, "--silent": true,
	"-S": true, "--show-error": true,
	"-v": true, "--verbose": true,
	"-i": true, "--include": true,
	"-f": true, "--fail": true,
	"-g": true, "--globoff": true,
	"--compressed": true,
	"--http1.1":    true,
	"--http2":      true,
}

// short flags whose value may be attached, as in -XPOST.
const shortValueFlags = "XHduAebFm"

// short flags that take no value and may be bundled, as in -sSL.
const shortSwitches = "sSvifgkLG"

// ConvertCommand converts a single curl command to a request value.
func (c *Converter) ConvertCommand(curlCmd string) (model.ExecuteRequestInput, error) {
	parsed, err := c.Parse(curlCmd)
	if err != nil {
		return model.ExecuteRequestInput{}, err
	}
	return c.ToRequest(parsed), nil
}

// ConvertFile converts a file of curl commands. Commands are separated by
// newlines; a trailing backslash or an open quote continues a command onto
// the next line. Blank lines and # comments between commands are skipped.
func (c *Converter) ConvertFile(path string) ([]*ParsedCurl, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var commands []string
	var currentCmd strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if currentCmd.Len() == 0 && (trimmed == "" || strings.HasPrefix(trimmed, "#")) {
			continue
		}

		currentCmd.WriteString(line)
		currentCmd.WriteString("\n")

		if strings.HasSuffix(trimmed, "\\") {
			continue
		}
		if _, err := tokenize(currentCmd.String()); errors.Is(err, errUnterminatedQuote) {
			continue
		}
		commands = append(commands, currentCmd.String())
		currentCmd.Reset()
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if currentCmd.Len() > 0 {
		commands = append(commands, currentCmd.String())
	}

	parsed := make([]*ParsedCurl, 0, len(commands))
	for i, cmd := range commands {
		p, err := c.Parse(cmd)
		if err != nil {
			return nil, fmt.Errorf("failed to convert command %d: %w", i+1, err)
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// Parse parses a curl command string into a ParsedCurl struct.
func (c *Converter) Parse(curlCmd string) (*ParsedCurl, error) {
	parsed := &ParsedCurl{
		Method: model.MethodGet,
	}

	tokens, err := tokenize(curlCmd)
	if err != nil {
		return nil, err
	}
	if len(tokens) > 0 && tokens[0] == "curl" {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no URL specified")
	}

	explicitMethod := false
	var data []string

	i := 0
	value := func(flag string) (string, error) {
		if i+1 >= len(tokens) {
			return "", fmt.Errorf("missing value for %s", flag)
		}
		i += 2
		return tokens[i-1], nil
	}

	for i < len(tokens) {
		if parts := expandFlag(tokens[i]); len(parts) > 1 {
			tokens = append(tokens[:i], append(parts, tokens[i+1:]...)...)
		}
		token := tokens[i]

		switch {
		case token == "-X" || token == "--request":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			m, err := model.ParseMethod(v)
			if err != nil {
				return nil, err
			}
			parsed.Method = m
			explicitMethod = true

		case token == "-H" || token == "--header":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			key, val, ok := strings.Cut(v, ":")
			if ok && strings.TrimSpace(key) != "" {
				parsed.Headers = append(parsed.Headers, model.KeyValue{
					Key:     strings.TrimSpace(key),
					Value:   strings.TrimSpace(val),
					Enabled: true,
				})
			}

		case token == "-d" || token == "--data" || token == "--data-raw" ||
			token == "--data-binary" || token == "--data-ascii" || token == "--data-urlencode" || token == "--json":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			if strings.HasPrefix(v, "@") && token != "--data-raw" {
				c.warn("%s %s: file bodies are imported as the literal argument", token, v)
			}
			if token == "--data-urlencode" {
				v = encodeDataArg(v)
			}
			if token == "--json" {
				parsed.JSON = true
			}
			data = append(data, v)

		case token == "-u" || token == "--user":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			parsed.BasicAuth = v

		case token == "-A" || token == "--user-agent":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			parsed.Headers = append(parsed.Headers, model.KeyValue{Key: "User-Agent", Value: v, Enabled: true})

		case token == "-e" || token == "--referer":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			parsed.Headers = append(parsed.Headers, model.KeyValue{Key: "Referer", Value: v, Enabled: true})

		case token == "-b" || token == "--cookie":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			parsed.Headers = append(parsed.Headers, model.KeyValue{Key: "Cookie", Value: v, Enabled: true})

		case token == "--url":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			parsed.URL = v

		case token == "--max-redirs":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid --max-redirs %q: %w", v, err)
			}
			limit := uint(n)
			parsed.MaxRedirects = &limit

		case token == "-m" || token == "--max-time":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			secs, err := strconv.ParseFloat(v, 64)
			if err != nil || secs < 0 {
				return nil, fmt.Errorf("invalid %s %q", token, v)
			}
			ms := uint64(secs * 1000)
			parsed.TimeoutMs = &ms

		case token == "-F" || token == "--form":
			v, err := value(token)
			if err != nil {
				return nil, err
			}
			c.warn("%s %s: multipart form fields are not imported", token, v)

		case token == "-k" || token == "--insecure":
			parsed.Insecure = true
			c.warn("%s: certificate verification is not part of a request", token)
			i++

		case token == "-L" || token == "--location":
			parsed.FollowRedirects = true
			i++

		case token == "-G" || token == "--get":
			parsed.Get = true
			i++

		case booleanFlags[token]:
			i++

		case strings.HasPrefix(token, "-") && len(token) > 1:
			// Skip unknown flags with potential values
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") && !isURL(tokens[i+1]) {
				i += 2
			} else {
				i++
			}

		default:
			if parsed.URL == "" {
				parsed.URL = token
			}
			i++
		}
	}

	if parsed.URL == "" {
		return nil, fmt.Errorf("no URL found in curl command")
	}

	if len(data) > 0 {
		parsed.Body = strings.Join(data, "&")
		parsed.HasBody = true
		// Data implies POST unless -G moves it into the query.
		if !explicitMethod && !parsed.Get {
			parsed.Method = model.MethodPost
		}
	}

	parsed.Name = generateName(parsed.URL, string(parsed.Method))

	return parsed, nil
}

// expandFlag splits --flag=value, attached short values such as -XPOST and
// bundled short switches such as -sSL. Tokens that need no splitting are
// returned alone.
func expandFlag(t string) []string {
	if strings.HasPrefix(t, "--") {
		if flag, v, ok := strings.Cut(t, "="); ok {
			return []string{flag, v}
		}
		return []string{t}
	}
	if len(t) <= 2 || t[0] != '-' {
		return []string{t}
	}
	if strings.IndexByte(shortValueFlags, t[1]) >= 0 {
		return []string{t[:2], t[2:]}
	}
	for i := 1; i < len(t); i++ {
		if strings.IndexByte(shortSwitches, t[i]) < 0 {
			return []string{t}
		}
	}
	out := make([]string, 0, len(t)-1)
	for i := 1; i < len(t); i++ {
		out = append(out, "-"+t[i:i+1])
	}
	return out
}

// encodeDataArg applies the --data-urlencode rules: "name=content" encodes
// only the content, a bare argument is encoded whole.
func encodeDataArg(arg string) string {
	name, content, ok := strings.Cut(arg, "=")
	if !ok {
		return url.QueryEscape(arg)
	}
	if name == "" {
		return url.QueryEscape(content)
	}
	return name + "=" + url.QueryEscape(content)
}

func (c *Converter) warn(format string, args ...any) {
	if c.warnFunc != nil {
		c.warnFunc(format, args...)
	}
}

// ToRequest converts a ParsedCurl to a request value.
func (c *Converter) ToRequest(parsed *ParsedCurl) model.ExecuteRequestInput {
	req := model.NewExecuteRequest(parsed.Method, parsed.URL)
	req.Headers = model.CloneKeyValues(parsed.Headers)
	if req.Headers == nil {
		req.Headers = []model.KeyValue{}
	}

	if parsed.HasBody {
		if parsed.Get {
			req.QueryParams = parseQueryData(parsed.Body)
		} else {
			req.BodyType = inferBodyType(headerValue(parsed.Headers, "Content-Type"), parsed.Body, parsed.JSON)
			req.BodyContent = model.StringPtr(parsed.Body)
		}
	}

	if parsed.BasicAuth != "" {
		user, pass, _ := strings.Cut(parsed.BasicAuth, ":")
		req.AuthType = model.AuthBasic
		req.AuthConfig = model.BasicAuth{Username: user, Password: pass}
	}

	req.Settings = c.settings
	req.Settings.FollowRedirects = parsed.FollowRedirects
	if parsed.MaxRedirects != nil {
		req.Settings.MaxRedirects = *parsed.MaxRedirects
	}
	if parsed.TimeoutMs != nil {
		req.Settings.TimeoutMs = *parsed.TimeoutMs
	}
	return req
}

func headerValue(headers []model.KeyValue, key string) string {
	for _, h := range headers {
		if h.Enabled && strings.EqualFold(h.Key, key) {
			return h.Value
		}
	}
	return ""
}

// inferBodyType maps a Content-Type onto a body type. Without one, a body
// that is a JSON object or array is json and anything else is form data,
// which is what curl sends by default.
func inferBodyType(contentType, body string, jsonFlag bool) model.BodyType {
	if jsonFlag {
		return model.BodyJSON
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch {
	case mediaType == "":
		if gjson.Valid(body) {
			if r := gjson.Parse(body); r.IsObject() || r.IsArray() {
				return model.BodyJSON
			}
		}
		return model.BodyFormURLEncoded
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return model.BodyJSON
	case mediaType == "application/x-www-form-urlencoded":
		return model.BodyFormURLEncoded
	case strings.HasPrefix(mediaType, "multipart/"):
		return model.BodyMultipart
	default:
		return model.BodyText
	}
}

// parseQueryData splits -G data into query parameters. Pairs that fail to
// unescape are kept verbatim.
func parseQueryData(data string) []model.KeyValue {
	var params []model.KeyValue
	for _, pair := range strings.Split(data, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		params = append(params, model.KeyValue{Key: key, Value: value, Enabled: true})
	}
	if params == nil {
		return []model.KeyValue{}
	}
	return params
}

// isURL checks if a string looks like a URL.
func isURL(s string) bool {
	return strings.Contains(s, "://") || strings.HasPrefix(s, "{{")
}

var namePathPattern = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.-]*://)?[^/?#]*(/[^?#]*)?`)

// generateName generates a request name from the URL and method.
func generateName(url, method string) string {
	matches := namePathPattern.FindStringSubmatch(url)

	path := "/"
	if len(matches) > 1 && matches[1] != "" {
		path = matches[1]
	}

	path = strings.Trim(path, "/")
	if path == "" {
		path = "root"
	}

	return sanitizeName(strings.ToLower(method) + "_" + path)
}

var nonIdentifier = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitizeName sanitizes a name for use as an identifier.
func sanitizeName(name string) string {
	result := nonIdentifier.ReplaceAllString(name, "_")
	return strings.Trim(result, "_")
}
