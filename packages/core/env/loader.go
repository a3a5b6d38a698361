package env

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment is a named set of variables, as the desktop app stores them.
type Environment struct {
	Name      string           `yaml:"name"`
	Variables []EnvironmentVar `yaml:"variables"`
}

// EnvironmentVar is one row of an environment. Secret values are plain
// strings here; only display layers treat them differently.
type EnvironmentVar struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Enabled *bool  `yaml:"enabled,omitempty"`
	Secret  bool   `yaml:"secret,omitempty"`
}

// IsEnabled reports whether the variable is enabled. Rows without an
// explicit enabled field are enabled.
func (v EnvironmentVar) IsEnabled() bool {
	return v.Enabled == nil || *v.Enabled
}

// Pairs returns the enabled variables in file order.
func (e *Environment) Pairs() []Variable {
	pairs := make([]Variable, 0, len(e.Variables))
	for _, v := range e.Variables {
		if v.IsEnabled() && v.Key != "" {
			pairs = append(pairs, Variable{Name: v.Key, Value: v.Value})
		}
	}
	return pairs
}

// LoadEnvironmentFile reads a YAML environment file. A file whose top level
// is a plain mapping of name to value is accepted too, keeping key order.
func LoadEnvironmentFile(path string) (*Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}
	return ParseEnvironment(data)
}

func ParseEnvironment(data []byte) (*Environment, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse environment YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return &Environment{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("environment must be a mapping, got %s", nodeKind(doc))
	}

	if hasKey(doc, "variables") {
		env := &Environment{}
		if err := doc.Decode(env); err != nil {
			return nil, fmt.Errorf("failed to decode environment: %w", err)
		}
		return env, nil
	}

	// Flat form: key: value
	env := &Environment{}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		k, v := doc.Content[i], doc.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("environment variable %q must be a scalar (line %d)", k.Value, v.Line)
		}
		env.Variables = append(env.Variables, EnvironmentVar{Key: k.Value, Value: v.Value})
	}
	return env, nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

// LoadSystemEnv returns process environment variables whose name starts with
// prefix, with the prefix removed, sorted by name. An empty prefix returns
// every variable.
func LoadSystemEnv(prefix string) []Variable {
	var result []Variable
	for _, e := range os.Environ() {
		key, value, found := strings.Cut(e, "=")
		if !found {
			continue
		}
		if prefix == "" {
			result = append(result, Variable{Name: key, Value: value})
		} else if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			result = append(result, Variable{Name: key[len(prefix):], Value: value})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// MergeVariables concatenates sources in order. Since tables are built
// first-wins, pass the highest precedence source first.
func MergeVariables(sources ...[]Variable) []Variable {
	var n int
	for _, src := range sources {
		n += len(src)
	}
	result := make([]Variable, 0, n)
	for _, src := range sources {
		result = append(result, src...)
	}
	return result
}

// ParseAssignments parses name=value strings, as given on a command line.
func ParseAssignments(assignments []string) ([]Variable, error) {
	result := make([]Variable, 0, len(assignments))
	for _, a := range assignments {
		name, value, found := strings.Cut(a, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid variable %q: expected name=value", a)
		}
		result = append(result, Variable{Name: strings.TrimSpace(name), Value: value})
	}
	return result, nil
}
