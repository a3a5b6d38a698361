package env

import (
	"regexp"
)

var variablePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// Variable is one (name, value) pair of a variable table.
type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// NewTable builds a lookup table from ordered pairs. When a name appears
// more than once the first pair wins.
func NewTable(pairs []Variable) map[string]string {
	table := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if _, seen := table[p.Name]; !seen {
			table[p.Name] = p.Value
		}
	}
	return table
}

// ResolveString replaces every {{name}} token whose name is in variables
// with its value. Unknown tokens are left as written. Replacement values are
// not scanned again.
func ResolveString(template string, variables map[string]string) string {
	if template == "" || len(variables) == 0 {
		return template
	}
	return variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		if val, ok := variables[match[2:len(match)-2]]; ok {
			return val
		}
		return match
	})
}

// ExtractVariableRefs returns the names of all tokens in text, in order and
// with duplicates.
func ExtractVariableRefs(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// Resolver resolves templates against a fixed variable table. It is not
// modified after construction and is safe for concurrent use as long as its
// WarnFunc is.
type Resolver struct {
	variables map[string]string
	warnFunc  WarnFunc
}

// Option is a functional option for Resolver.
type Option func(*Resolver)

// WithWarnFunc sets a function called once for every unresolved token.
func WithWarnFunc(fn WarnFunc) Option {
	return func(r *Resolver) {
		r.warnFunc = fn
	}
}

func NewResolver(pairs []Variable, opts ...Option) *Resolver {
	r := &Resolver{
		variables: NewTable(pairs),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Resolve(input string) string {
	if r.warnFunc == nil {
		return ResolveString(input, r.variables)
	}
	return variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		name := match[2 : len(match)-2]
		if val, ok := r.variables[name]; ok {
			return val
		}
		r.warnFunc("unresolved variable: %s", name)
		return match
	})
}

func (r *Resolver) HasVariable(name string) bool {
	_, ok := r.variables[name]
	return ok
}

func (r *Resolver) GetVariable(name string) (string, bool) {
	v, ok := r.variables[name]
	return v, ok
}

// Len returns the number of distinct names in the table.
func (r *Resolver) Len() int {
	return len(r.variables)
}

// HasUnresolvedVariables reports whether text references a name missing
// from the table.
func (r *Resolver) HasUnresolvedVariables(text string) bool {
	for _, name := range ExtractVariableRefs(text) {
		if !r.HasVariable(name) {
			return true
		}
	}
	return false
}

// GetUnresolvedVariables returns the names text references that the table
// does not define, de-duplicated in first-seen order. It returns nil when
// everything resolves.
func (r *Resolver) GetUnresolvedVariables(text string) []string {
	var unresolved []string
	seen := make(map[string]bool)
	for _, name := range ExtractVariableRefs(text) {
		if r.HasVariable(name) || seen[name] {
			continue
		}
		seen[name] = true
		unresolved = append(unresolved, name)
	}
	return unresolved
}
