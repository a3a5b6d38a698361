package output

import (
	"time"

	"github.com/MehmetMelik/steq/packages/model"
)

// ValidationResult is the outcome of checking one request document.
type ValidationResult struct {
	File       string
	Request    *model.ExecuteRequestInput
	Err        error
	Unresolved []string
	Strict     bool
	Duration   time.Duration
}

// Passed reports whether the document decoded and, in strict mode, every
// variable it references resolved.
func (r *ValidationResult) Passed() bool {
	if r.Err != nil {
		return false
	}
	return !r.Strict || len(r.Unresolved) == 0
}

// VariableRef is one {{name}} reference and what it resolves to.
type VariableRef struct {
	Name     string
	Value    string
	Resolved bool
	Secret   bool
}

const secretMask = "******"

// DisplayValue returns the value to print, masking secrets.
func (v VariableRef) DisplayValue() string {
	if v.Secret && v.Value != "" {
		return secretMask
	}
	return v.Value
}
