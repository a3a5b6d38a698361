package output

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// JSONOutput represents the complete JSON validation output
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Files    []JSONFile  `json:"files"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the validation summary
type JSONSummary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// JSONFile represents a single validated document
type JSONFile struct {
	File       string   `json:"file"`
	Valid      bool     `json:"valid"`
	Error      string   `json:"error,omitempty"`
	Method     string   `json:"method,omitempty"`
	URL        string   `json:"url,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
	Duration   float64  `json:"duration"`
}

// JSONVariables is the output of a variable listing
type JSONVariables struct {
	File      string         `json:"file"`
	Variables []JSONVariable `json:"variables"`
}

// JSONVariable represents one variable reference
type JSONVariable struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	Resolved bool   `json:"resolved"`
}

// JSONFormatter formats reports as JSON
type JSONFormatter struct {
	writer  io.Writer
	results []JSONFile
	now     func() time.Time
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:  os.Stdout,
		results: make([]JSONFile, 0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// JSONWithClock sets the time source for the report timestamp.
func JSONWithClock(now func() time.Time) JSONOption {
	return func(f *JSONFormatter) {
		f.now = now
	}
}

func (f *JSONFormatter) FormatValidation(result *ValidationResult) {
	file := JSONFile{
		File:       result.File,
		Valid:      result.Passed(),
		Unresolved: result.Unresolved,
		Duration:   float64(result.Duration.Milliseconds()),
	}
	if result.Err != nil {
		file.Error = result.Err.Error()
	}
	if result.Request != nil {
		file.Method = string(result.Request.Method)
		file.URL = result.Request.URL
	}
	f.results = append(f.results, file)
}

// FormatVariables writes one variable listing immediately.
func (f *JSONFormatter) FormatVariables(file string, refs []VariableRef) {
	out := JSONVariables{File: file, Variables: make([]JSONVariable, 0, len(refs))}
	for _, r := range refs {
		out.Variables = append(out.Variables, JSONVariable{
			Name:     r.Name,
			Value:    r.DisplayValue(),
			Resolved: r.Resolved,
		})
	}
	f.encode(out)
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual file results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var valid, invalid int
	for _, r := range f.results {
		if r.Valid {
			valid++
		} else {
			invalid++
		}
	}

	output := JSONOutput{
		Summary: JSONSummary{
			Total:   len(f.results),
			Valid:   valid,
			Invalid: invalid,
		},
		Files:    f.results,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     f.now().Format(time.RFC3339),
	}
	return f.encode(output)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
