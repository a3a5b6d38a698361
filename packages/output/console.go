package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool

	passed int
	failed int
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatValidation(result *ValidationResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if result.Err != nil {
		f.failed++
		fmt.Fprintf(f.writer, "  %s %s %s\n", red("✗"), result.File, red(fmt.Sprintf("(%v)", result.Err)))
		return
	}

	symbol := green("✓")
	if result.Passed() {
		f.passed++
	} else {
		f.failed++
		symbol = red("✗")
	}
	fmt.Fprintf(f.writer, "  %s %s", symbol, result.File)
	if result.Request != nil {
		fmt.Fprintf(f.writer, " %s", cyan(fmt.Sprintf("%s %s", result.Request.Method, result.Request.URL)))
	}
	fmt.Fprintf(f.writer, "\n")

	if len(result.Unresolved) > 0 {
		fmt.Fprintf(f.writer, "    %s unresolved: %s\n", yellow("→"), strings.Join(result.Unresolved, ", "))
	}
	if f.verbose && result.Request != nil {
		fmt.Fprintf(f.writer, "    Body: %s, Auth: %s\n", result.Request.BodyType, result.Request.AuthType)
	}
}

// FormatVariables lists the references of one request with their values.
func (f *ConsoleFormatter) FormatVariables(file string, refs []VariableRef) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "%s\n", bold(file))
	if len(refs) == 0 {
		fmt.Fprintf(f.writer, "  (no variables)\n")
		return
	}

	width := 0
	for _, r := range refs {
		width = max(width, len(r.Name))
	}
	for _, r := range refs {
		if !r.Resolved {
			fmt.Fprintf(f.writer, "  %s %-*s %s\n", red("✗"), width, r.Name, red("unresolved"))
			continue
		}
		fmt.Fprintf(f.writer, "  %s %-*s = %s\n", green("✓"), width, r.Name, r.DisplayValue())
	}
}

// FormatNotice prints an informational line such as a clipboard or watch
// status.
func (f *ConsoleFormatter) FormatNotice(msg string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", cyan("›"), msg)
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n\n", bold("steq"), version)
}

// Flush prints the validation summary.
func (f *ConsoleFormatter) Flush(totalDuration time.Duration) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\nFiles: ")
	if f.passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d valid", f.passed)))
	}
	if f.failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d invalid", f.failed)))
	}
	fmt.Fprintf(f.writer, "%d total\n", f.passed+f.failed)
	fmt.Fprintf(f.writer, "Time:  %dms\n", totalDuration.Milliseconds())
	return nil
}
