package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MehmetMelik/steq/packages/import/curl"
	"github.com/MehmetMelik/steq/packages/model"
	"github.com/spf13/cobra"
)

var (
	importOutputFlag string
	importFileFlag   bool
)

var importCmd = &cobra.Command{
	Use:   "import <format> <source>",
	Short: "Import requests from other formats",
	Long: `Import requests from other formats and convert them to steq request documents.

Supported formats:
  curl - curl command lines

Examples:
  steq import curl "curl -X POST https://api.example.com/users -d '{\"name\":\"x\"}'"
  steq import curl --file commands.sh -o requests/
  pbpaste | steq import curl -`,
}

var importCurlCmd = &cobra.Command{
	Use:   "curl <command|->",
	Short: "Import from curl commands",
	Long: `Convert a curl command into a request document.

The body type is inferred from the Content-Type header, or from the body
itself when it is valid JSON. -u becomes a basic auth config and -L turns
on redirect following.

With --file, the source is a file of curl commands, one per line (a
trailing backslash continues a command). With a directory as --output,
each command is written to <name>.request.json.

Examples:
  steq import curl "curl https://api.example.com/users -H 'Accept: application/json'"
  steq import curl --file commands.sh -o requests/
  steq import curl - < command.txt`,
	Args: cobra.ExactArgs(1),
	RunE: importCurlCommand,
}

func init() {
	importCurlCmd.Flags().StringVarP(&importOutputFlag, "output", "o", "", "Output file or directory path (default: stdout)")
	importCurlCmd.Flags().BoolVar(&importFileFlag, "file", false, "Read curl commands from a file")

	importCmd.AddCommand(importCurlCmd)
}

func importCurlCommand(cmd *cobra.Command, args []string) error {
	sugar := logger.Sugar()
	converter := curl.NewConverter(
		curl.WithSettings(cfg.RequestSettings()),
		curl.WithWarnFunc(func(format string, args ...any) {
			sugar.Warnf(format, args...)
		}),
	)

	var parsed []*curl.ParsedCurl
	switch {
	case importFileFlag:
		p, err := converter.ConvertFile(args[0])
		if err != nil {
			return withExitCode(ExitParseError, fmt.Errorf("failed to convert curl commands: %w", err))
		}
		parsed = p
	default:
		command := args[0]
		if command == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			command = string(data)
		}
		p, err := converter.Parse(command)
		if err != nil {
			return withExitCode(ExitParseError, fmt.Errorf("failed to convert curl command: %w", err))
		}
		parsed = []*curl.ParsedCurl{p}
	}

	if len(parsed) == 0 {
		return withExitCode(ExitParseError, fmt.Errorf("no curl commands found"))
	}

	requests := make([]model.ExecuteRequestInput, len(parsed))
	for i, p := range parsed {
		requests[i] = converter.ToRequest(p)
	}

	if importOutputFlag == "" {
		if len(requests) == 1 {
			return writeJSON(cmd, requests[0])
		}
		return writeJSON(cmd, requests)
	}

	if isDirTarget(importOutputFlag) || len(requests) > 1 {
		return writeRequestDir(cmd, importOutputFlag, parsed, requests)
	}

	if dir := filepath.Dir(importOutputFlag); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := encodeJSON(requests[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(importOutputFlag, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported to %s\n", importOutputFlag)
	return nil
}

// writeRequestDir writes each request to <name>.request.json under dir.
// Repeated names get a numeric suffix.
func writeRequestDir(cmd *cobra.Command, dir string, parsed []*curl.ParsedCurl, requests []model.ExecuteRequestInput) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	used := make(map[string]int)
	for i, req := range requests {
		name := parsed[i].Name
		if name == "" {
			name = "request"
		}
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}

		data, err := encodeJSON(req)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name+".request.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported %d request(s) to %s\n", len(requests), dir)
	return nil
}

func isDirTarget(path string) bool {
	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
