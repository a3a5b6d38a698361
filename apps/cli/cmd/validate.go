package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/MehmetMelik/steq/packages/core/env"
	"github.com/MehmetMelik/steq/packages/model"
	"github.com/MehmetMelik/steq/packages/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateOutputFlag string
	validateStrictFlag bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Validate request documents",
	Long: `Validate request documents against the request schema without rendering
them. Directories are searched for *.request.json and *.steq.json files.

With --strict, a document that references a variable none of the
variable sources define is reported as invalid.

Examples:
  steq validate get-user.request.json
  steq validate ./requests --strict --env-file dev.yaml
  steq validate ./requests -o junit > report.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func init() {
	validateCmd.Flags().StringVarP(&validateOutputFlag, "output", "o", "console", "Output format: console, json, junit")
	validateCmd.Flags().BoolVar(&validateStrictFlag, "strict", false, "Treat unresolved variables as errors")
	addVariableFlags(validateCmd)
}

// validationFormatter is implemented by every report format.
type validationFormatter interface {
	FormatHeader(version string)
	FormatValidation(result *output.ValidationResult)
	FormatError(err error)
	Flush(totalDuration time.Duration) error
}

func newValidationFormatter(cmd *cobra.Command, name string) (validationFormatter, error) {
	w := cmd.OutOrStdout()
	switch strings.ToLower(name) {
	case "console", "":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(cfg.GetVerbose()),
			output.WithNoColor(cfg.GetNoColor()),
		), nil
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w)), nil
	case "junit":
		return output.NewJUnitFormatter(output.JUnitWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected console, json or junit)", name)
	}
}

func validateCommand(cmd *cobra.Command, args []string) error {
	formatter, err := newValidationFormatter(cmd, validateOutputFlag)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}
	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no .request.json or .steq.json files found"))
	}

	var resolver *env.Resolver
	if validateStrictFlag {
		pairs, _, err := loadVariables()
		if err != nil {
			return err
		}
		resolver = env.NewResolver(pairs)
	}

	formatter.FormatHeader(version)
	start := time.Now()
	failed := 0
	for _, file := range files {
		result := validateFile(cmd, file, resolver)
		if !result.Passed() {
			failed++
		}
		formatter.FormatValidation(result)
	}
	if err := formatter.Flush(time.Since(start)); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d of %d file(s) invalid", failed, len(files))
	}
	return nil
}

func validateFile(cmd *cobra.Command, file string, resolver *env.Resolver) *output.ValidationResult {
	start := time.Now()
	result := &output.ValidationResult{File: file, Strict: resolver != nil}
	defer func() {
		result.Duration = time.Since(start)
	}()

	data, err := readRequestFile(cmd, file)
	if err != nil {
		result.Err = err
		return result
	}
	req, err := model.DecodeExecuteRequest(data)
	if err != nil {
		logger.Debug("invalid request document", zap.String("file", file), zap.Error(err))
		result.Err = err
		return result
	}
	result.Request = &req

	if resolver != nil {
		result.Unresolved = unresolvedRefs(resolver, req)
	}
	return result
}
