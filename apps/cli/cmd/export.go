package cmd

import (
	"fmt"

	"github.com/MehmetMelik/steq/packages/auth"
	"github.com/MehmetMelik/steq/packages/export"
	"github.com/MehmetMelik/steq/packages/output"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	formatFlag    string
	applyAuthFlag bool
	rawFlag       bool
	copyFlag      bool
	watchFlag     bool
)

var exportCmd = &cobra.Command{
	Use:   "export <request.json|->",
	Short: "Render a request as a curl, wget, fetch or HTTPie snippet",
	Long: `Render a request document as a shell command or source snippet.

Variables are resolved before rendering unless --raw is given. Disabled
headers and query parameters are left out, and a Content-Type header is
added for json, text, form and multipart bodies when none is set.

Formats:
  curl    curl command
  wget    wget command
  fetch   JavaScript fetch() call
  httpie  HTTPie command

Examples:
  steq export get-user.request.json
  steq export get-user.request.json -f httpie --env-file dev.yaml
  steq export get-user.request.json --var userId=42 --copy
  steq export get-user.request.json --apply-auth --watch`,
	Args: cobra.ExactArgs(1),
	RunE: exportCommand,
}

func init() {
	exportCmd.Flags().StringVarP(&formatFlag, "format", "f", getEnvString("STEQ_FORMAT", ""), "Output format: curl, wget, fetch, httpie (env: STEQ_FORMAT)")
	exportCmd.Flags().BoolVar(&applyAuthFlag, "apply-auth", getEnvBool("STEQ_APPLY_AUTH", false), "Write the auth config into headers or query parameters (env: STEQ_APPLY_AUTH)")
	exportCmd.Flags().BoolVar(&rawFlag, "raw", false, "Render without resolving variables")
	exportCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy the snippet to the clipboard")
	exportCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-render when the request or variable files change")
	addVariableFlags(exportCmd)
}

func exportCommand(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(firstNonEmpty(formatFlag, cfg.DefaultFormat))
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}
	applyAuth := cfg.GetApplyAuth()
	if flagSet(cmd, "apply-auth", "STEQ_APPLY_AUTH") {
		applyAuth = applyAuthFlag
	}

	console := output.NewConsoleFormatter(
		output.WithWriter(cmd.ErrOrStderr()),
		output.WithNoColor(cfg.GetNoColor()),
	)

	render := func() error {
		snippet, err := renderExport(cmd, args[0], format, applyAuth)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), snippet)
		if copyFlag {
			if err := clipboard.WriteAll(snippet); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			console.FormatNotice("Copied to clipboard")
		}
		return nil
	}

	if err := render(); err != nil {
		if !watchFlag {
			return err
		}
		console.FormatError(err)
	}
	if !watchFlag {
		return nil
	}
	return watchFiles(console, []string{
		args[0],
		firstNonEmpty(envFileFlag, cfg.EnvironmentFile),
		firstNonEmpty(dotenvFlag, cfg.EnvFile),
	}, render)
}

// renderExport loads, resolves and renders one request document.
func renderExport(cmd *cobra.Command, path string, format export.Format, applyAuth bool) (string, error) {
	req, err := loadRequest(cmd, path)
	if err != nil {
		return "", err
	}

	if !rawFlag {
		pairs, _, err := loadVariables()
		if err != nil {
			return "", err
		}
		req = newResolver(pairs).ResolveRequest(req)
	}

	if applyAuth {
		req, err = auth.Apply(req)
		if err != nil {
			return "", withExitCode(ExitAuthError, fmt.Errorf("%s auth: %w", req.AuthType, err))
		}
	}

	snippet, err := export.ExportRequest(req.ExportInput(), format)
	if err != nil {
		return "", err
	}
	logger.Debug("rendered request",
		zap.String("file", path),
		zap.String("format", string(format)),
		zap.String("method", req.Method.String()),
		zap.Bool("applyAuth", applyAuth))
	return snippet, nil
}
