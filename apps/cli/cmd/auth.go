package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/MehmetMelik/steq/packages/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var authWriteFlag bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect auth types and switch a request's auth config",
}

var authTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported auth types",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range model.AuthTypes() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}

var authDefaultsCmd = &cobra.Command{
	Use:   "defaults <type>",
	Short: "Print the empty config of an auth type",
	Long: `Print the config a request starts with after switching to an auth type.

Examples:
  steq auth defaults oauth2
  steq auth defaults api_key`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: authTypeNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseAuthTypeArg(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd, model.DefaultConfigForType(t))
	},
}

var authSwitchCmd = &cobra.Command{
	Use:   "switch <request.json> <type>",
	Short: "Change a request's auth type, resetting its auth config",
	Long: `Change the auth type of a request document. The previous auth config is
discarded and replaced with the empty config of the new type.

Examples:
  steq auth switch get-user.request.json bearer
  steq auth switch get-user.request.json aws_v4 --write`,
	Args: cobra.ExactArgs(2),
	RunE: authSwitchCommand,
}

func init() {
	authSwitchCmd.Flags().BoolVarP(&authWriteFlag, "write", "w", false, "Write the result back to the file instead of stdout")

	authCmd.AddCommand(authTypesCmd)
	authCmd.AddCommand(authDefaultsCmd)
	authCmd.AddCommand(authSwitchCmd)
}

func authSwitchCommand(cmd *cobra.Command, args []string) error {
	path := args[0]
	t, err := parseAuthTypeArg(args[1])
	if err != nil {
		return err
	}
	req, err := loadRequest(cmd, path)
	if err != nil {
		return err
	}

	previous := req.AuthType
	req.AuthType, req.AuthConfig = model.SwitchAuthType(t)
	logger.Debug("switched auth type",
		zap.String("file", path),
		zap.String("from", previous.String()),
		zap.String("to", t.String()))

	if !authWriteFlag || path == "-" {
		return writeJSON(cmd, req)
	}

	data, err := encodeJSON(req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write request: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Switched %s from %s to %s\n", path, previous, t)
	return nil
}

func parseAuthTypeArg(s string) (model.AuthType, error) {
	t, ok := model.ParseAuthType(s)
	if !ok {
		return t, withExitCode(ExitUsageError,
			fmt.Errorf("unknown auth type %q (expected one of %s)", s, strings.Join(authTypeNames(), ", ")))
	}
	return t, nil
}

func authTypeNames() []string {
	types := model.AuthTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := encodeJSON(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// encodeJSON indents v with two spaces. URLs and bodies are printed as
// written, without HTML escaping.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}
