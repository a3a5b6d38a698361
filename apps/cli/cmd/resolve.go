package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/MehmetMelik/steq/packages/core/env"
	"github.com/MehmetMelik/steq/packages/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	resolveOutputFlag string
	resolveStrictFlag bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <request.json|->",
	Short: "Print a request with its variables substituted",
	Long: `Resolve {{variable}} placeholders in a request document and print the
result. Unknown variables are left as written; with --strict the command
fails when any remain.

Examples:
  steq resolve get-user.request.json --env-file dev.yaml
  steq resolve get-user.request.json --var baseUrl=http://localhost:3000 -o yaml
  cat get-user.request.json | steq resolve - --strict`,
	Args: cobra.ExactArgs(1),
	RunE: resolveCommand,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveOutputFlag, "output", "o", "json", "Output format: json, yaml")
	resolveCmd.Flags().BoolVar(&resolveStrictFlag, "strict", false, "Fail when variables remain unresolved")
	addVariableFlags(resolveCmd)
}

func resolveCommand(cmd *cobra.Command, args []string) error {
	req, err := loadRequest(cmd, args[0])
	if err != nil {
		return err
	}
	pairs, _, err := loadVariables()
	if err != nil {
		return err
	}

	resolver := newResolver(pairs)
	resolved := resolver.ResolveRequest(req)

	data, err := encodeJSON(resolved)
	if err != nil {
		return err
	}

	switch strings.ToLower(resolveOutputFlag) {
	case "json":
	case "yaml", "yml":
		data, err = jsonToYAML(data)
		if err != nil {
			return err
		}
	default:
		return withExitCode(ExitUsageError, fmt.Errorf("unknown output format %q (expected json or yaml)", resolveOutputFlag))
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(bytes.TrimRight(data, "\n")))

	if resolveStrictFlag {
		if missing := unresolvedRefs(resolver, req); len(missing) > 0 {
			return fmt.Errorf("unresolved variables: %s", strings.Join(missing, ", "))
		}
	}
	return nil
}

// unresolvedRefs lists the names req references that resolver cannot fill.
func unresolvedRefs(resolver *env.Resolver, req model.ExecuteRequestInput) []string {
	var missing []string
	for _, name := range env.ExtractRequestRefs(req) {
		if !resolver.HasVariable(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key
// order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// clearStyle drops the flow and quoting styles a JSON source leaves on the
// nodes. The encoder still quotes strings that would read as another type.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
