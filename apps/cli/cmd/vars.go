package cmd

import (
	"fmt"
	"strings"

	"github.com/MehmetMelik/steq/packages/core/env"
	"github.com/MehmetMelik/steq/packages/output"
	"github.com/spf13/cobra"
)

var (
	varsOutputFlag string
	varsStrictFlag bool
)

var varsCmd = &cobra.Command{
	Use:   "vars <request.json|->...",
	Short: "List the variables a request references",
	Long: `List every {{variable}} a request document references, in the order
they appear, with the value each resolves to. Values the environment marks
as secret are masked.

Examples:
  steq vars get-user.request.json --env-file dev.yaml
  steq vars ./requests -o json
  steq vars get-user.request.json --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: varsCommand,
}

func init() {
	varsCmd.Flags().StringVarP(&varsOutputFlag, "output", "o", "console", "Output format: console, json")
	varsCmd.Flags().BoolVar(&varsStrictFlag, "strict", false, "Fail when any variable is unresolved")
	addVariableFlags(varsCmd)
}

type variableFormatter interface {
	FormatVariables(file string, refs []output.VariableRef)
}

func varsCommand(cmd *cobra.Command, args []string) error {
	var formatter variableFormatter
	switch strings.ToLower(varsOutputFlag) {
	case "json":
		formatter = output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout()))
	case "console", "":
		formatter = output.NewConsoleFormatter(
			output.WithWriter(cmd.OutOrStdout()),
			output.WithNoColor(cfg.GetNoColor()),
		)
	default:
		return withExitCode(ExitUsageError, fmt.Errorf("unknown output format %q (expected console or json)", varsOutputFlag))
	}

	files := args
	if !(len(args) == 1 && args[0] == "-") {
		var err error
		if files, err = collectFiles(args); err != nil {
			return withExitCode(ExitUsageError, err)
		}
	}

	pairs, environment, err := loadVariables()
	if err != nil {
		return err
	}
	resolver := env.NewResolver(pairs)
	secrets := secretNames(environment)

	unresolved := 0
	for _, file := range files {
		req, err := loadRequest(cmd, file)
		if err != nil {
			return err
		}
		refs := variableRefs(resolver, env.ExtractRequestRefs(req), secrets)
		for _, r := range refs {
			if !r.Resolved {
				unresolved++
			}
		}
		formatter.FormatVariables(file, refs)
	}

	if varsStrictFlag && unresolved > 0 {
		return fmt.Errorf("%d unresolved variable(s)", unresolved)
	}
	return nil
}

func variableRefs(resolver *env.Resolver, names []string, secrets map[string]bool) []output.VariableRef {
	refs := make([]output.VariableRef, 0, len(names))
	for _, name := range names {
		value, ok := resolver.GetVariable(name)
		refs = append(refs, output.VariableRef{
			Name:     name,
			Value:    value,
			Resolved: ok,
			Secret:   secrets[name],
		})
	}
	return refs
}
