package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MehmetMelik/steq/packages/core/env"
	"github.com/MehmetMelik/steq/packages/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Variable source flags shared by export, resolve, vars and validate.
var (
	envFileFlag   string
	dotenvFlag    string
	envPrefixFlag string
	varFlags      []string
)

func addVariableFlags(c *cobra.Command) {
	c.Flags().StringVarP(&envFileFlag, "env-file", "e", getEnvString("STEQ_ENV_FILE", ""), "YAML environment file (env: STEQ_ENV_FILE)")
	c.Flags().StringVar(&dotenvFlag, "dotenv", getEnvString("STEQ_DOTENV", ""), "Path to .env file (env: STEQ_DOTENV)")
	c.Flags().StringVar(&envPrefixFlag, "env-prefix", getEnvString("STEQ_ENV_PREFIX", ""), "Use process variables with this prefix (env: STEQ_ENV_PREFIX)")
	c.Flags().StringArrayVar(&varFlags, "var", nil, "Set a variable as name=value (repeatable)")
}

// loadVariables collects the variable table. Sources are ordered from
// highest precedence: --var, .env, environment file, process environment.
func loadVariables() ([]env.Variable, *env.Environment, error) {
	assigned, err := env.ParseAssignments(varFlags)
	if err != nil {
		return nil, nil, withExitCode(ExitUsageError, err)
	}

	var dotenv []env.Variable
	if path := firstNonEmpty(dotenvFlag, cfg.EnvFile); path != "" {
		dotenv, err = env.LoadDotEnv(path)
		if err != nil {
			return nil, nil, withExitCode(ExitConfigError, err)
		}
		logger.Debug("loaded .env file", zap.String("path", path), zap.Int("variables", len(dotenv)))
	}

	environment := &env.Environment{}
	if path := firstNonEmpty(envFileFlag, cfg.EnvironmentFile); path != "" {
		environment, err = env.LoadEnvironmentFile(path)
		if err != nil {
			return nil, nil, withExitCode(ExitConfigError, err)
		}
		logger.Debug("loaded environment",
			zap.String("path", path),
			zap.String("name", environment.Name),
			zap.Int("variables", len(environment.Variables)))
	}

	var system []env.Variable
	if prefix := firstNonEmpty(envPrefixFlag, cfg.EnvPrefix); prefix != "" {
		system = env.LoadSystemEnv(prefix)
	}

	return env.MergeVariables(assigned, dotenv, environment.Pairs(), system), environment, nil
}

// newResolver builds a resolver that reports unresolved tokens to the logger.
func newResolver(pairs []env.Variable) *env.Resolver {
	sugar := logger.Sugar()
	return env.NewResolver(pairs, env.WithWarnFunc(func(format string, args ...any) {
		sugar.Warnf(format, args...)
	}))
}

// secretNames returns the names an environment marks as secret.
func secretNames(environment *env.Environment) map[string]bool {
	secrets := make(map[string]bool)
	if environment == nil {
		return secrets
	}
	for _, v := range environment.Variables {
		if v.Secret {
			secrets[v.Key] = true
		}
	}
	return secrets
}

// readRequestFile reads a request document from path, or stdin for "-".
func readRequestFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}
	return data, nil
}

func loadRequest(cmd *cobra.Command, path string) (model.ExecuteRequestInput, error) {
	data, err := readRequestFile(cmd, path)
	if err != nil {
		return model.ExecuteRequestInput{}, withExitCode(ExitParseError, err)
	}
	req, err := model.DecodeExecuteRequest(data)
	if err != nil {
		return req, withExitCode(ExitParseError, fmt.Errorf("%s: %w", path, err))
	}
	return req, nil
}

// collectFiles expands directories into the request documents they contain.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isRequestFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			files = append(files, arg)
		}
	}

	return files, nil
}

func isRequestFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".request.json") || strings.HasSuffix(name, ".steq.json")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
