package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MehmetMelik/steq/packages/core/config"
	"github.com/MehmetMelik/steq/packages/core/env"
	"github.com/MehmetMelik/steq/packages/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new steq project",
	Long: `Initialize a new steq project in the current directory.

This creates:
  - steq.config.json      - Configuration file
  - dev.yaml              - Environment with example variables
  - example.request.json  - Example request using those variables

Examples:
  steq init
  steq init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "steq.config.json")
	envFile := filepath.Join(cwd, "dev.yaml")
	exampleFile := filepath.Join(cwd, "example.request.json")

	if !forceInit {
		for _, f := range []string{configFile, envFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	projectConfig := config.DefaultConfig()
	projectConfig.EnvironmentFile = "dev.yaml"
	if err := projectConfig.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	environment := env.Environment{
		Name: "dev",
		Variables: []env.EnvironmentVar{
			{Key: "baseUrl", Value: "http://localhost:3000"},
			{Key: "userId", Value: "1"},
			{Key: "token", Value: "change-me", Secret: true},
		},
	}
	envYAML, err := yaml.Marshal(environment)
	if err != nil {
		return fmt.Errorf("failed to encode environment: %w", err)
	}
	if err := os.WriteFile(envFile, envYAML, 0644); err != nil {
		return fmt.Errorf("failed to create environment file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", envFile)

	example := model.NewExecuteRequest(model.MethodGet, "{{baseUrl}}/users/{{userId}}")
	example.Headers = []model.KeyValue{
		{Key: "Accept", Value: "application/json", Enabled: true},
	}
	example.QueryParams = []model.KeyValue{
		{Key: "include", Value: "profile", Enabled: true},
		{Key: "debug", Value: "true", Enabled: false},
	}
	example.AuthType = model.AuthBearer
	example.AuthConfig = model.BearerAuth{Token: "{{token}}"}
	example.Settings = projectConfig.RequestSettings()

	data, err := encodeJSON(example)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exampleFile, data, 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nGet started:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  steq vars example.request.json\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  steq export example.request.json --apply-auth\n")
	return nil
}
