// Package cmd implements the steq CLI commands using Cobra.
//
// Available commands:
//   - export: Render a request document as a curl, wget, fetch or HTTPie snippet
//   - resolve: Print a request with its variables substituted
//   - vars: List the variables a request references and what they resolve to
//   - auth: Show default auth configs or switch a request's auth type
//   - import: Convert curl commands into request documents
//   - validate: Check request documents against the schema
//   - init: Create a config, an environment and an example request
//   - version: Show steq version information
//
// Variables come from --var assignments, a .env file, a YAML environment
// file and prefixed process environment variables, in that precedence.
package cmd
