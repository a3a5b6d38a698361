// Package env resolves {{variable}} placeholders in request values.
//
// It provides functionality for:
//   - Single-pass {{name}} substitution against an ordered variable table
//   - Extracting variable references for preview and validation
//   - Resolving every text field of a request, including GraphQL bodies
//     and the active auth config
//   - Loading variable tables from environment files, .env files and the
//     process environment
//
// Token names are one or more ASCII word characters. Substituted values are
// never re-scanned, and there is no escape syntax for a literal {{name}}.
package env
