// Package model defines the request value shared by variable resolution,
// auth handling and export rendering.
//
// It provides:
//   - HTTP method, body type and key/value types
//   - The AuthConfig tagged union, one struct per AuthType
//   - ExecuteRequestInput and its ExportRequestInput projection
//   - ExecutionResult for the network executor boundary
//   - JSON codecs and schema validation for request documents
//
// All values are plain data. Functions that transform them return new
// values and never mutate their input.
package model
