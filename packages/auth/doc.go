// Package auth turns a request's auth config into ordinary headers and query
// parameters, so a resolved request can be exported with its credentials.
package auth
