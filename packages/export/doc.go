// Package export renders a request as a client invocation that can be pasted
// into a shell or a JavaScript console: curl, wget, fetch or HTTPie.
//
// Rendering is a pure string transformation. Disabled headers and query
// parameters are dropped, a Content-Type header is synthesized from the body
// type when none is set, and every argument is single-quoted for POSIX shells.
package export
