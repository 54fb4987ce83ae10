// Package errs defines the error shapes the HTTP layer returns to clients.
//
// Transport-level failures (malformed bodies, unknown routes, unexpected
// faults) are reported as HTTPError JSON. JSON-RPC level outcomes such as
// an unknown method are not errors here: they travel inside a normal 200
// response envelope.
package errs
