// Package http implements the HTTP transport layer of the task tracker.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API under /api. Cross-cutting concerns such as bearer authentication,
// request tracing, access logging, CORS and rate limiting of the auth
// endpoints are handled in this package before requests are delegated to the
// service layer. Every error leaves as a JSON {"detail": ...} body.
package http
