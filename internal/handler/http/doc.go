// Package http implements the REST transport of the vault server.
//
// It wires chi routes for signup, login, the public salt lookup, owner-scoped
// vault CRUD and the build info endpoint. Middleware handles request tracing,
// access logging, gzip, bearer authentication and per-IP rate limiting of the
// salt endpoint. Every non-2xx response carries a {"error": "..."} body.
package http
