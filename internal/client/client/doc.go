// Package client talks to the remote account API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     four endpoints the portal uses: Login, Register, Logout and GetProfile.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     bearer token and a per-request X-Request-ID, decodes JSON bodies and
//     maps failures to errors the caller can classify.
//
// # Error Handling
//
// Non-2xx answers become *APIError carrying the status code and the server's
// message. Callers match conditions with errors.Is:
//
//   - ErrUnauthorized: the server answered 401 (token expired, invalid or
//     missing, or bad credentials on login).
//   - ErrUnavailable: the server could not be reached, timed out, or answered
//     502/503/504.
//
// All operations accept a context.Context and honor cancellation.
package client
