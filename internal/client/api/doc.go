// Package api is the HTTP client for the blog REST service.
//
// # Overview
//
// Client is the transport-agnostic contract the rest of the client code
// depends on; HTTPClient implements it over net/http. Every operation returns
// a Result: either Data is set and Err is nil, or Err describes the failure.
// No operation panics or returns a bare error.
//
// # Authentication
//
// Requests go out under one of three modes: none (registration, post
// listing and lookup), HTTP Basic (token issue) and Bearer (everything that
// acts on behalf of a user).
//
// # Error Handling
//
// Failures are classified by ErrorKind:
//   - KindServer: the server answered with {"error": "..."}; the message is
//     passed through verbatim.
//   - KindNotFound: a resource-scoped call failed without a structured
//     error; the message names the missing id.
//   - KindUnexpected: transport failures, cancelled contexts and malformed
//     bodies; the message is GenericErrorMessage.
package api
