// Package contextio provides a signed client for the Context.IO 1.1 REST API.
//
// Every request is signed with OAuth 1.0a in its one-legged form: only a
// consumer key and secret are involved, and the token secret is empty.
// The OAuth parameters travel either in the query string (the default) or
// in an Authorization header.
//
// # Architecture
//
//   - Filter: whitelists and lower-cases caller parameters per endpoint
//   - Signer: builds the signature base string and HMAC-SHA1 signature
//   - Transport: executes requests and optionally captures raw headers
//   - ParseHeaderLines: turns captured header lines into a HeaderMap
//   - Response: classifies a raw response and exposes the JSON envelope
//   - Client: one typed method per endpoint over a declarative catalog
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := contextio.NewClient(key, secret, logger,
//		contextio.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.AllFiles(ctx, "me@example.com", contextio.Params{
//		{Key: "limit", Value: 50},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// A response is an error when its status is not 200, its media type is not
// application/json, its body is not valid JSON, or its envelope carries a
// non-empty messages list, checked in that order. Such calls return the
// Response together with a *ResponseError that matches ErrHTTPStatus,
// ErrContentType, ErrDecode or ErrApplication under errors.Is. Failures
// below HTTP return a *TransportError matching ErrTransport and no
// Response.
//
// Batch runs one call per account in order and stops at the first failure,
// returning a *BatchError and no results.
package contextio
