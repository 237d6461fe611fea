package contextio

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrMissingCredentials indicates an empty consumer key or secret
	ErrMissingCredentials = errors.New("contextio: consumer key and secret are required")
	// ErrTransport indicates the request never produced an HTTP response
	ErrTransport = errors.New("contextio: transport failure")
	// ErrHTTPStatus indicates a response status other than 200
	ErrHTTPStatus = errors.New("contextio: unexpected HTTP status")
	// ErrContentType indicates a response that is not application/json
	ErrContentType = errors.New("contextio: unexpected content type")
	// ErrApplication indicates a 200 response carrying error messages
	ErrApplication = errors.New("contextio: API reported errors")
	// ErrDecode indicates an application/json body that is not valid JSON
	ErrDecode = errors.New("contextio: malformed JSON body")
	// ErrUnknownEndpoint indicates an endpoint missing from the catalog
	ErrUnknownEndpoint = errors.New("contextio: unknown endpoint")
	// ErrNotBatchable indicates a batch call against an endpoint that has no account scope
	ErrNotBatchable = errors.New("contextio: endpoint does not support batch calls")
	// ErrAccountRequired indicates an account-scoped endpoint called without an account
	ErrAccountRequired = errors.New("contextio: account identifier is required")
)

// ErrorKind classifies why a response was rejected.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindHTTPStatus
	KindContentType
	KindApplication
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindHTTPStatus:
		return "http_status"
	case KindContentType:
		return "content_type"
	case KindApplication:
		return "application"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ResponseError describes a response that the decoder classified as an error.
type ResponseError struct {
	Kind        ErrorKind
	StatusCode  int
	ContentType string
	Messages    []Message
	Err         error
}

// Error implements the error interface
func (e *ResponseError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("contextio API error: status %d", e.StatusCode)
	case KindContentType:
		return fmt.Sprintf("contextio API error: content type %q", e.ContentType)
	case KindApplication:
		if len(e.Messages) > 0 {
			return fmt.Sprintf("contextio API error: %s", e.Messages[0])
		}
		return "contextio API error: error messages in response"
	case KindDecode:
		return fmt.Sprintf("contextio API error: %v", e.Err)
	default:
		return "contextio API error"
	}
}

// Unwrap returns the underlying JSON error, if any
func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Is maps the error kind onto the package sentinels.
func (e *ResponseError) Is(target error) bool {
	switch e.Kind {
	case KindHTTPStatus:
		return target == ErrHTTPStatus
	case KindContentType:
		return target == ErrContentType
	case KindApplication:
		return target == ErrApplication
	case KindDecode:
		return target == ErrDecode
	}
	return false
}

// IsNotFound checks if the error indicates a not found response
func (e *ResponseError) IsNotFound() bool {
	return e.Kind == KindHTTPStatus && e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates a signature or key rejection
func (e *ResponseError) IsUnauthorized() bool {
	return e.Kind == KindHTTPStatus && (e.StatusCode == 401 || e.StatusCode == 403)
}

// TransportError wraps a failure below HTTP (DNS, TCP, TLS, I/O).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("contextio: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// BatchError reports the call that aborted a batch.
type BatchError struct {
	Account string
	Index   int
	Err     error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("contextio: batch aborted at account %q (#%d): %v", e.Account, e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
