package contextio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const mediaTypeJSON = "application/json"

var errTrailingData = errors.New("unexpected data after JSON value")

// RawResponse is what the transport hands back before classification.
// Header line slices are nil when header capture is off.
type RawResponse struct {
	StatusCode          int
	ContentType         string
	Body                []byte
	RequestHeaderLines  []string
	ResponseHeaderLines []string
}

// Message is one error descriptor from the envelope's messages list.
type Message map[string]any

// String renders the most descriptive field available.
func (m Message) String() string {
	for _, key := range []string{"value", "message", "error"} {
		if v, ok := m[key]; ok {
			return fmt.Sprint(v)
		}
	}
	b, _ := json.Marshal(map[string]any(m))
	return string(b)
}

// Response is the classified result of one API call. It is immutable once
// built.
type Response struct {
	raw     RawResponse
	headers ParsedHeaders
	decoded any
	err     *ResponseError
}

// NewResponse classifies raw and parses any captured headers.
func NewResponse(raw RawResponse) *Response {
	r := &Response{raw: raw}
	r.headers = ParsedHeaders{
		Request:  ParseHeaderLines(raw.RequestHeaderLines, RequestLineKey),
		Response: ParseHeaderLines(raw.ResponseHeaderLines, StatusLineKey),
	}
	r.decoded, r.err = decode(raw)
	return r
}

// decode applies the classification rules in order: status, content type,
// JSON validity, then envelope messages. The body is only parsed once the
// first two checks pass.
func decode(raw RawResponse) (any, *ResponseError) {
	if raw.StatusCode != http.StatusOK {
		return nil, &ResponseError{Kind: KindHTTPStatus, StatusCode: raw.StatusCode, ContentType: raw.ContentType}
	}
	if raw.ContentType != mediaTypeJSON {
		return nil, &ResponseError{Kind: KindContentType, StatusCode: raw.StatusCode, ContentType: raw.ContentType}
	}

	var decoded any
	dec := json.NewDecoder(bytes.NewReader(raw.Body))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, &ResponseError{Kind: KindDecode, StatusCode: raw.StatusCode, ContentType: raw.ContentType, Err: err}
	}
	// A body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return nil, &ResponseError{Kind: KindDecode, StatusCode: raw.StatusCode, ContentType: raw.ContentType, Err: err}
	}

	if msgs := messagesOf(decoded); len(msgs) > 0 {
		return decoded, &ResponseError{Kind: KindApplication, StatusCode: raw.StatusCode, ContentType: raw.ContentType, Messages: msgs}
	}
	return decoded, nil
}

func messagesOf(decoded any) []Message {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := obj["messages"].([]any)
	if !ok {
		return nil
	}
	msgs := make([]Message, 0, len(list))
	for _, item := range list {
		switch m := item.(type) {
		case map[string]any:
			msgs = append(msgs, Message(m))
		default:
			msgs = append(msgs, Message{"value": m})
		}
	}
	return msgs
}

// HasError reports whether the response was classified as an error.
func (r *Response) HasError() bool {
	return r.err != nil
}

// Err returns the classification error, or nil on success.
func (r *Response) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// ErrorKind returns the classification, KindNone on success.
func (r *Response) ErrorKind() ErrorKind {
	if r.err == nil {
		return KindNone
	}
	return r.err.Kind
}

func (r *Response) HTTPCode() int          { return r.raw.StatusCode }
func (r *Response) ContentType() string    { return r.raw.ContentType }
func (r *Response) RawBody() []byte        { return r.raw.Body }
func (r *Response) Raw() RawResponse       { return r.raw }
func (r *Response) Headers() ParsedHeaders { return r.headers }

// RawRequestHeaders returns the captured outgoing header lines, or nil.
func (r *Response) RawRequestHeaders() []string { return r.raw.RequestHeaderLines }

// RawResponseHeaders returns the captured incoming header lines, or nil.
func (r *Response) RawResponseHeaders() []string { return r.raw.ResponseHeaderLines }

// RequestHeaders returns the parsed outgoing headers, or nil.
func (r *Response) RequestHeaders() HeaderMap { return r.headers.Request }

// ResponseHeaders returns the parsed incoming headers, or nil.
func (r *Response) ResponseHeaders() HeaderMap { return r.headers.Response }

// Decoded returns the decoded JSON body, nil when no decode took place.
func (r *Response) Decoded() any {
	return r.decoded
}

func (r *Response) field(name string) (any, bool) {
	obj, ok := r.decoded.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[name]
	return v, ok
}

// System returns the envelope's system field, "" when absent.
func (r *Response) System() string {
	v, ok := r.field("system")
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Timestamp returns the envelope's timestamp as Unix seconds, the zero time
// when absent or not numeric.
func (r *Response) Timestamp() time.Time {
	v, ok := r.field("timestamp")
	if !ok {
		return time.Time{}
	}
	var n json.Number
	switch t := v.(type) {
	case json.Number:
		n = t
	case string:
		n = json.Number(t)
	default:
		return time.Time{}
	}
	if secs, err := n.Int64(); err == nil {
		return time.Unix(secs, 0)
	}
	if f, err := n.Float64(); err == nil {
		return time.Unix(int64(f), 0)
	}
	return time.Time{}
}

// Messages returns the envelope's messages list, nil when absent.
func (r *Response) Messages() []Message {
	return messagesOf(r.decoded)
}

// Data returns the envelope's data field re-encoded as JSON, nil when absent.
func (r *Response) Data() json.RawMessage {
	v, ok := r.field("data")
	if !ok {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// DecodeData unmarshals the envelope's data field into v. Absent data
// leaves v untouched.
func (r *Response) DecodeData(v any) error {
	data := r.Data()
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
