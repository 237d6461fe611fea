package contextio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantErr     bool
		wantKind    ErrorKind
		sentinel    error
		wantDecoded bool
	}{
		{
			name:        "success",
			status:      200,
			contentType: "application/json",
			body:        `{"data":{}}`,
			wantKind:    KindNone,
			wantDecoded: true,
		},
		{
			name:        "non-200 status",
			status:      404,
			contentType: "application/json",
			body:        `{}`,
			wantErr:     true,
			wantKind:    KindHTTPStatus,
			sentinel:    ErrHTTPStatus,
		},
		{
			name:        "non-json content type",
			status:      200,
			contentType: "text/html",
			body:        "<p>",
			wantErr:     true,
			wantKind:    KindContentType,
			sentinel:    ErrContentType,
		},
		{
			name:        "application error messages",
			status:      200,
			contentType: "application/json",
			body:        `{"messages":[{"error":"x"}]}`,
			wantErr:     true,
			wantKind:    KindApplication,
			sentinel:    ErrApplication,
			wantDecoded: true,
		},
		{
			name:        "empty messages is success",
			status:      200,
			contentType: "application/json",
			body:        `{"messages":[]}`,
			wantKind:    KindNone,
			wantDecoded: true,
		},
		{
			name:        "status checked before content type",
			status:      500,
			contentType: "text/html",
			body:        "<p>",
			wantErr:     true,
			wantKind:    KindHTTPStatus,
			sentinel:    ErrHTTPStatus,
		},
		{
			name:        "content type checked before parse",
			status:      200,
			contentType: "text/plain",
			body:        "{not json",
			wantErr:     true,
			wantKind:    KindContentType,
			sentinel:    ErrContentType,
		},
		{
			name:        "content type parameters rejected",
			status:      200,
			contentType: "application/json; charset=utf-8",
			body:        `{"data":[]}`,
			wantErr:     true,
			wantKind:    KindContentType,
			sentinel:    ErrContentType,
		},
		{
			name:        "content type compared case sensitively",
			status:      200,
			contentType: "Application/JSON",
			body:        `{"data":[]}`,
			wantErr:     true,
			wantKind:    KindContentType,
			sentinel:    ErrContentType,
		},
		{
			name:        "malformed json",
			status:      200,
			contentType: "application/json",
			body:        "{not json",
			wantErr:     true,
			wantKind:    KindDecode,
			sentinel:    ErrDecode,
		},
		{
			name:        "trailing garbage after json",
			status:      200,
			contentType: "application/json",
			body:        `{"data":{}} <html>junk`,
			wantErr:     true,
			wantKind:    KindDecode,
			sentinel:    ErrDecode,
		},
		{
			name:        "second json value",
			status:      200,
			contentType: "application/json",
			body:        `{"data":{}}{"data":{}}`,
			wantErr:     true,
			wantKind:    KindDecode,
			sentinel:    ErrDecode,
		},
		{
			name:        "trailing whitespace accepted",
			status:      200,
			contentType: "application/json",
			body:        "{\"data\":{}}\n",
			wantKind:    KindNone,
			wantDecoded: true,
		},
		{
			name:        "messages not a list is ignored",
			status:      200,
			contentType: "application/json",
			body:        `{"messages":"oops"}`,
			wantKind:    KindNone,
			wantDecoded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewResponse(RawResponse{
				StatusCode:  tt.status,
				ContentType: tt.contentType,
				Body:        []byte(tt.body),
			})

			assert.Equal(t, tt.wantErr, resp.HasError())
			assert.Equal(t, tt.wantKind, resp.ErrorKind())
			assert.Equal(t, tt.wantDecoded, resp.Decoded() != nil)

			if tt.wantErr {
				require.Error(t, resp.Err())
				assert.ErrorIs(t, resp.Err(), tt.sentinel)
				var respErr *ResponseError
				require.True(t, errors.As(resp.Err(), &respErr))
				assert.Equal(t, tt.status, respErr.StatusCode)
			} else {
				assert.NoError(t, resp.Err())
			}
		})
	}
}

func TestResponseEnvelopeAccessors(t *testing.T) {
	resp := NewResponse(RawResponse{
		StatusCode:  200,
		ContentType: "application/json",
		Body:        []byte(`{"system":"ctxio-api-1","timestamp":1300000000,"data":[{"fileId":"f1","size":2048}]}`),
	})
	require.False(t, resp.HasError())

	assert.Equal(t, "ctxio-api-1", resp.System())
	assert.Equal(t, time.Unix(1300000000, 0), resp.Timestamp())
	assert.Nil(t, resp.Messages())
	assert.JSONEq(t, `[{"fileId":"f1","size":2048}]`, string(resp.Data()))

	var files []struct {
		FileID string `json:"fileId"`
		Size   int64  `json:"size"`
	}
	require.NoError(t, resp.DecodeData(&files))
	require.Len(t, files, 1)
	assert.Equal(t, "f1", files[0].FileID)
	assert.Equal(t, int64(2048), files[0].Size)
}

func TestResponseAccessorsWithoutDecode(t *testing.T) {
	resp := NewResponse(RawResponse{StatusCode: 503, ContentType: "text/html", Body: []byte("down")})

	assert.Equal(t, "", resp.System())
	assert.True(t, resp.Timestamp().IsZero())
	assert.Nil(t, resp.Messages())
	assert.Nil(t, resp.Data())

	var v map[string]any
	assert.NoError(t, resp.DecodeData(&v))
	assert.Nil(t, v)

	assert.Equal(t, []byte("down"), resp.RawBody())
	assert.Equal(t, 503, resp.HTTPCode())
	assert.Nil(t, resp.RequestHeaders())
	assert.Nil(t, resp.ResponseHeaders())
	assert.Nil(t, resp.RawRequestHeaders())
}

func TestResponseMessages(t *testing.T) {
	resp := NewResponse(RawResponse{
		StatusCode:  200,
		ContentType: "application/json",
		Body:        []byte(`{"messages":[{"type":"error","value":"account not found"},"plain"]}`),
	})

	msgs := resp.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "account not found", msgs[0].String())
	assert.Equal(t, "plain", msgs[1].String())
	assert.Contains(t, resp.Err().Error(), "account not found")
}

func TestResponseParsesCapturedHeaders(t *testing.T) {
	resp := NewResponse(RawResponse{
		StatusCode:          200,
		ContentType:         "application/json",
		Body:                []byte(`{}`),
		RequestHeaderLines:  []string{"GET /1.1/addresses.json HTTP/1.1", "Host: api.context.io"},
		ResponseHeaderLines: []string{"HTTP/1.1 200 OK", "Set-Cookie: a=1", "Set-Cookie: b=2"},
	})

	assert.Equal(t, "GET /1.1/addresses.json HTTP/1.1", resp.RequestHeaders().Get(RequestLineKey))
	assert.Equal(t, "api.context.io", resp.RequestHeaders().Get("Host"))
	assert.Equal(t, "HTTP/1.1 200 OK", resp.ResponseHeaders().Get(StatusLineKey))
	assert.Equal(t, []string{"a=1", "b=2"}, resp.ResponseHeaders().Values("Set-Cookie"))
}

func TestResponseErrorHelpers(t *testing.T) {
	notFound := &ResponseError{Kind: KindHTTPStatus, StatusCode: 404}
	assert.True(t, notFound.IsNotFound())
	assert.False(t, notFound.IsUnauthorized())

	unauthorized := &ResponseError{Kind: KindHTTPStatus, StatusCode: 401}
	assert.True(t, unauthorized.IsUnauthorized())
	assert.Contains(t, unauthorized.Error(), "401")

	appErr := &ResponseError{Kind: KindApplication}
	assert.False(t, appErr.IsNotFound())
	assert.False(t, errors.Is(appErr, ErrHTTPStatus))
	assert.Equal(t, "application", appErr.Kind.String())
}
