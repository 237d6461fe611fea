package contextio

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"time"
)

const defaultTimeout = 30 * time.Second

// Transport executes prepared requests and optionally captures the raw
// header blocks on both sides.
type Transport struct {
	httpClient *http.Client
}

// NewTransport wraps httpClient. A nil client gets a default one with a
// 30 second timeout.
func NewTransport(httpClient *http.Client) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Transport{httpClient: httpClient}
}

// newHTTPClient builds the client used when no custom one is supplied.
func newHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Do executes req and reads the whole body.
func (t *Transport) Do(req *http.Request, captureHeaders bool) (*RawResponse, error) {
	var requestLines []string
	if captureHeaders {
		requestLines = dumpRequestHeaders(req)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: redactURL(req), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: redactURL(req), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	raw := &RawResponse{
		StatusCode:         resp.StatusCode,
		ContentType:        resp.Header.Get("Content-Type"),
		Body:               body,
		RequestHeaderLines: requestLines,
	}
	if captureHeaders {
		raw.ResponseHeaderLines = dumpResponseHeaders(resp)
	}
	return raw, nil
}

// Stream executes req and copies the body to w without buffering it. The
// body is only copied for a 200 response; any other status is returned as
// a *ResponseError with KindHTTPStatus.
func (t *Transport) Stream(req *http.Request, w io.Writer) (int64, error) {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Method: req.Method, URL: redactURL(req), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &ResponseError{
			Kind:        KindHTTPStatus,
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &TransportError{Method: req.Method, URL: redactURL(req), Err: fmt.Errorf("failed to copy response body: %w", err)}
	}
	return n, nil
}

func dumpRequestHeaders(req *http.Request) []string {
	dump, err := httputil.DumpRequestOut(req, false)
	if err != nil {
		return []string{}
	}
	return splitHeaderBlock(string(dump))
}

func dumpResponseHeaders(resp *http.Response) []string {
	dump, err := httputil.DumpResponse(resp, false)
	if err != nil {
		return []string{}
	}
	return splitHeaderBlock(string(dump))
}

// redactURL drops the query so signatures never reach error strings or logs.
func redactURL(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}

func newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}
