package contextio

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	oauthVersion         = "1.0"
	oauthSignatureMethod = "HMAC-SHA1"

	oauthConsumerKey        = "oauth_consumer_key"
	oauthNonce              = "oauth_nonce"
	oauthSignature          = "oauth_signature"
	oauthSignatureMethodKey = "oauth_signature_method"
	oauthTimestamp          = "oauth_timestamp"
	oauthVersionKey         = "oauth_version"
)

// Signer produces OAuth 1.0a one-legged HMAC-SHA1 signatures.
type Signer struct {
	consumerKey    string
	consumerSecret string
	now            func() time.Time
	nonce          func() string
}

// NewSigner creates a signer for the given consumer credentials
func NewSigner(consumerKey, consumerSecret string) (*Signer, error) {
	if consumerKey == "" || consumerSecret == "" {
		return nil, ErrMissingCredentials
	}
	return &Signer{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		now:            time.Now,
		nonce:          newNonce,
	}, nil
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SignedRequest is a call whose parameters have been signed. Params holds
// the call parameters, OAuth the oauth_* set including the signature.
type SignedRequest struct {
	Method  string
	BaseURL string
	Params  Params
	OAuth   Params
}

// Sign signs params for method and baseURL. baseURL must not carry a query
// string. params must already be filtered: the signature covers exactly the
// set that will be transmitted.
func (s *Signer) Sign(method, baseURL string, params Params) (*SignedRequest, error) {
	if s == nil || s.consumerKey == "" || s.consumerSecret == "" {
		return nil, ErrMissingCredentials
	}

	oauth := Params{
		{Key: oauthConsumerKey, Value: s.consumerKey},
		{Key: oauthNonce, Value: s.nonce()},
		{Key: oauthSignatureMethodKey, Value: oauthSignatureMethod},
		{Key: oauthTimestamp, Value: strconv.FormatInt(s.now().Unix(), 10)},
		{Key: oauthVersionKey, Value: oauthVersion},
	}

	method = strings.ToUpper(method)
	base, err := BaseString(method, baseURL, params.Merge(oauth))
	if err != nil {
		return nil, err
	}
	signature := s.signature(base)

	return &SignedRequest{
		Method:  method,
		BaseURL: baseURL,
		Params:  params,
		OAuth:   oauth.With(oauthSignature, signature),
	}, nil
}

// signature returns the base64 HMAC-SHA1 of base. The token secret is
// empty, so the key is the encoded consumer secret followed by "&".
func (s *Signer) signature(base string) string {
	key := PercentEncode(s.consumerSecret) + "&"
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// BaseString builds the OAuth signature base string: upper-case method,
// normalized URL and sorted parameters, each percent-encoded and joined
// with "&". Any oauth_signature entry is excluded.
func BaseString(method, rawURL string, params Params) (string, error) {
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	signable := make(Params, 0, len(params))
	for _, kv := range params {
		if kv.Key == oauthSignature {
			continue
		}
		signable = append(signable, kv)
	}

	return strings.ToUpper(method) + "&" +
		PercentEncode(normalized) + "&" +
		PercentEncode(signable.Encode()), nil
}

func normalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" {
		if !(scheme == "http" && port == "80") && !(scheme == "https" && port == "443") {
			host += ":" + port
		}
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path, nil
}

// URL returns the base URL with call and OAuth parameters in the query.
func (r *SignedRequest) URL() string {
	return r.BaseURL + "?" + r.Params.Merge(r.OAuth).Encode()
}

// CallURL returns the base URL with only the call parameters in the query.
func (r *SignedRequest) CallURL() string {
	if len(r.Params) == 0 {
		return r.BaseURL
	}
	return r.BaseURL + "?" + r.Params.Encode()
}

// AuthorizationHeader renders the OAuth parameters as an Authorization
// header value.
func (r *SignedRequest) AuthorizationHeader() string {
	var sb strings.Builder
	sb.WriteString(`OAuth realm=""`)
	for _, kv := range r.OAuth.pairs() {
		sb.WriteByte(',')
		sb.WriteString(PercentEncode(kv.key))
		sb.WriteString(`="`)
		sb.WriteString(PercentEncode(kv.value))
		sb.WriteByte('"')
	}
	return sb.String()
}

// Signature returns the unencoded oauth_signature value.
func (r *SignedRequest) Signature() string {
	v, _ := r.OAuth.Get(oauthSignature)
	s, _ := v.(string)
	return s
}

// PercentEncode encodes s per RFC 3986: everything except A-Z a-z 0-9 - . _ ~
// becomes %XX with upper-case hex.
func PercentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
