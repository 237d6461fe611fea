package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/mailgallery/contextio"
	"github.com/s0up4200/mailgallery/gallery"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    contextio.Params
		wantErr bool
	}{
		{
			name: "single values",
			raw:  []string{"limit=5", "since=1300000000"},
			want: contextio.Params{{Key: "limit", Value: "5"}, {Key: "since", Value: "1300000000"}},
		},
		{
			name: "repeated key",
			raw:  []string{"to=a@x.com", "limit=1", "to=b@x.com", "to=c@x.com"},
			want: contextio.Params{{Key: "to", Value: []string{"a@x.com", "b@x.com", "c@x.com"}}, {Key: "limit", Value: "1"}},
		},
		{
			name: "value containing equals",
			raw:  []string{"search=a=b"},
			want: contextio.Params{{Key: "search", Value: "a=b"}},
		},
		{
			name: "empty value",
			raw:  []string{"label="},
			want: contextio.Params{{Key: "label", Value: ""}},
		},
		{name: "missing separator", raw: []string{"limit"}, wantErr: true},
		{name: "missing key", raw: []string{"=5"}, wantErr: true},
		{name: "none", raw: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectDownloads(t *testing.T) {
	listed := []gallery.File{
		{ID: "a", Name: "a.jpg"},
		{ID: "b", Name: "b.png"},
		{ID: "c", Name: "c.gif"},
	}

	byID := selectDownloads(listed, []string{"b", "zz"}, 0, 10)
	require.Len(t, byID, 2)
	assert.Equal(t, "b.png", byID[0].Name)
	assert.Equal(t, gallery.File{ID: "zz"}, byID[1])

	page := selectDownloads(listed, nil, 1, 2)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].ID)
}

func TestPrintHeaders(t *testing.T) {
	var buf bytes.Buffer
	headers := contextio.HeaderMap{
		contextio.StatusLineKey: {"HTTP/1.1 200 OK"},
		"X-B":                   {"2"},
		"X-A":                   {"1", "3"},
	}

	printHeaders(&buf, "Response headers", headers, contextio.StatusLineKey)

	assert.Equal(t, "Response headers:\n  HTTP/1.1 200 OK\n  X-A: 1\n  X-A: 3\n  X-B: 2\n\n", buf.String())

	buf.Reset()
	printHeaders(&buf, "Request headers", nil, contextio.RequestLineKey)
	assert.Empty(t, buf.String())
}
