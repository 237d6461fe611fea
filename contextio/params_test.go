package contextio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		given   Params
		allowed []Key
		want    Params
	}{
		{
			name:    "drops unknown keys",
			given:   Params{{"since", 10}, {"foo", "bar"}, {"limit", 5}},
			allowed: []Key{KeySince, KeyLimit},
			want:    Params{{"since", 10}, {"limit", 5}},
		},
		{
			name:    "lower-cases keys",
			given:   Params{{"FileName", "a.jpg"}},
			allowed: []Key{KeyFileName},
			want:    Params{{"filename", "a.jpg"}},
		},
		{
			name:    "last write wins on case collision",
			given:   Params{{"Since", 1}, {"limit", 2}, {"since", 3}},
			allowed: []Key{KeySince, KeyLimit},
			want:    Params{{"since", 3}, {"limit", 2}},
		},
		{
			name:    "keeps input order",
			given:   Params{{"to", "b"}, {"email", "a"}},
			allowed: []Key{KeyEmail, KeyTo},
			want:    Params{{"to", "b"}, {"email", "a"}},
		},
		{
			name:    "empty whitelist",
			given:   Params{{"since", 1}},
			allowed: nil,
			want:    Params{},
		},
		{
			name:    "nil input",
			given:   nil,
			allowed: []Key{KeySince},
			want:    Params{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.given, tt.allowed)
			assert.Equal(t, tt.want, got)

			// Filtering is idempotent
			assert.Equal(t, got, Filter(got, tt.allowed))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	given := Params{{"Since", 1}, {"since", 2}}
	_ = Filter(given, []Key{KeySince})
	assert.Equal(t, Params{{"Since", 1}, {"since", 2}}, given)
}

func TestParamsEncode(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "sorted by key",
			params: Params{{"limit", 10}, {"account", "me@example.com"}},
			want:   "account=me%40example.com&limit=10",
		},
		{
			name:   "slice becomes repeated sorted key",
			params: Params{{"to", []string{"b@x", "a@x"}}},
			want:   "to=a%40x&to=b%40x",
		},
		{
			name:   "bool and nil",
			params: Params{{"usessl", true}, {"port", nil}},
			want:   "port=&usessl=1",
		},
		{
			name:   "reserved characters",
			params: Params{{"subject", "a b+c/d~e"}},
			want:   "subject=a%20b%2Bc%2Fd~e",
		},
		{
			name:   "empty",
			params: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestParamsWithAndMerge(t *testing.T) {
	p := Params{{"a", 1}, {"b", 2}}

	q := p.With("a", 9)
	assert.Equal(t, Params{{"a", 9}, {"b", 2}}, q)
	assert.Equal(t, Params{{"a", 1}, {"b", 2}}, p, "With must not mutate the receiver")

	merged := p.Merge(Params{{"c", 3}, {"b", 4}})
	assert.Equal(t, Params{{"a", 1}, {"b", 4}, {"c", 3}}, merged)

	v, ok := merged.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = merged.Get("missing")
	assert.False(t, ok)
}

func TestParamsValues(t *testing.T) {
	v := Params{{"key", "k"}, {"action", "delete"}}.Values()
	assert.Equal(t, "k", v.Get("key"))
	assert.Equal(t, "delete", v.Get("action"))
}
