package contextio

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Key is a recognized query parameter name. Keys are always lower-case.
type Key string

const (
	KeyAccount           Key = "account"
	KeyAction            Key = "action"
	KeyBCC               Key = "bcc"
	KeyCC                Key = "cc"
	KeyCredentials       Key = "credentials"
	KeyDateSent          Key = "datesent"
	KeyEmail             Key = "email"
	KeyEmailMessageID    Key = "emailmessageid"
	KeyFileID            Key = "fileid"
	KeyFileID1           Key = "fileid1"
	KeyFileID2           Key = "fileid2"
	KeyFileName          Key = "filename"
	KeyFirstName         Key = "firstname"
	KeyFrom              Key = "from"
	KeyGenerate          Key = "generate"
	KeyGmailThreadID     Key = "gmailthreadid"
	KeyKey               Key = "key"
	KeyLabel             Key = "label"
	KeyLastName          Key = "lastname"
	KeyLimit             Key = "limit"
	KeyMailboxes         Key = "mailboxes"
	KeyMbox              Key = "mbox"
	KeyOAuthConsumerName Key = "oauthconsumername"
	KeyOAuthToken        Key = "oauthtoken"
	KeyOAuthTokenSecret  Key = "oauthtokensecret"
	KeyPassword          Key = "password"
	KeyPort              Key = "port"
	KeySearch            Key = "search"
	KeySecret            Key = "secret"
	KeyServer            Key = "server"
	KeySince             Key = "since"
	KeySubject           Key = "subject"
	KeyTo                Key = "to"
	KeyType              Key = "type"
	KeyUID               Key = "uid"
	KeyUserID            Key = "userid"
	KeyUsername          Key = "username"
	KeyUseSSL            Key = "usessl"
)

// Param is a single name/value pair. Value may be a string, bool, any
// integer or float type, or a []string.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter bag. Order matters only for display;
// serialization always sorts.
type Params []Param

// Get returns the value stored under key, matching exactly.
func (p Params) Get(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// With returns a copy of p with key set to value. An existing entry keeps
// its position.
func (p Params) With(key string, value any) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Key: key, Value: value})
}

// Merge returns p followed by the entries of other, later entries winning.
func (p Params) Merge(other Params) Params {
	out := p
	for _, kv := range other {
		out = out.With(kv.Key, kv.Value)
	}
	return out
}

// Filter keeps the entries of given whose lower-cased key is in allowed and
// rewrites their keys to lower case. Unknown keys are dropped silently. When
// two keys collapse to the same name the later value wins and the earlier
// position is kept.
func Filter(given Params, allowed []Key) Params {
	if len(given) == 0 || len(allowed) == 0 {
		return Params{}
	}

	permitted := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		permitted[strings.ToLower(string(k))] = struct{}{}
	}

	filtered := Params{}
	for _, kv := range given {
		name := strings.ToLower(kv.Key)
		if _, ok := permitted[name]; !ok {
			continue
		}
		filtered = filtered.With(name, kv.Value)
	}
	return filtered
}

// pair is one serialized key=value entry before encoding.
type pair struct {
	key   string
	value string
}

// pairs flattens p into key/value strings sorted by key, then by value.
// Slice values become repeated keys.
func (p Params) pairs() []pair {
	out := make([]pair, 0, len(p))
	for _, kv := range p {
		for _, v := range formatValue(kv.Value) {
			out = append(out, pair{key: kv.Key, value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := PercentEncode(out[i].key), PercentEncode(out[j].key)
		if ki != kj {
			return ki < kj
		}
		return PercentEncode(out[i].value) < PercentEncode(out[j].value)
	})
	return out
}

// Encode serializes p as an RFC 3986 encoded, key-sorted query string.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p.pairs() {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(PercentEncode(kv.key))
		sb.WriteByte('=')
		sb.WriteString(PercentEncode(kv.value))
	}
	return sb.String()
}

// Values converts p to url.Values for form encoding.
func (p Params) Values() url.Values {
	v := url.Values{}
	for _, kv := range p.pairs() {
		v.Add(kv.key, kv.value)
	}
	return v
}

func formatValue(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{val}
	case []string:
		if len(val) == 0 {
			return []string{""}
		}
		return val
	case bool:
		if val {
			return []string{"1"}
		}
		return []string{"0"}
	case int:
		return []string{strconv.Itoa(val)}
	case int64:
		return []string{strconv.FormatInt(val, 10)}
	case int32:
		return []string{strconv.FormatInt(int64(val), 10)}
	case uint:
		return []string{strconv.FormatUint(uint64(val), 10)}
	case uint64:
		return []string{strconv.FormatUint(val, 10)}
	case float64:
		return []string{strconv.FormatFloat(val, 'f', -1, 64)}
	case float32:
		return []string{strconv.FormatFloat(float64(val), 'f', -1, 32)}
	case fmt.Stringer:
		return []string{val.String()}
	default:
		return []string{fmt.Sprint(val)}
	}
}
