package contextio

import (
	"net/http"
	"sort"
)

// Endpoint names one operation of the remote API.
type Endpoint string

const (
	Addresses               Endpoint = "addresses"
	AllFiles                Endpoint = "allfiles"
	AllMessages             Endpoint = "allmessages"
	ContactFiles            Endpoint = "contactfiles"
	ContactMessages         Endpoint = "contactmessages"
	ContactSearch           Endpoint = "contactsearch"
	DiffSummary             Endpoint = "diffsummary"
	DownloadFile            Endpoint = "downloadfile"
	FileRevisions           Endpoint = "filerevisions"
	RelatedFiles            Endpoint = "relatedfiles"
	FileSearch              Endpoint = "filesearch"
	IMAPAccountInfo         Endpoint = "imap/accountinfo"
	IMAPAddAccount          Endpoint = "imap/addaccount"
	IMAPDiscover            Endpoint = "imap/discover"
	IMAPModifyAccount       Endpoint = "imap/modifyaccount"
	IMAPRemoveAccount       Endpoint = "imap/removeaccount"
	IMAPResetStatus         Endpoint = "imap/resetstatus"
	IMAPDeleteOAuthProvider Endpoint = "imap/deleteoauthprovider"
	IMAPSetOAuthProvider    Endpoint = "imap/setoauthprovider"
	IMAPGetOAuthProviders   Endpoint = "imap/getoauthproviders"
	MessageHeaders          Endpoint = "messageheaders"
	MessageInfo             Endpoint = "messageinfo"
	MessageText             Endpoint = "messagetext"
	Search                  Endpoint = "search"
	ThreadInfo              Endpoint = "threadinfo"
)

// Descriptor declares how an endpoint is called.
type Descriptor struct {
	// Action is the path segment appended to the versioned base URL.
	Action string
	Method string
	// AccountScoped endpoints carry the account parameter and can be batched.
	AccountScoped bool
	// Allowed is the parameter whitelist applied before signing.
	Allowed []Key
	// Fixed parameters are set after filtering and override caller values.
	Fixed Params
}

var messageLookup = []Key{KeyEmailMessageID, KeyFrom, KeyDateSent}

var catalog = map[Endpoint]Descriptor{
	Addresses: {
		Action: "addresses.json", Method: http.MethodGet, AccountScoped: true,
	},
	AllFiles: {
		Action: "allfiles.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeySince, KeyLimit},
	},
	AllMessages: {
		Action: "allmessages.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeySince, KeyLimit},
	},
	ContactFiles: {
		Action: "contactfiles.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyEmail, KeyTo, KeyFrom, KeyCC, KeyBCC, KeyLimit},
	},
	ContactMessages: {
		Action: "contactmessages.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyEmail, KeyTo, KeyFrom, KeyCC, KeyBCC, KeyLimit},
	},
	ContactSearch: {
		Action: "contactsearch.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeySearch},
	},
	DiffSummary: {
		Action: "diffsummary.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyFileID1, KeyFileID2},
		Fixed:   Params{{Key: string(KeyGenerate), Value: 1}},
	},
	DownloadFile: {
		Action: "downloadfile", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyFileID},
	},
	FileRevisions: {
		Action: "filerevisions.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyFileID, KeyFileName},
	},
	RelatedFiles: {
		Action: "relatedfiles.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyFileID, KeyFileName},
	},
	FileSearch: {
		Action: "filesearch.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyFileName},
	},
	IMAPAccountInfo: {
		Action: "imap/accountinfo.json", Method: http.MethodGet,
		Allowed: []Key{KeyEmail, KeyUserID},
	},
	IMAPAddAccount: {
		Action: "imap/addaccount.json", Method: http.MethodGet,
		Allowed: []Key{
			KeyEmail, KeyServer, KeyUsername, KeyOAuthConsumerName, KeyOAuthToken,
			KeyOAuthTokenSecret, KeyPassword, KeyUseSSL, KeyPort, KeyFirstName, KeyLastName,
		},
	},
	IMAPDiscover: {
		Action: "imap/discover.json", Method: http.MethodGet,
		Allowed: []Key{KeyEmail},
	},
	IMAPModifyAccount: {
		Action: "imap/modifyaccount.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyCredentials, KeyMailboxes},
	},
	IMAPRemoveAccount: {
		Action: "imap/removeaccount.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyLabel},
	},
	IMAPResetStatus: {
		Action: "imap/resetstatus.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyLabel},
	},
	IMAPDeleteOAuthProvider: {
		Action: "imap/oauthproviders.json", Method: http.MethodPost,
		Allowed: []Key{KeyKey},
		Fixed:   Params{{Key: string(KeyAction), Value: "delete"}},
	},
	IMAPSetOAuthProvider: {
		Action: "imap/oauthproviders.json", Method: http.MethodPost,
		Allowed: []Key{KeyType, KeyKey, KeySecret},
	},
	IMAPGetOAuthProviders: {
		Action: "imap/oauthproviders.json", Method: http.MethodGet,
		Allowed: []Key{KeyKey},
	},
	MessageHeaders: {
		Action: "messageheaders.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: messageLookup,
	},
	MessageInfo: {
		Action: "messageinfo.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: append(append([]Key{}, messageLookup...), KeyServer, KeyMbox, KeyUID),
	},
	MessageText: {
		Action: "messagetext.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: append(append([]Key{}, messageLookup...), KeyType),
	},
	Search: {
		Action: "search.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeySubject, KeyLimit},
	},
	ThreadInfo: {
		Action: "threadinfo.json", Method: http.MethodGet, AccountScoped: true,
		Allowed: []Key{KeyGmailThreadID, KeyEmailMessageID},
	},
}

// Lookup returns the descriptor for ep.
func Lookup(ep Endpoint) (Descriptor, bool) {
	d, ok := catalog[ep]
	return d, ok
}

// Endpoints returns every catalogued endpoint, sorted by name.
func Endpoints() []Endpoint {
	eps := make([]Endpoint, 0, len(catalog))
	for ep := range catalog {
		eps = append(eps, ep)
	}
	sort.Slice(eps, func(i, j int) bool { return eps[i] < eps[j] })
	return eps
}

// prepare filters params against the whitelist, applies fixed parameters
// and adds the account when the endpoint is account scoped.
func (d Descriptor) prepare(account string, params Params) (Params, error) {
	if d.AccountScoped && account == "" {
		return nil, ErrAccountRequired
	}
	prepared := Filter(params, d.Allowed).Merge(d.Fixed)
	if d.AccountScoped {
		prepared = prepared.With(string(KeyAccount), account)
	}
	return prepared, nil
}
