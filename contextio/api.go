package contextio

import (
	"context"
	"io"
)

// FileAPI is the subset of the client used to browse and fetch attachments.
type FileAPI interface {
	// AllFiles lists the most recent attachments of a mailbox
	AllFiles(ctx context.Context, account string, params Params) (*Response, error)

	// DownloadFile streams an attachment into w
	DownloadFile(ctx context.Context, account string, params Params, w io.Writer) error
}

// Ensure Client implements FileAPI at compile time.
var _ FileAPI = (*Client)(nil)

// Addresses returns the contacts with whom the most emails were exchanged.
func (c *Client) Addresses(ctx context.Context, account string) (*Response, error) {
	return c.Call(ctx, Addresses, account, nil)
}

// AllFiles returns the most recent attachments. Params: since, limit.
func (c *Client) AllFiles(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, AllFiles, account, params)
}

// AllMessages returns the most recent messages. Params: since, limit.
func (c *Client) AllMessages(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, AllMessages, account, params)
}

// ContactFiles returns attachments exchanged with one or more addresses.
// Params: email, to, from, cc, bcc, limit.
func (c *Client) ContactFiles(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, ContactFiles, account, params)
}

// ContactMessages returns messages exchanged with one or more addresses.
// Params: email, to, from, cc, bcc, limit.
func (c *Client) ContactMessages(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, ContactMessages, account, params)
}

// ContactSearch searches the contact list. Params: search.
func (c *Client) ContactSearch(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, ContactSearch, account, params)
}

// DiffSummary returns insertions and deletions between two files.
// Params: fileid1, fileid2.
func (c *Client) DiffSummary(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, DiffSummary, account, params)
}

// DownloadFile streams the content of an attachment into w. Params: fileid.
func (c *Client) DownloadFile(ctx context.Context, account string, params Params, w io.Writer) error {
	_, err := c.Download(ctx, account, params, w)
	return err
}

// FileRevisions returns revisions of a file. Params: fileid, filename.
func (c *Client) FileRevisions(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, FileRevisions, account, params)
}

// RelatedFiles returns files with similar names. Params: fileid, filename.
func (c *Client) RelatedFiles(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, RelatedFiles, account, params)
}

// FileSearch searches attachments by name. Params: filename.
func (c *Client) FileSearch(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, FileSearch, account, params)
}

func (c *Client) IMAPAccountInfo(ctx context.Context, params Params) (*Response, error) {
	return c.Call(ctx, IMAPAccountInfo, "", params)
}

func (c *Client) IMAPAddAccount(ctx context.Context, params Params) (*Response, error) {
	return c.Call(ctx, IMAPAddAccount, "", params)
}

// IMAPDiscover looks up IMAP settings. Params: email.
func (c *Client) IMAPDiscover(ctx context.Context, params Params) (*Response, error) {
	return c.Call(ctx, IMAPDiscover, "", params)
}

// DiscoverEmail is IMAPDiscover for a bare address.
func (c *Client) DiscoverEmail(ctx context.Context, email string) (*Response, error) {
	return c.IMAPDiscover(ctx, Params{{Key: string(KeyEmail), Value: email}})
}

func (c *Client) IMAPModifyAccount(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, IMAPModifyAccount, account, params)
}

func (c *Client) IMAPRemoveAccount(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, IMAPRemoveAccount, account, params)
}

// IMAPResetStatus re-enables syncing of a server flagged unavailable.
func (c *Client) IMAPResetStatus(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, IMAPResetStatus, account, params)
}

func (c *Client) IMAPDeleteOAuthProvider(ctx context.Context, params Params) (*Response, error) {
	return c.Call(ctx, IMAPDeleteOAuthProvider, "", params)
}

func (c *Client) IMAPSetOAuthProvider(ctx context.Context, params Params) (*Response, error) {
	return c.Call(ctx, IMAPSetOAuthProvider, "", params)
}

func (c *Client) IMAPGetOAuthProviders(ctx context.Context, params Params) (*Response, error) {
	return c.Call(ctx, IMAPGetOAuthProviders, "", params)
}

// MessageHeaders returns the headers of a message.
// Params: emailmessageid, from, datesent.
func (c *Client) MessageHeaders(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, MessageHeaders, account, params)
}

// MessageInfo returns document and contact information about a message.
// Params: emailmessageid, from, datesent, server, mbox, uid.
func (c *Client) MessageInfo(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, MessageInfo, account, params)
}

// MessageText returns the body of a message.
// Params: emailmessageid, from, datesent, type.
func (c *Client) MessageText(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, MessageText, account, params)
}

// Search finds messages by subject. Params: subject, limit.
func (c *Client) Search(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, Search, account, params)
}

// ThreadInfo returns a thread's messages and contacts.
// Params: gmailthreadid, emailmessageid.
func (c *Client) ThreadInfo(ctx context.Context, account string, params Params) (*Response, error) {
	return c.Call(ctx, ThreadInfo, account, params)
}
