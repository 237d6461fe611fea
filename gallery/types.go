package gallery

import (
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// imageExtensions are treated as pictures when the attachment carries no
// usable MIME type.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".heic", ".tif", ".tiff"}

// Address is a mailbox that sent or received the message carrying a file
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Addresses groups the participants of the carrying message
type Addresses struct {
	From Address   `json:"from"`
	To   []Address `json:"to"`
	CC   []Address `json:"cc"`
}

// File is an attachment record as returned by the allfiles endpoint
type File struct {
	ID             string    `json:"fileId"`
	Name           string    `json:"fileName"`
	Size           int64     `json:"size"`
	Type           string    `json:"type"`
	Subject        string    `json:"subject"`
	Date           int64     `json:"date"`
	EmailMessageID string    `json:"emailMessageId"`
	Addresses      Addresses `json:"addresses"`
}

// Time returns the send date of the carrying message
func (f File) Time() time.Time {
	if f.Date == 0 {
		return time.Time{}
	}
	return time.Unix(f.Date, 0)
}

// Ext returns the lower-cased file extension, falling back to one derived
// from the MIME type.
func (f File) Ext() string {
	if ext := strings.ToLower(filepath.Ext(f.Name)); ext != "" {
		return ext
	}
	if f.Type == "" {
		return ""
	}
	exts, err := mime.ExtensionsByType(f.Type)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// IsImage reports whether the attachment is a picture.
func (f File) IsImage() bool {
	if strings.HasPrefix(strings.ToLower(f.Type), "image/") {
		return true
	}
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(f.Name)))
}

// From returns the sender email of the carrying message
func (f File) From() string {
	return f.Addresses.From.Email
}
