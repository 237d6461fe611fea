package gallery

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileList(t *testing.T) {
	now := time.Unix(1300000000, 0).Add(72 * time.Hour)
	files := []File{
		{
			ID:        "f1",
			Name:      "beach.jpg",
			Size:      2_000_000,
			Type:      "image/jpeg",
			Subject:   "Trip",
			Date:      1300000000,
			Addresses: Addresses{From: Address{Email: "ann@example.com", Name: "Ann"}},
		},
		{ID: "f2", Name: "cat.png", Size: 512},
	}

	out := NewConsoleFormatter().FormatFileList(files, FormatOptions{
		ShowDetails: true,
		Page:        1,
		Pages:       3,
		Total:       25,
		Now:         now,
	})

	assert.Contains(t, out, "Pictures (25, page 2 of 3):")
	assert.Contains(t, out, "├── beach.jpg [2.0 MB]")
	assert.Contains(t, out, "│   From: Ann <ann@example.com>")
	assert.Contains(t, out, "│   Subject: Trip")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "╰── cat.png [512 B]")
	assert.Contains(t, out, "    ID: f2")
	assert.NotContains(t, out, "    From:")
}

func TestFormatFileListEdgeCases(t *testing.T) {
	f := NewConsoleFormatter()

	assert.Equal(t, "No pictures found matching the filter criteria.\n", f.FormatFileList(nil, FormatOptions{}))

	past := f.FormatFileList(nil, FormatOptions{Total: 3, Page: 4, Pages: 1})
	assert.Contains(t, past, "Page 5 is past the end.")

	single := f.FormatFileList([]File{{ID: "x", Name: "x.gif", Subject: "hidden"}}, FormatOptions{Total: 1, Pages: 1})
	assert.True(t, strings.HasPrefix(single, "\nPicture (1):"))
	assert.NotContains(t, single, "hidden")
}

func TestFormatDownloads(t *testing.T) {
	f := NewConsoleFormatter()
	assert.Equal(t, "Nothing to download.\n", f.FormatDownloads(nil))
	assert.Equal(t, "Downloaded 1 file:\n  ✓ /tmp/a.jpg\n", f.FormatDownloads([]string{"/tmp/a.jpg"}))
	assert.Contains(t, f.FormatDownloads([]string{"a", "b"}), "Downloaded 2 files:")
}
