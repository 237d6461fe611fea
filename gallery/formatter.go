package gallery

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	Page        int // zero-based
	Pages       int
	Total       int
	Now         time.Time
}

// ConsoleFormatter renders file listings for a terminal
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatFileList formats one page of files as a tree
func (f *ConsoleFormatter) FormatFileList(files []File, options FormatOptions) string {
	if options.Total == 0 {
		return "No pictures found matching the filter criteria.\n"
	}

	var sb strings.Builder

	sb.WriteString("\nPicture")
	if options.Total != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d", options.Total)
	if options.Pages > 1 {
		fmt.Fprintf(&sb, ", page %d of %d", options.Page+1, options.Pages)
	}
	sb.WriteString("):\n\n")

	if len(files) == 0 {
		fmt.Fprintf(&sb, "Page %d is past the end.\n", options.Page+1)
		return sb.String()
	}

	for i, file := range files {
		isLast := i == len(files)-1
		f.formatFile(&sb, file, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatDownloads summarises saved files
func (f *ConsoleFormatter) FormatDownloads(paths []string) string {
	if len(paths) == 0 {
		return "Nothing to download.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Downloaded %d file", len(paths))
	if len(paths) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(":\n")
	for _, p := range paths {
		fmt.Fprintf(&sb, "  ✓ %s\n", p)
	}
	return sb.String()
}

// formatFile formats a single file entry
func (f *ConsoleFormatter) formatFile(sb *strings.Builder, file File, isLast bool, options FormatOptions) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── %s [%s]\n", prefix, file.Name, humanize.Bytes(uint64(max(file.Size, 0))))
	fmt.Fprintf(sb, "%sID: %s\n", indent, file.ID)

	if !options.ShowDetails {
		return
	}

	if from := file.From(); from != "" {
		if name := file.Addresses.From.Name; name != "" {
			fmt.Fprintf(sb, "%sFrom: %s <%s>\n", indent, name, from)
		} else {
			fmt.Fprintf(sb, "%sFrom: %s\n", indent, from)
		}
	}
	if file.Subject != "" {
		fmt.Fprintf(sb, "%sSubject: %s\n", indent, file.Subject)
	}
	if sent := file.Time(); !sent.IsZero() {
		now := options.Now
		if now.IsZero() {
			now = time.Now()
		}
		fmt.Fprintf(sb, "%sSent: %s (%s)\n", indent, sent.Format("2006-01-02"), humanize.RelTime(sent, now, "ago", "from now"))
	}
	if file.Type != "" {
		fmt.Fprintf(sb, "%sType: %s\n", indent, file.Type)
	}
}
