package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/mailgallery/config"
	"github.com/s0up4200/mailgallery/filter"
	"github.com/s0up4200/mailgallery/gallery"
)

var (
	photosAccount string
	photosPage    int
	photosDetails bool
	listPresets   bool
	filterExpr    string
	preset        string
)

// photosCmd lists the image attachments of a mailbox
var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "List pictures attached to messages of an account",
	Long: `List the most recent attachments of an account that match the filter,
one page at a time. The default filter is filter.default_expression from the
configuration (isImage() unless overridden).`,
	Example: `  mailgallery photos --account me@example.com
  mailgallery photos --page 2 --filter 'isImage() and Size > 1000000'
  mailgallery photos --preset large
  mailgallery photos --list-presets`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runPhotos,
}

func init() {
	photosCmd.Flags().StringVarP(&photosAccount, "account", "a", "", "account identifier (default gallery.account)")
	photosCmd.Flags().IntVar(&photosPage, "page", 1, "page to show, starting at 1")
	photosCmd.Flags().BoolVar(&photosDetails, "details", true, "show sender, subject and date")
	photosCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	photosCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	photosCmd.Flags().BoolVar(&listPresets, "list-presets", false, "list the filter presets from config and exit")
}

func runPhotos(cmd *cobra.Command, args []string) error {
	if listPresets {
		return printPresets(cmd.OutOrStdout(), filters, cfg.Filter.Presets)
	}

	account, err := accountOrDefault(photosAccount)
	if err != nil {
		return err
	}

	svc, err := newGallery(filterExpr, preset)
	if err != nil {
		return err
	}

	files, err := svc.ListPictures(cmd.Context(), account)
	if err != nil {
		return err
	}

	pageSize := cfg.Gallery.PageSize
	page := max(photosPage-1, 0)

	formatter := gallery.NewConsoleFormatter()
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFileList(gallery.Paginate(files, page, pageSize), gallery.FormatOptions{
		ShowDetails: photosDetails,
		Page:        page,
		Pages:       gallery.PageCount(len(files), pageSize),
		Total:       len(files),
	}))

	return nil
}

// printPresets lists the registered presets with their description and expression
func printPresets(w io.Writer, m *filter.Manager, presets map[string]config.FilterPreset) error {
	names := m.ListFilters()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No filter presets configured.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION\tEXPRESSION")
	for _, name := range names {
		f, _ := m.GetFilter(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, presets[name].Description, f.Expression())
	}
	return tw.Flush()
}
