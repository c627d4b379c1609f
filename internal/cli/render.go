package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/rolodex/internal/model"
)

// RenderListing writes a numbered table of contacts. views may be nil, in
// which case the views column is omitted. Row numbers start at 1 and match
// SelectByRow.
func RenderListing(w io.Writer, contacts []model.Contact, views model.Popularity) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"#", "NAME", "CATEGORY", "PHONE", "EMAIL", "NOTE", "ADDED"}
	if views != nil {
		header = append(header, "VIEWS")
	}
	for i, h := range header {
		header[i] = BoldStyle.Render(h)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	for i, c := range contacts {
		row := []string{
			fmt.Sprintf("%d", i+1),
			c.Name,
			CategoryStyle.Render(c.Category),
			c.Phone,
			c.Email,
			noteOrNone(c.Note),
			c.FormatDateAdded(),
		}
		if views != nil {
			row = append(row, fmt.Sprintf("%d", views[c.ID]))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// FormatContactLine renders a contact on a single line.
func FormatContactLine(c model.Contact) string {
	return fmt.Sprintf("%s [%s] - %s - %s - Note: %s",
		BoldStyle.Render(c.Name), CategoryStyle.Render(c.Category), c.Phone, c.Email, noteOrNone(c.Note))
}

func noteOrNone(note string) string {
	if note == "" {
		return SubtleStyle.Render("None")
	}
	return note
}
