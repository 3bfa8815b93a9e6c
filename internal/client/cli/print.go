package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/api"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const timeLayout = "2006-01-02 15:04"

func formatTime(ts *timestamppb.Timestamp) string {
	if ts == nil {
		return "-"
	}
	return ts.AsTime().In(time.Local).Format(timeLayout)
}

func printEntries(w io.Writer, entries []*api.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries yet.")
		return
	}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printEntry(w, e)
	}
}

func printEntry(w io.Writer, e *api.Entry) {
	var tags []string
	if e.IsPublic {
		tags = append(tags, "public")
	} else {
		tags = append(tags, "private")
	}
	if e.IsAnonymized {
		tags = append(tags, "anonymized")
	}

	fmt.Fprintf(w, "@%s  %s  [%s]  %s\n", e.Username, formatTime(e.CreatedAt), strings.Join(tags, ", "), e.ID)
	fmt.Fprintln(w, e.Content)
	if e.OriginalContent != "" {
		fmt.Fprintf(w, "  original: %s\n", e.OriginalContent)
	}
}

func printMappings(w io.Writer, ms []*api.Mapping) {
	if len(ms) == 0 {
		fmt.Fprintln(w, "No mappings. Add one with `veildiary mappings add <name> <pseudonym>`.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tORIGINAL\tPSEUDONYM\tCREATED")
	for _, m := range ms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Original, m.Pseudonym, formatTime(m.CreatedAt))
	}
	tw.Flush()
}

func printProfile(w io.Writer, p *api.Profile) {
	fmt.Fprintf(w, "@%s\n", p.Username)
	if p.Bio != "" {
		fmt.Fprintln(w, p.Bio)
	}
	if p.ProfilePictureURL != "" {
		fmt.Fprintf(w, "picture: %s\n", p.ProfilePictureURL)
	}
	fmt.Fprintf(w, "joined: %s\n", formatTime(p.CreatedAt))
}
