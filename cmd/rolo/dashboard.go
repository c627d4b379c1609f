package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rolodex/internal/cli"
	"github.com/Veraticus/rolodex/internal/directory"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show a summary of the directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			dash, err := dir.Dashboard(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.ChartIcon+" Dashboard", formatDashboard(dash)))
			return nil
		},
	}
}

func formatDashboard(dash *directory.Dashboard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total contacts: %d\n", dash.Total)

	if dash.LatestAdded != nil {
		fmt.Fprintf(&b, "Latest added: %s (%s)\n", dash.LatestAdded.Name, dash.LatestAdded.FormatDateAdded())
	} else {
		b.WriteString("Latest added: none\n")
	}

	if dash.MostViewed != nil {
		fmt.Fprintf(&b, "Most viewed: %s (%d views)\n", dash.MostViewed.Name, dash.MostViewedCount)
	} else {
		b.WriteString("Most viewed: none\n")
	}

	if len(dash.Recent) == 0 {
		b.WriteString("Recently viewed: none")
		return b.String()
	}

	b.WriteString("Recently viewed:")
	for _, entry := range dash.Recent {
		name := entry.Name
		if !entry.Known {
			name = "(deleted contact)"
		}
		fmt.Fprintf(&b, "\n  - %s", name)
	}
	return b.String()
}
