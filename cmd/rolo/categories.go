package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rolodex/internal/cli"
	"github.com/Veraticus/rolodex/internal/common"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			categories, err := dir.Categories(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No categories found."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatTitle("Categories"))
			for _, category := range categories {
				fmt.Fprintln(out, "  "+cli.CategoryStyle.Render(category))
			}
			return nil
		},
	}
}

func filterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter [category]",
		Short: "List the contacts in one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			var category string
			if len(args) == 1 {
				category = args[0]
			} else {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				prompt := fmt.Sprintf("Category (%s)", strings.Join(dir.Labels(), ", "))
				if category, err = prompter.Ask(ctx, prompt); err != nil {
					return err
				}
			}
			if strings.TrimSpace(category) == "" {
				return common.NewValidationError("category", "cannot be empty")
			}

			matches, err := dir.FilterByCategory(ctx, category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No contacts found in category '%s'.", category)))
				return nil
			}

			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Contacts in '%s'", category)))
			return cli.RenderListing(out, matches, nil)
		},
	}
}
