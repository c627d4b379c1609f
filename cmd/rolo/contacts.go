package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rolodex/internal/cli"
	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/model"
)

func addCmd() *cobra.Command {
	var fields model.ContactFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new contact",
		Long: `Add a contact. The category is predicted from the name and email.

A contact is rejected when its name is nearly identical to an existing name,
or its email or phone number is already in use.`,
		Example: `  # Prompt for every field
  rolo add

  # Provide the fields as flags
  rolo add --name "Jane Doe" --phone 555-7777 --email jane@work.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if fields == (model.ContactFields{}) {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				if fields, err = prompter.AskContactFields(ctx); err != nil {
					return err
				}
			}

			contact, err := dir.AddContact(ctx, fields)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Contact '%s' added successfully! Predicted category: %s", contact.Name, contact.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&fields.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&fields.Email, "email", "", "email address")
	cmd.Flags().StringVar(&fields.Note, "note", "", "optional note or tag")

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contacts, most viewed first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			listing, err := dir.RankedListing(ctx)
			if err != nil {
				return err
			}
			views, err := dir.Views(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(listing) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No contacts found."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatTitle("Contact List (Sorted by Popularity)"))
			return cli.RenderListing(out, listing, views)
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search by name, email or phone",
		Long: `Search contacts by name, email or phone. Short queries match inside
longer fields. Every contact found counts as a view.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			results, err := dir.Search(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No contact matched your query."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Found %d result(s):", len(results))))
			for _, c := range results {
				fmt.Fprintln(out, "  "+cli.FormatContactLine(c))
			}
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var update model.ContactFields

	cmd := &cobra.Command{
		Use:   "edit [row]",
		Short: "Edit a contact chosen by its row in the listing",
		Long: `Edit a contact. The row number refers to the listing printed just before
the prompt (or by "rolo list"). Fields left empty keep their current value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			target, err := selectContact(cmd, dir, prompter, args, "Contact number to edit")
			if err != nil {
				return err
			}

			if update == (model.ContactFields{}) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Editing '%s'", target.Name)))
				if update, err = prompter.AskContactUpdate(ctx, target); err != nil {
					return err
				}
			}

			edited, err := dir.EditContact(ctx, target.ID, update)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Contact '%s' updated. Category: %s", edited.Name, edited.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&update.Name, "name", "", "new name")
	cmd.Flags().StringVar(&update.Phone, "phone", "", "new phone number")
	cmd.Flags().StringVar(&update.Email, "email", "", "new email address")
	cmd.Flags().StringVar(&update.Note, "note", "", "new note")

	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete [row]",
		Aliases: []string{"rm"},
		Short:   "Delete a contact chosen by its row in the listing",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			target, err := selectContact(cmd, dir, prompter, args, "Contact number to delete")
			if err != nil {
				return err
			}

			if !yes {
				confirmed, confirmErr := prompter.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete '%s'?", target.Name))
				if confirmErr != nil {
					return confirmErr
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Deletion canceled."))
					return nil
				}
			}

			deleted, err := dir.DeleteContact(ctx, target.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Contact '%s' deleted.", deleted.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Store contacts in alphabetical order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			sorted, err := dir.SortByName(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess("Contacts sorted by name."))
			return cli.RenderListing(out, sorted, nil)
		},
	}
}

// contactLister is the part of the directory row selection needs.
type contactLister interface {
	RankedListing(ctx context.Context) ([]model.Contact, error)
	Views(ctx context.Context) (model.Popularity, error)
}

// selectContact renders the ranked listing and resolves the chosen row, taken
// from args or asked for interactively, to a contact.
func selectContact(cmd *cobra.Command, dir contactLister, prompter *cli.Prompter, args []string, prompt string) (model.Contact, error) {
	ctx := cmd.Context()
	listing, err := dir.RankedListing(ctx)
	if err != nil {
		return model.Contact{}, err
	}
	if len(listing) == 0 {
		return model.Contact{}, common.NewUserError("No contacts found.", nil)
	}

	if len(args) == 1 {
		return cli.SelectByRow(listing, args[0])
	}

	views, err := dir.Views(ctx)
	if err != nil {
		return model.Contact{}, err
	}
	if err := cli.RenderListing(cmd.OutOrStdout(), listing, views); err != nil {
		return model.Contact{}, err
	}

	answer, err := prompter.Ask(ctx, prompt)
	if err != nil {
		return model.Contact{}, err
	}
	return cli.SelectByRow(listing, answer)
}
