package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rolodex/internal/cli"
	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/csvio"
)

const defaultExportFile = "contacts_export.csv"

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export contacts to CSV",
		Example: `  # Write contacts_export.csv in the current directory
  rolo export

  # Write to standard output
  rolo export --output -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if output == "-" {
				_, err = dir.ExportContacts(ctx, cmd.OutOrStdout())
				return err
			}

			// #nosec G304 - path is supplied by the user on purpose
			file, err := os.Create(output)
			if err != nil {
				return common.NewUserError("Could not create export file", err)
			}

			count, err := dir.ExportContacts(ctx, file)
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return fmt.Errorf("failed to export contacts: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Exported %d contact(s) to %s", count, output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultExportFile, "output file, or - for stdout")

	return cmd
}

func importCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import contacts from CSV",
		Long: `Import contacts from a CSV file with a header row naming the columns
name, phone, email, date_added, category and note. Rows missing a name,
phone or email are skipped, as are rows that duplicate an existing contact. Categories are predicted again
rather than taken from the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			records, err := csvio.ReadFile(args[0])
			if err != nil {
				return common.NewUserError("Could not read import file", err)
			}

			dir, store, err := initDirectory(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			var progressOut io.Writer = cmd.ErrOrStderr()
			if quiet {
				progressOut = io.Discard
			}
			bar := cli.NewImportProgress(progressOut, len(records))

			result, err := dir.ImportContacts(ctx, records, bar)
			if err != nil {
				return err
			}
			_ = bar.Finish()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d contact(s).", result.Added)))
			if result.Incomplete > 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipped %d incomplete row(s).", result.Incomplete)))
			}
			if result.Duplicates > 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipped %d duplicate row(s).", result.Duplicates)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}
