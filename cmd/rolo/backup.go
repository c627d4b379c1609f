package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rolodex/internal/backup"
	"github.com/Veraticus/rolodex/internal/cli"
	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/service"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage contact backups",
		Long: `Backups are JSON snapshots of the contact list. Popularity and recently
viewed data are not part of a backup.`,
	}

	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupListCmd())
	cmd.AddCommand(backupRestoreCmd())
	cmd.AddCommand(backupDeleteCmd())

	return cmd
}

// initBackupManager opens storage and a backup manager on the configured directory.
// The caller must close the returned storage.
func initBackupManager(ctx context.Context) (*backup.Manager, service.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	manager, err := backup.NewManager(cfg.BackupDir, store)
	if err != nil {
		closeStorage(store)
		return nil, nil, err
	}
	return manager, store, nil
}

func backupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Snapshot the current contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			manager, store, err := initBackupManager(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			contacts, err := store.LoadContacts(ctx)
			if err != nil {
				return err
			}
			if len(contacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No contacts to backup."))
				return nil
			}

			info, err := manager.Create(ctx)
			if errors.Is(err, backup.ErrBackupExists) {
				return common.NewUserError("A backup was already taken this second, try again shortly", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Backup %s created with %d contact(s).", info.Name, info.Contacts)))
			return nil
		},
	}
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			manager, store, err := initBackupManager(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			backups, err := manager.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(backups) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No backups found."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCREATED\tCONTACTS\tSIZE")
			for _, b := range backups {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
					b.Name, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Contacts, b.Size)
			}
			return w.Flush()
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Replace the contact list with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			manager, store, err := initBackupManager(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if !force {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				confirmed, confirmErr := prompter.Confirm(ctx,
					fmt.Sprintf("Replace all current contacts with %s?", args[0]))
				if confirmErr != nil {
					return confirmErr
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Restore canceled."))
					return nil
				}
			}

			count, err := manager.Restore(ctx, args[0])
			if err != nil {
				return backupError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Restored %d contact(s) from %s.", count, args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func backupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			manager, store, err := initBackupManager(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := manager.Delete(ctx, args[0]); err != nil {
				return backupError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Backup %s deleted.", args[0])))
			return nil
		},
	}
}

func backupError(err error) error {
	switch {
	case errors.Is(err, backup.ErrBackupNotFound):
		return common.NewUserError("Backup not found", err)
	case errors.Is(err, backup.ErrInvalidName):
		return common.NewUserError("Not a backup file name", err)
	default:
		return err
	}
}
