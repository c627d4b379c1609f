package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/rolodex/internal/cli"
	"github.com/Veraticus/rolodex/internal/common"
)

var (
	cfgFile string
	version = "dev"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rolo",
		Short: "📇 Personal contact directory",
		Long: `rolo keeps your contacts in one place: it refuses near-duplicate entries,
files every contact under a category automatically, and lists the people you
look up most often first.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/rolodex/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(sortCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(filterCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	ctx = handler.HandleInterrupts(ctx, "Nothing was written for the interrupted command.")

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, formatCommandError(err))
		os.Exit(1)
	}
}

// formatCommandError renders rejected input as a warning and anything else as an error.
func formatCommandError(err error) string {
	var userErr *common.UserError
	switch {
	case errors.As(err, &userErr):
		return cli.FormatError(userErr.UserMessage)
	case common.IsRecoverable(err):
		return cli.FormatWarning(err.Error())
	default:
		return cli.FormatError(err.Error())
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/rolodex", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// ROLODEX_STORAGE_BACKEND overrides storage.backend, and so on.
	viper.SetEnvPrefix("ROLODEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	if err := common.SetupLogger(os.Stderr, level, viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rolo version %s\n", version)
		},
	}
}
