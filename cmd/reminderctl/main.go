package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dayminder/dayminder/client"
	"github.com/dayminder/dayminder/internal/i18n"
	"github.com/dayminder/dayminder/internal/logger"
)

const requestTimeout = 15 * time.Second

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	serviceURL string
	userID     string
	lang       string
	verbose    bool

	log zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := execute(ctx, NewRootCmd(), logger.NewConsole("reminderctl", false))
	stop()
	os.Exit(code)
}

// execute runs cmd and returns the process exit code, logging any failure.
func execute(ctx context.Context, cmd *cobra.Command, log zerolog.Logger) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "reminderctl",
		Short:         "Manage reminders on a reminder service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = logger.NewConsole("reminderctl", opts.verbose)
			opts.log.Debug().Str("service_url", opts.serviceURL).Msg("debug logging enabled")
		},
	}

	defaultURL := getEnv("REMINDER_SERVICE_URL", "http://localhost:8080")
	rootCmd.PersistentFlags().StringVar(&opts.serviceURL, "service-url", defaultURL, "Base URL of the reminder service")
	rootCmd.PersistentFlags().StringVarP(&opts.userID, "user-id", "u", "", "Owner tag applied to add and list")
	rootCmd.PersistentFlags().StringVarP(&opts.lang, "lang", "l", string(i18n.Default), "Display language (en, hi)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose debug output")

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newCompletedCmd(opts, "done", "Mark a reminder completed", true))
	rootCmd.AddCommand(newCompletedCmd(opts, "undo", "Mark a reminder open again", false))
	rootCmd.AddCommand(newDeleteCmd(opts))
	rootCmd.AddCommand(newCleanupCmd(opts))
	rootCmd.AddCommand(newTextsCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))

	return rootCmd
}

func (o *rootOptions) client() (*client.Client, error) {
	return client.New(o.serviceURL, client.WithUserID(o.userID), client.WithDebugLogging(o.verbose))
}

func (o *rootOptions) language() i18n.Lang { return i18n.Parse(o.lang) }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
