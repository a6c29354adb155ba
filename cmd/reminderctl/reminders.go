package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayminder/dayminder/client"
	"github.com/dayminder/dayminder/internal/i18n"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders, past-due first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			list, err := c.List(ctx, "")
			if err != nil {
				opts.log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list reminders failed")
				return err
			}
			opts.log.Debug().Int("count", len(list)).Dur("elapsed", time.Since(start)).Msg("list reminders completed")

			lang := opts.language()
			renderList(cmd.OutOrStdout(), list, lang, i18n.For(lang), time.Now())
			return nil
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var title, at, repeat string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.log.Debug().
				Str("title", title).
				Str("time", at).
				Str("repeat", repeat).
				Msg("creating reminder")

			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			id, err := c.Create(ctx, client.ReminderFormData{
				Title:      title,
				Time:       at,
				RepeatMode: client.RepeatMode(repeat),
			}, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reminder created: %s - %s\n", id, title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "What to be reminded about (required)")
	cmd.Flags().StringVar(&at, "time", "", "Time of day as HH:MM (required)")
	cmd.Flags().StringVar(&repeat, "repeat", string(client.RepeatToday), "Repeat mode: today or everyday")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newCompletedCmd(opts *rootOptions, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := c.SetCompleted(ctx, args[0], completed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reminder %s completed=%t\n", args[0], completed)
			return nil
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := c.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reminder deleted: %s\n", args[0])
			return nil
		},
	}
}

func newCleanupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Purge stale one-time reminders and complete past-due ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			res, err := c.Cleanup(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d, purged %d, completed %d\n", res.Scanned, res.Purged, res.Completed)
			return nil
		},
	}
}

func newTextsCmd(opts *rootOptions) *cobra.Command {
	var toggle bool

	cmd := &cobra.Command{
		Use:   "texts",
		Short: "Print the display text table for --lang",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			lang := opts.language()
			if toggle {
				lang = i18n.Toggle(lang)
			}
			texts, err := c.Texts(ctx, string(lang))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(texts)
		},
	}

	cmd.Flags().BoolVar(&toggle, "toggle", false, "Switch to the other language (en <-> hi)")
	return cmd
}
