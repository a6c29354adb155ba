package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayminder/dayminder/internal/i18n"
	"github.com/dayminder/dayminder/viewstate"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the list in sync, running cleanup on a fixed period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			lang := opts.language()
			texts := i18n.For(lang)
			out := cmd.OutOrStdout()

			var mu sync.Mutex
			render := func(st viewstate.State) {
				mu.Lock()
				defer mu.Unlock()
				switch {
				case st.Loading:
					return
				case st.Err != nil:
					fmt.Fprintf(out, "error: %v\n", st.Err)
				default:
					fmt.Fprintf(out, "--- %s %s\n", texts.RemindersTitle, time.Now().Format("15:04:05"))
					renderList(out, st.Reminders, lang, texts, time.Now())
				}
			}

			syncer := viewstate.New(c,
				viewstate.WithInterval(interval),
				viewstate.WithUserID(c.UserID()),
				viewstate.WithOnChange(render),
				viewstate.WithLogger(opts.log),
			)
			syncer.Start(cmd.Context())
			<-cmd.Context().Done()
			syncer.Stop()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", viewstate.DefaultInterval, "Cleanup and refresh period")
	return cmd
}
