package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dayminder/dayminder/client"
	"github.com/dayminder/dayminder/internal/i18n"
)

// renderList prints past-due reminders under their own header, then the rest.
func renderList(w io.Writer, list []client.Reminder, lang i18n.Lang, texts i18n.Texts, now time.Time) {
	if len(list) == 0 {
		fmt.Fprintln(w, texts.NoReminders)
		return
	}

	var due, rest []client.Reminder
	for _, r := range list {
		if r.PastDue(now) {
			due = append(due, r)
		} else {
			rest = append(rest, r)
		}
	}

	if len(due) > 0 {
		fmt.Fprintf(w, "%s (%d)\n", lang.Upper(texts.PastDue), len(due))
		for _, r := range due {
			renderLine(w, r, texts, texts.PastDueLabel)
		}
		fmt.Fprintln(w)
	}
	if len(rest) > 0 {
		fmt.Fprintf(w, "%s (%d)\n", lang.Upper(texts.AllReminders), len(rest))
		for _, r := range rest {
			renderLine(w, r, texts, "")
		}
	}
}

func renderLine(w io.Writer, r client.Reminder, texts i18n.Texts, note string) {
	box := "[ ]"
	if r.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "  %s %s  %s  %s  %s", box, r.Time, r.Title, texts.RepeatLabelFor(string(r.RepeatMode)), r.ID)
	if note != "" {
		fmt.Fprintf(w, "  (%s)", note)
	}
	fmt.Fprintln(w)
}
