package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newReadCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "read <article-id>...",
			Short: "Mark articles as read",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withState(cmd.Context(), func(s *localState) error {
					for _, id := range args {
						if err := s.tracker.MarkRead(cmd.Context(), id); err != nil {
							return err
						}
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Marked %d read\n", len(args))
					return nil
				})
			},
		},
		{
			Use:   "unread <article-id>...",
			Short: "Mark articles as unread",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withState(cmd.Context(), func(s *localState) error {
					for _, id := range args {
						if err := s.tracker.MarkUnread(cmd.Context(), id); err != nil {
							return err
						}
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Marked %d unread\n", len(args))
					return nil
				})
			},
		},
		{
			Use:   "toggle <article-id>",
			Short: "Flip the read state of an article",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withState(cmd.Context(), func(s *localState) error {
					read, err := s.tracker.Toggle(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					state := "unread"
					if read {
						state = "read"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], state)
					return nil
				})
			},
		},
		{
			Use:   "visit",
			Short: "Record a visit and print the previous one",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withState(cmd.Context(), func(s *localState) error {
					prev, err := s.tracker.LastVisit(cmd.Context())
					if err != nil {
						return err
					}
					if err := s.tracker.UpdateLastVisit(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Previous visit: %s\n", formatMillis(prev))
					return nil
				})
			},
		},
		{
			Use:   "status",
			Short: "Show local read state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withState(cmd.Context(), func(s *localState) error {
					snap, err := s.store.Load(cmd.Context())
					if err != nil {
						return err
					}

					ids := make([]string, 0, len(snap.ReadArticles))
					for id := range snap.ReadArticles {
						ids = append(ids, id)
					}
					sort.Strings(ids)

					rows := make([][]string, len(ids))
					for i, id := range ids {
						ts := snap.ReadArticles[id]
						rows[i] = []string{id, time.UnixMilli(ts).Local().Format(time.RFC3339), strconv.FormatInt(ts, 10)}
					}

					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "Last visit: %s\n", formatMillis(snap.LastVisit))
					fmt.Fprintln(out, renderTable([]string{"Article", "Read at", "Epoch ms"}, rows,
						[]columnAlignment{alignLeft, alignLeft, alignRight}))
					return nil
				})
			},
		},
		{
			Use:   "clear",
			Short: "Forget all read marks and the last visit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withState(cmd.Context(), func(s *localState) error {
					if err := s.tracker.Clear(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared local read state")
					return nil
				})
			},
		},
	}
}
