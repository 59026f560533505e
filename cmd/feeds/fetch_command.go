package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/feed"
	stdhttp "feeds-app-api/infrastructure/http/standard"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch subscribed feeds and summarize each document",
		Long:  "Fetches every enabled source one at a time, retrying timeouts and connection failures. With --url only that feed is fetched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var sources []domain.Source
			if url != "" {
				sources = []domain.Source{{Name: url, URL: url, Enabled: true}}
			} else {
				err := ctx.withState(cmd.Context(), func(s *localState) error {
					var err error
					sources, err = s.sources(cmd.Context())
					return err
				})
				if err != nil {
					return err
				}
			}

			fetcher := stdhttp.NewFeedFetcher(cfg.Proxy.Timeout, stdhttp.RetryPolicy{
				MaxRetries: cfg.Proxy.MaxRetries,
				Backoff:    cfg.Proxy.Backoff,
			}, ctx.logger)
			service := feed.NewService(fetcher, ctx.logger)

			stderr := cmd.ErrOrStderr()
			results, failures := service.FetchAll(cmd.Context(), sources, func(p feed.Progress) {
				status := "ok"
				if !p.OK {
					status = "failed"
				}
				fmt.Fprintf(stderr, "[%d/%d] %s %s\n", p.Done, p.Total, p.Source.Name, status)
			})

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Source", "Type", "Items", "Title"},
				fetchRows(results, failures),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			if len(results) == 0 && len(failures) > 0 {
				return fmt.Errorf("all %d feeds failed", len(failures))
			}
			return cmd.Context().Err()
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Fetch a single feed URL instead of the subscribed sources")
	return cmd
}

func fetchRows(results []feed.Result, failures []feed.Failure) [][]string {
	rows := make([][]string, 0, len(results)+len(failures))
	for _, r := range results {
		summary, err := feed.Inspect(r.Document.Body)
		if err != nil {
			rows = append(rows, []string{r.Source.Name, feed.DetectType(r.Document.Body), "-", "unparseable: " + err.Error()})
			continue
		}
		rows = append(rows, []string{r.Source.Name, summary.Type, strconv.Itoa(summary.Items), summary.Title})
	}
	for _, f := range failures {
		rows = append(rows, []string{f.Source.Name, "-", "-", "error: " + f.Err.Error()})
	}
	return rows
}
