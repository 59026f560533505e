package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"feeds-app-api/core/reconcile"
	stdhttp "feeds-app-api/infrastructure/http/standard"
	"feeds-app-api/infrastructure/http/syncremote"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Merge local read state with the server",
		Long:  "Pulls the server snapshot, merges it with the local one, pushes the result and stores it locally. The local state is left unchanged when the server cannot be reached.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if apiURL == "" {
				apiURL = cfg.Client.APIURL
			}

			remote := syncremote.New(stdhttp.New(stdhttp.Options{
				Timeout: cfg.Proxy.Timeout,
				Headers: map[string]string{"User-Agent": stdhttp.DefaultUserAgent},
				Retry:   stdhttp.RetryPolicy{MaxRetries: cfg.Proxy.MaxRetries, Backoff: cfg.Proxy.Backoff},
				Logger:  ctx.logger,
			}), apiURL)

			return ctx.withState(cmd.Context(), func(s *localState) error {
				snap, err := reconcile.NewClient(s.store, remote, ctx.logger).Sync(cmd.Context())
				if err != nil {
					return fmt.Errorf("sync with %s: %w", apiURL, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Synced with %s: %d read articles, %d sources, last visit %s\n",
					apiURL, len(snap.ReadArticles), len(snap.Sources), formatMillis(snap.LastVisit))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "Server to sync with (defaults to client.api_url)")
	return cmd
}
