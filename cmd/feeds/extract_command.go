package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"feeds-app-api/api/dto/mappers"
	"feeds-app-api/core/classify"
	"feeds-app-api/core/domain"
	"feeds-app-api/core/extract"
	"feeds-app-api/core/interfaces"
	"feeds-app-api/infrastructure/captions/ytdlp"
	stdhttp "feeds-app-api/infrastructure/http/standard"
	"feeds-app-api/pkg/config"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var source string
	var title string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract <url>...",
		Short: "Extract readable text from article, video, post or episode URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dispatcher := newDispatcher(cfg, ctx.logger)

			reqs := make([]domain.ExtractionRequest, len(args))
			for i, u := range args {
				reqs[i] = domain.ExtractionRequest{URL: u, Source: source, Title: title}
			}

			stderr := cmd.ErrOrStderr()
			items := dispatcher.ExtractBatch(cmd.Context(), reqs, func(p extract.BatchProgress) {
				if len(reqs) > 1 {
					fmt.Fprintf(stderr, "[%d/%d] %s\n", p.Done, p.Total, p.Item.Request.URL)
				}
			})
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			if asJSON {
				return writeExtractJSON(cmd.OutOrStdout(), items)
			}
			writeExtractText(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Feed name the URLs came from, used as a classification hint")
	cmd.Flags().StringVar(&title, "title", "", "Title to use when the page has none")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

// newDispatcher wires the extraction strategies the same way the server does, with an in-process cache
func newDispatcher(cfg *config.Config, logger interfaces.Logger) *extract.Dispatcher {
	deps := interfaces.Dependencies{
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.Extraction.ArticleTimeout),
		Logger: logger,
	}

	rules := classify.DefaultRules()
	if len(cfg.Extraction.PodcastKeywords) > 0 {
		rules.PodcastSourceKeywords = cfg.Extraction.PodcastKeywords
	}

	return extract.NewDispatcher(deps, classify.New(rules), extract.NewStrategies(deps, extract.StrategyConfig{
		ArticleClient: stdhttp.NewBrowserClient(cfg.Extraction.ArticleTimeout, logger),
		Captions: ytdlp.New(ytdlp.Config{
			Binary:      cfg.Extraction.Captions.Binary,
			Languages:   cfg.Extraction.Captions.Languages,
			Timeout:     cfg.Extraction.Captions.Timeout,
			OutputLimit: cfg.Extraction.Captions.OutputLimit,
		}, logger),
		BlueskyAPI: cfg.Extraction.BlueskyAPI,
	}))
}

func writeExtractJSON(w io.Writer, items []extract.BatchItem) error {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := map[string]any{"url": item.Request.URL}
		if item.Err != nil {
			row["success"] = false
			row["error"] = item.Err.Error()
		} else {
			row["result"] = mappers.ToExtractResponse(item.Result)
		}
		out = append(out, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeExtractText(w io.Writer, items []extract.BatchItem) {
	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if item.Err != nil {
			fmt.Fprintf(w, "== %s\nerror: %v\n", item.Request.URL, item.Err)
			continue
		}

		o := item.Result.Summary()
		fmt.Fprintf(w, "== %s (%s)\n", item.Request.URL, item.Result.Kind())
		if o.Title != "" {
			fmt.Fprintf(w, "# %s\n\n", o.Title)
		}
		if !o.OK() {
			fmt.Fprintf(w, "unavailable: %s\n", o.Error)
			if p, ok := item.Result.(domain.PodcastResult); ok && p.FallbackURL != "" {
				fmt.Fprintf(w, "listen at: %s\n", p.FallbackURL)
			}
			continue
		}
		fmt.Fprintln(w, strings.TrimSpace(o.Text))
	}
}
