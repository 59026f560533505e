package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"feeds-app-api/core/domain"
)

func newSourcesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List subscribed feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sources []domain.Source
			err := ctx.withState(cmd.Context(), func(s *localState) error {
				var err error
				sources, err = s.sources(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			rows := make([][]string, len(sources))
			for i, src := range sources {
				rows[i] = []string{src.Name, src.URL, yesNo(src.Enabled)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "URL", "Enabled"}, rows, nil))
			return nil
		},
	}
}
