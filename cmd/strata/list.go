package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(opts *cliOptions) *cobra.Command {
	var (
		pattern  string
		listJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			docs, err := repo.ListMatching(cmd.Context(), pattern)
			if err != nil {
				return err
			}

			if listJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(docs)
			}

			for _, doc := range docs {
				if title, ok := doc.Metadata["title"].(string); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", doc.ID, title)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), doc.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "**", "Glob matched against document IDs")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}
