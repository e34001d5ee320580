package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/mapping"
)

func newGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id] [property]",
		Short: "Print a document property",
		Long:  `Print a property of a document. Strings are printed as-is, other values as YAML.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name := args[0], args[1]

			repo, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := repo.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			acc, err := mapping.Instance().PropertyAccessor(documentEntity(id), doc.Metadata)
			if err != nil {
				return err
			}
			value, err := acc.GetProperty(mapping.Property(name))
			if err != nil {
				return err
			}
			if value == nil {
				return fmt.Errorf("property %q is not set on %s", name, id)
			}

			if s, ok := value.(string); ok {
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			out, err := yaml.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to encode value: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
