package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/core"
	"github.com/aretw0/strata/pkg/mapping"
)

func newSetCmd(opts *cliOptions) *cobra.Command {
	var (
		unset  bool
		create bool
	)

	cmd := &cobra.Command{
		Use:   "set [id] [property] [value]",
		Short: "Write a document property",
		Long: `Write a property of a document. The value is parsed as a YAML scalar or
flow collection, so 30 is stored as a number and [a, b] as a list.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if unset {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name := args[0], args[1]

			var value any
			if !unset {
				parsed, err := parseValue(args[2])
				if err != nil {
					return err
				}
				value = parsed
			}

			repo, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := repo.Get(cmd.Context(), id)
			if errors.Is(err, core.ErrNotFound) && create {
				doc = core.Document{ID: id, Metadata: make(core.Metadata)}
			} else if err != nil {
				return err
			}

			acc, err := mapping.Instance().PropertyAccessor(documentEntity(id), doc.Metadata)
			if err != nil {
				return err
			}
			if err := acc.SetProperty(mapping.Property(name), value); err != nil {
				return err
			}
			doc.Metadata, err = mapping.BeanOf[core.Metadata](acc)
			if err != nil {
				return err
			}

			return repo.Save(cmd.Context(), doc)
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "Remove the property instead of writing it")
	cmd.Flags().BoolVar(&create, "create", false, "Create the document if it does not exist")
	return cmd
}

// parseValue decodes a command line argument as YAML. An empty argument is
// the empty string.
func parseValue(raw string) (any, error) {
	if raw == "" {
		return "", nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	if v == nil {
		return raw, nil
	}
	return v, nil
}
