package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata/pkg/adapters/fs"
	"github.com/aretw0/strata/pkg/mapping"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	dir     string
	ext     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Read and edit document properties through the strata mapping layer",
		Long: `strata treats every document in a directory as a bean whose properties are
its metadata keys, and reads or writes them through a property accessor.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "d", ".", "Directory holding the documents")
	rootCmd.PersistentFlags().StringVar(&opts.ext, "ext", ".md", "Extension for document IDs without one")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newGetCmd(opts), newSetCmd(opts), newListCmd(opts))
	return rootCmd
}

// open returns the repository for --dir, which must exist.
func (o *cliOptions) open(ctx context.Context) (*fs.Repository, error) {
	repo := fs.NewRepository(fs.Config{
		Path:       o.dir,
		MustExist:  true,
		DefaultExt: o.ext,
		Logger:     slog.Default(),
	})
	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// documentEntity describes a document's metadata as an entity named after its ID.
func documentEntity(id string) mapping.PersistentEntity {
	return mapping.NewEntity(id, mapping.NewMetadataTypeInformation())
}
