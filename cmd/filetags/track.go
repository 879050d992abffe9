package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"filetags/config"
	"filetags/internal/adapters/files"
	"filetags/internal/domain"
	"filetags/internal/repository/postgres"
)

type tracker interface {
	EnsureSchema(ctx context.Context) error
	Track(ctx context.Context, root string, paths []string) (int64, error)
}

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Record the files under FILES_ROOT in Postgres",
		Long: `track walks FILES_ROOT and records every regular file in the
tracked_files table, creating the schema if needed. serve reads this table
when FILE_SOURCE is postgres.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.DBUrl == "" {
				return errors.New("DATABASE_URL is required")
			}
			db, err := openDB(cfg.DBUrl)
			if err != nil {
				return err
			}
			defer db.Close()

			src := files.NewDirSource(files.NewRootedFs(cfg.FilesRoot))
			repo := postgres.NewTrackedFileRepository(db, cfg.FilesRoot)
			return track(cmd.Context(), repo, src, cfg.FilesRoot, cmd.OutOrStdout())
		},
	}
}

func track(ctx context.Context, repo tracker, src domain.FileSource, root string, out io.Writer) error {
	paths, err := src.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	n, err := repo.Track(ctx, root, paths)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "tracked %d new of %d files under %s\n", n, len(paths), root)
	return nil
}
