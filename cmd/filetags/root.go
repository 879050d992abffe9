package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the filetags command tree. Configuration comes from the
// environment (and .env outside production), see config.Load.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "filetags",
		Short: "Concurrent tag manager for a fixed set of files",
		Long: `filetags tracks a fixed set of files, lets operators group them under
named tags over HTTP, and reads or overwrites the content of every file
under a tag as one consistent operation.

Commands:
  filetags serve            Start the HTTP API
  filetags track            Record the files under FILES_ROOT in Postgres
  filetags hash-password    Print a bcrypt hash for ADMIN_PASSWORD_HASH`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newTrackCmd(), newHashPasswordCmd())
	return root
}
