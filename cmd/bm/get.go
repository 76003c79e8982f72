package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/bookmark"
	"github.com/bmtool/bm/internal/storage"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Look up a bookmark by key",
	Long: `Look up a bookmark by exact key.

When duplicate keys exist, the first stored match wins.

Examples:
  bm get gh
  bm get gh --human`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()
	key := args[0]

	b, err := storage.LookupFile(cfg.Store, key)
	if err != nil {
		switch {
		case storage.IsNotFound(err):
			exitWithError(ExitNotFound, "bookmark %s: not found", key)
		case errors.Is(err, bookmark.ErrMalformed):
			exitWithError(ExitDataError, "bookmark %s: %v", key, err)
		default:
			exitWithError(ExitError, "bookmark %s: %v", key, err)
		}
	}

	if humanOutput {
		printBookmarksHuman([]bookmark.Bookmark{b})
	} else {
		outputJSON(b)
	}
	return nil
}
