package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/bookmark"
	"github.com/bmtool/bm/internal/storage"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Remove bookmarks by key",
	Long: `Remove every bookmark whose key matches, rewriting the store file.

Unlike get, which returns the first match, rm removes all duplicates of
the key in one pass.

Examples:
  bm rm gh`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()
	key := args[0]

	removed, err := storage.DeleteFile(cfg.Store, key)
	if err != nil {
		if errors.Is(err, bookmark.ErrMalformed) {
			exitWithError(ExitDataError, "rewriting store: %v", err)
		}
		exitWithError(ExitError, "rewriting store: %v", err)
	}

	if humanOutput {
		fmt.Printf("Removed %d bookmark(s) for %s\n", removed, key)
	} else {
		outputJSON(StatusResponse{Status: "removed", Key: key, Count: removed})
	}
	return nil
}
