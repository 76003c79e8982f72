package main

import (
	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/storage"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every bookmark in store order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()

	bookmarks, err := storage.SearchFile(cfg.Store, storage.Query{})
	if err != nil {
		exitWithError(ExitError, "reading store: %v", err)
	}

	if humanOutput {
		printBookmarksHuman(bookmarks)
	} else {
		outputJSON(SearchResult{Count: len(bookmarks), Bookmarks: bookmarks})
	}
	return nil
}
