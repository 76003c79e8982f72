package main

import (
	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/bookmark"
	"github.com/bmtool/bm/internal/storage"
)

var (
	searchTags  []string
	searchLimit int
)

func init() {
	searchCmd.Flags().StringArrayVarP(&searchTags, "tag", "t", nil, "Filter by tag substring (can be repeated, uses OR logic)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results to return (0 for all)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search bookmarks by text and tags",
	Long: `Search bookmarks by text and tags.

Both the text query and tag filters match as plain substrings anywhere
in the stored line, key and target included, not just the tag fields.
Results keep the order of the store file. With no arguments every
bookmark is returned.

Examples:
  bm search dev
  bm search --tag news --tag ci
  bm search git --tag dev --limit 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

// SearchResult is the response for the search command.
type SearchResult struct {
	Count     int                 `json:"count"`
	Bookmarks []bookmark.Bookmark `json:"bookmarks"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()

	q := storage.Query{Tags: searchTags}
	if len(args) > 0 {
		q.Text = args[0]
	}

	bookmarks, err := storage.SearchFile(cfg.Store, q)
	if err != nil {
		exitWithError(ExitError, "searching store: %v", err)
	}
	if searchLimit > 0 && len(bookmarks) > searchLimit {
		bookmarks = bookmarks[:searchLimit]
	}

	if humanOutput {
		printBookmarksHuman(bookmarks)
	} else {
		outputJSON(SearchResult{Count: len(bookmarks), Bookmarks: bookmarks})
	}
	return nil
}
