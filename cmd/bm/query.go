package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/config"
	"github.com/bmtool/bm/internal/index"
	"github.com/bmtool/bm/internal/storage"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run SQL against a mirror of the store",
	Long: `Run a read-only SQL query against an ephemeral SQLite mirror of the
store file. The mirror is rebuilt automatically when the store file has
changed; the text file stays the source of truth.

Schema: bookmarks(pos, key, target, tags), tags space-joined.

Examples:
  bm query "SELECT key, target FROM bookmarks WHERE tags LIKE '%dev%'"
  bm query "SELECT COUNT(*) AS n FROM bookmarks"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

// QueryResult is the response for the query command.
type QueryResult struct {
	Count int              `json:"count"`
	Rows  []map[string]any `json:"rows"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	home, cfg := mustLoadConfig()

	ix, err := index.Open(config.IndexPath(home))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer ix.Close()

	stale, err := ix.Stale(cfg.Store)
	if err != nil {
		exitWithError(ExitError, "checking index: %v", err)
	}
	if stale {
		bookmarks, err := storage.SearchFile(cfg.Store, storage.Query{})
		if err != nil {
			exitWithError(ExitDataError, "reading store: %v", err)
		}
		hash, err := index.SourceHash(cfg.Store)
		if err != nil {
			exitWithError(ExitError, "hashing store: %v", err)
		}
		if _, err := ix.Rebuild(bookmarks, hash); err != nil {
			exitWithError(ExitError, "rebuilding index: %v", err)
		}
	}

	rows, err := ix.Query(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		for _, row := range rows {
			fmt.Printf("%v\n", row)
		}
	} else {
		outputJSON(QueryResult{Count: len(rows), Rows: rows})
	}
	return nil
}
