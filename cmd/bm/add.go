package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/bookmark"
	"github.com/bmtool/bm/internal/storage"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <key> <target> [tag...]",
	Short: "Add a bookmark",
	Long: `Add a bookmark mapping a key to a target URL, with optional tags.

Keys are not required to be unique: get returns the first match and rm
removes every match. Fields must not contain commas or newlines; the
store format has no escaping.

Examples:
  bm add gh https://www.github.com dev code
  bm add hn https://news.ycombinator.com news`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

// AddResult is the response for the add command.
type AddResult struct {
	Status   string            `json:"status"`
	Bookmark bookmark.Bookmark `json:"bookmark"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if strings.ContainsAny(arg, bookmark.FieldSep+"\n") {
			exitWithError(ExitDataError, "field %q contains a separator or newline", arg)
		}
	}

	_, cfg := mustLoadConfig()
	b := bookmark.Bookmark{Key: args[0], Target: args[1], Tags: args[2:]}

	if err := os.MkdirAll(filepath.Dir(cfg.Store), 0755); err != nil {
		exitWithError(ExitConfigError, "creating store directory: %v", err)
	}
	if err := storage.AppendFile(cfg.Store, b); err != nil {
		exitWithError(ExitError, "storing bookmark: %v", err)
	}

	if humanOutput {
		fmt.Printf("Added %s -> %s\n", b.Key, b.Target)
	} else {
		outputJSON(AddResult{Status: "added", Bookmark: b})
	}
	return nil
}
