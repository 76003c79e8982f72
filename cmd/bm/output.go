package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bmtool/bm/internal/bookmark"
)

// TargetMaxLen truncates targets in human-readable listings.
const TargetMaxLen = 60

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON)
// and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Key    string `json:"key,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// printBookmarksHuman prints bookmarks as aligned columns.
func printBookmarksHuman(bookmarks []bookmark.Bookmark) {
	keyWidth := 3
	for _, b := range bookmarks {
		if len(b.Key) > keyWidth {
			keyWidth = len(b.Key)
		}
	}
	for _, b := range bookmarks {
		line := fmt.Sprintf("%-*s  %s", keyWidth, b.Key, truncateString(b.Target, TargetMaxLen))
		if len(b.Tags) > 0 {
			line += "  [" + strings.Join(b.Tags, " ") + "]"
		}
		fmt.Println(line)
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
