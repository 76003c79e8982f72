package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bmtool/bm/internal/bookmark"
)

func openTestIndex(t *testing.T) (*Index, string) {
	t.Helper()
	dir := t.TempDir()
	ix, err := Open(filepath.Join(dir, "cache", "index.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix, dir
}

func TestRebuildAndQuery(t *testing.T) {
	ix, _ := openTestIndex(t)

	bookmarks := []bookmark.Bookmark{
		{Key: "gh", Target: "https://www.github.com", Tags: []string{"dev", "code"}},
		{Key: "hn", Target: "https://news.ycombinator.com", Tags: []string{"news"}},
	}
	n, err := ix.Rebuild(bookmarks, "hash1")
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Rebuild() = %d, want 2", n)
	}

	rows, err := ix.Query("SELECT key, target FROM bookmarks WHERE tags LIKE '%dev%' ORDER BY pos")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Query() returned %d rows, want 1", len(rows))
	}
	if rows[0]["key"] != "gh" {
		t.Errorf("Query() key = %v, want gh", rows[0]["key"])
	}
}

func TestRebuild_ReplacesPreviousContents(t *testing.T) {
	ix, _ := openTestIndex(t)

	if _, err := ix.Rebuild([]bookmark.Bookmark{{Key: "a", Target: "b"}}, "h1"); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if _, err := ix.Rebuild([]bookmark.Bookmark{{Key: "c", Target: "d"}}, "h2"); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	rows, err := ix.Query("SELECT key FROM bookmarks ORDER BY pos")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 1 || rows[0]["key"] != "c" {
		t.Errorf("rows after second rebuild = %v, want only c", rows)
	}
}

func TestStale(t *testing.T) {
	ix, dir := openTestIndex(t)
	storePath := filepath.Join(dir, "bookmarks.csv")
	if err := os.WriteFile(storePath, []byte("gh,https://www.github.com,\n"), 0644); err != nil {
		t.Fatalf("writing store file: %v", err)
	}

	// Never built: stale.
	stale, err := ix.Stale(storePath)
	if err != nil {
		t.Fatalf("Stale() error = %v", err)
	}
	if !stale {
		t.Error("Stale() = false for unbuilt index")
	}

	hash, err := SourceHash(storePath)
	if err != nil {
		t.Fatalf("SourceHash() error = %v", err)
	}
	if _, err := ix.Rebuild([]bookmark.Bookmark{{Key: "gh", Target: "https://www.github.com"}}, hash); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	stale, err = ix.Stale(storePath)
	if err != nil {
		t.Fatalf("Stale() error = %v", err)
	}
	if stale {
		t.Error("Stale() = true right after rebuild")
	}

	// Mutating the store file invalidates the mirror.
	if err := os.WriteFile(storePath, []byte("hn,https://news.ycombinator.com,\n"), 0644); err != nil {
		t.Fatalf("rewriting store file: %v", err)
	}
	stale, err = ix.Stale(storePath)
	if err != nil {
		t.Fatalf("Stale() error = %v", err)
	}
	if !stale {
		t.Error("Stale() = false after store file changed")
	}
}

func TestSourceHash_MissingFileHashesEmpty(t *testing.T) {
	dir := t.TempDir()

	missing, err := SourceHash(filepath.Join(dir, "absent.csv"))
	if err != nil {
		t.Fatalf("SourceHash() error = %v", err)
	}

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}
	emptyHash, err := SourceHash(empty)
	if err != nil {
		t.Fatalf("SourceHash() error = %v", err)
	}

	if missing != emptyHash {
		t.Errorf("missing file hash %q != empty file hash %q", missing, emptyHash)
	}
}
