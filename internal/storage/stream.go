// Package storage implements streaming operations over the bookmark file
// format: lookup, search, delete, import, and append. Every operation is a
// single forward pass over a line-delimited stream; no operation needs the
// whole file in memory.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmtool/bm/internal/bookmark"
)

// MaxLineLen is the maximum accepted line length in bytes, terminator
// included. A longer line is consumed up to its newline and classified as
// malformed rather than truncated.
const MaxLineLen = 64 * 1024

// ErrNotFound is returned by Lookup when no record matches the key.
var ErrNotFound = errors.New("bookmark not found")

// Query selects records during Search. Both conditions are raw-line
// predicates: they match against the undecoded text of each line, not
// against parsed fields, so a tag filter also matches text appearing in
// the key or target.
type Query struct {
	Text string   // substring required anywhere in the line; empty matches all
	Tags []string // any one of these as a substring; empty matches all
}

// matches reports whether the undecoded line satisfies q.
func (q Query) matches(line string) bool {
	if q.Text != "" && !strings.Contains(line, q.Text) {
		return false
	}
	if len(q.Tags) == 0 {
		return true
	}
	for _, tag := range q.Tags {
		if strings.Contains(line, tag) {
			return true
		}
	}
	return false
}

// lineReader yields \n-delimited lines with a hard length cap. Unlike
// bufio.Scanner it survives an overlong line: the content is discarded up
// to the next newline and the line is reported as too long, so tolerant
// callers can keep scanning.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line without its terminator. tooLong reports that
// the line exceeded MaxLineLen and its content was dropped. After the
// source is exhausted next returns io.EOF; a final line without a trailing
// newline is still returned first.
func (lr *lineReader) next() (line string, tooLong bool, err error) {
	var sb strings.Builder
	for {
		frag, err := lr.r.ReadSlice('\n')
		if len(frag) > 0 && !tooLong {
			sb.Write(frag)
			if sb.Len() > MaxLineLen {
				tooLong = true
				sb.Reset()
			}
		}
		switch {
		case err == nil:
			return strings.TrimSuffix(sb.String(), "\n"), tooLong, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if sb.Len() == 0 && !tooLong {
				return "", false, io.EOF
			}
			return sb.String(), tooLong, nil
		default:
			return "", false, err
		}
	}
}

// Lookup scans r in order and returns the first record whose decoded key
// equals key. Reaching the end of the stream without a match returns
// ErrNotFound. Lookup is strict: the first undecodable line, including an
// overlong one, aborts the scan with bookmark.ErrMalformed.
func Lookup(r io.Reader, key string) (bookmark.Bookmark, error) {
	lr := newLineReader(r)
	for {
		line, tooLong, err := lr.next()
		if errors.Is(err, io.EOF) {
			return bookmark.Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		if err != nil {
			return bookmark.Bookmark{}, fmt.Errorf("reading store: %w", err)
		}
		if tooLong {
			return bookmark.Bookmark{}, fmt.Errorf("%w: line exceeds %d bytes", bookmark.ErrMalformed, MaxLineLen)
		}
		if line == "" {
			continue
		}

		b, err := bookmark.Decode(line)
		if err != nil {
			return bookmark.Bookmark{}, err
		}
		if b.Key == key {
			return b, nil
		}
	}
}

// Search returns every well-formed record whose raw line satisfies q, in
// input order. Malformed and overlong lines are skipped; an empty source
// yields an empty result and no error.
func Search(r io.Reader, q Query) ([]bookmark.Bookmark, error) {
	lr := newLineReader(r)
	var out []bookmark.Bookmark
	for {
		line, tooLong, err := lr.next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading store: %w", err)
		}
		if tooLong || line == "" {
			continue
		}
		if !q.matches(line) {
			continue
		}

		b, err := bookmark.Decode(line)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
}

// Delete copies every line whose key prefix, the characters before the
// first separator, does not equal key from r to w, each terminated by a
// newline. All matching lines are omitted, duplicates included. The
// returned count is the number of lines removed.
//
// An overlong line aborts the rewrite: its content cannot be carried over,
// and dropping it silently would lose data.
func Delete(r io.Reader, w io.Writer, key string) (int, error) {
	lr := newLineReader(r)
	bw := bufio.NewWriter(w)
	removed := 0
	for {
		line, tooLong, err := lr.next()
		if errors.Is(err, io.EOF) {
			if err := bw.Flush(); err != nil {
				return removed, fmt.Errorf("writing store: %w", err)
			}
			return removed, nil
		}
		if err != nil {
			return removed, fmt.Errorf("reading store: %w", err)
		}
		if tooLong {
			return removed, fmt.Errorf("%w: line exceeds %d bytes", bookmark.ErrMalformed, MaxLineLen)
		}
		if line == "" {
			continue
		}

		prefix := line
		if i := strings.Index(line, bookmark.FieldSep); i >= 0 {
			prefix = line[:i]
		}
		if prefix == key {
			removed++
			continue
		}

		if _, err := bw.WriteString(line); err != nil {
			return removed, fmt.Errorf("writing store: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return removed, fmt.Errorf("writing store: %w", err)
		}
	}
}

// ImportResult reports the outcome of a bulk load.
type ImportResult struct {
	Bookmarks []bookmark.Bookmark
	Succeeded int
	Failed    int
}

// Import decodes every line of r. Lines that fail to decode, including
// overlong ones, increment Failed and are excluded; a single bad line
// never aborts the whole import.
func Import(r io.Reader) (ImportResult, error) {
	lr := newLineReader(r)
	var res ImportResult
	for {
		line, tooLong, err := lr.next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("reading import stream: %w", err)
		}
		if line == "" && !tooLong {
			continue
		}
		if tooLong {
			res.Failed++
			continue
		}

		b, err := bookmark.Decode(line)
		if err != nil {
			res.Failed++
			continue
		}
		res.Bookmarks = append(res.Bookmarks, b)
		res.Succeeded++
	}
}

// Append encodes b and writes its line to w. There is no uniqueness check;
// duplicate keys are allowed in storage.
func Append(w io.Writer, b bookmark.Bookmark) error {
	if _, err := io.WriteString(w, bookmark.Encode(b)); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Export serializes bookmarks through the codec to w, one line each.
func Export(w io.Writer, bookmarks []bookmark.Bookmark) error {
	bw := bufio.NewWriter(w)
	for _, b := range bookmarks {
		if _, err := bw.WriteString(bookmark.Encode(b)); err != nil {
			return fmt.Errorf("writing bookmark: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing bookmarks: %w", err)
	}
	return nil
}
