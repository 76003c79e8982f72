// Package bookmark defines the bookmark record and its line codec.
package bookmark

import (
	"errors"
	"fmt"
	"strings"
)

// Bookmark is one stored shortcut: a short key, a target (usually a URL),
// and optional tags.
type Bookmark struct {
	Key    string   `json:"key"`
	Target string   `json:"target"`
	Tags   []string `json:"tags,omitempty"`
}

// ErrMalformed indicates a line that cannot be decoded into a bookmark.
var ErrMalformed = errors.New("malformed bookmark line")

// FieldSep separates fields within a line. The format has no escaping, so
// keys, targets, and tags must not contain it.
const FieldSep = ","

// Encode serializes b as one line: "key,target,tag1,...,\n". The trailing
// separator before the newline is part of the format and is written even
// when there are no tags.
func Encode(b Bookmark) string {
	var sb strings.Builder
	sb.WriteString(b.Key)
	sb.WriteString(FieldSep)
	sb.WriteString(b.Target)
	sb.WriteString(FieldSep)
	for _, tag := range b.Tags {
		sb.WriteString(tag)
		sb.WriteString(FieldSep)
	}
	sb.WriteString("\n")
	return sb.String()
}

// Decode parses one line, without its trailing newline, into a Bookmark.
// Field 0 is the key and field 1 the target; the remaining non-empty
// fields are tags. Empty fields, including the one produced by the
// trailing separator, are dropped.
func Decode(line string) (Bookmark, error) {
	fields := strings.Split(line, FieldSep)
	if len(fields) < 2 {
		return Bookmark{}, fmt.Errorf("%w: missing target field in %q", ErrMalformed, line)
	}

	b := Bookmark{Key: fields[0], Target: fields[1]}
	for _, f := range fields[2:] {
		if f != "" {
			b.Tags = append(b.Tags, f)
		}
	}
	return b, nil
}
