// Package changeset writes and reads changeset files.
//
// A changeset is a markdown file with a YAML frontmatter block naming the
// packages to release and how to bump them, followed by a summary:
//
//	---
//	"left-pad": patch
//	"@scope/pkg": minor
//	---
//
//	fix: a fix
//
// Files are named after their identifier, <YYYYMMDDhhmmss>-<hash8>.md,
// derived from the commit date (UTC) and hash.
package changeset

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeffrom/changeset/model"
)

var (
	ErrMissingHash = errors.New("changeset: missing hash")
	ErrMissingDate = errors.New("changeset: missing date")
)

const idTimeFormat = "20060102150405"

// ID returns the identifier for rec. The same date and hash always produce the
// same identifier.
func ID(rec *model.ChangeRecord) (string, error) {
	if rec == nil {
		return "", errors.New("changeset: nil record")
	}
	return FormatID(rec.Date, rec.Hash)
}

func FormatID(date time.Time, hash string) (string, error) {
	if hash == "" {
		return "", ErrMissingHash
	}
	if date.IsZero() {
		return "", ErrMissingDate
	}
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return fmt.Sprintf("%s-%s", date.UTC().Format(idTimeFormat), hash), nil
}
