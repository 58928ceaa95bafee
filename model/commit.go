// Package model contains abstract data models.
package model

import "time"

type Commit struct {
	ID             string `json:"commit"`
	Author         string
	AuthorEmail    string
	AuthorDate     time.Time
	Committer      string
	CommitterEmail string
	CommitterDate  time.Time
	Subject        string
	Body           string
}

// ShortID returns the first 8 characters of the commit id, which is also the
// length used in changeset identifiers.
func (c *Commit) ShortID() string {
	return shortHash(c.ID)
}

// Date returns the committer date, falling back to the author date.
func (c *Commit) Date() time.Time {
	if !c.CommitterDate.IsZero() {
		return c.CommitterDate
	}
	return c.AuthorDate
}

func shortHash(s string) string {
	if len(s) < 8 {
		return s
	}
	return s[:8]
}
