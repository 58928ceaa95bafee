package vcs

import (
	"context"
	"strings"
	"time"

	"github.com/jeffrom/changeset/model"
)

// Mock is an in-memory vcs.Interface. Commits are stored newest first, like
// git log returns them.
type Mock struct {
	t       time.Time
	commits []*model.Commit
	queries []string
}

func NewMock() *Mock {
	return &Mock{
		t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

// Queries returns the queries ReadCommits was called with.
func (m *Mock) Queries() []string { return m.queries }

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	m.queries = append(m.queries, query)
	since := ""
	if parts := strings.SplitN(query, "..", 2); len(parts) == 2 {
		since = parts[0]
	}
	if since == "" {
		return m.commits, nil
	}

	var commits []*model.Commit
	for _, c := range m.commits {
		if refMatches(c, since) {
			return commits, nil
		}
		commits = append(commits, c)
	}
	return nil, NotFoundError{Ref: since}
}

func (m *Mock) ReadCommit(ctx context.Context, ref string) (*model.Commit, error) {
	if ref == "HEAD" || ref == "" {
		if len(m.commits) == 0 {
			return nil, NotFoundError{Ref: "HEAD"}
		}
		return m.commits[0], nil
	}
	for _, c := range m.commits {
		if refMatches(c, ref) {
			return c, nil
		}
	}
	return nil, NotFoundError{Ref: ref}
}

func refMatches(c *model.Commit, ref string) bool {
	return ref != "" && strings.HasPrefix(c.ID, ref)
}
