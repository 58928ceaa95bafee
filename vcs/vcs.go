// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"fmt"

	"github.com/jeffrom/changeset/model"
)

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

type Interface interface {
	// ReadCommits returns commits matching query, newest first.
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
	ReadCommit(ctx context.Context, ref string) (*model.Commit, error)
}
