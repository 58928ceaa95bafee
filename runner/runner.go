// Package runner manages command-line execution
package runner

import (
	"context"
	"path/filepath"

	"github.com/jeffrom/changeset/changeset"
	"github.com/jeffrom/changeset/commit"
	"github.com/jeffrom/changeset/config"
	"github.com/jeffrom/changeset/format"
	"github.com/jeffrom/changeset/model"
	"github.com/jeffrom/changeset/vcs"
)

type Runner struct {
	cfg      config.Config
	vcs      vcs.Interface
	analyzer *commit.Analyzer
	writer   *changeset.Writer
	wd       string
}

// New returns a Runner operating on the project in wd. An empty wd is the
// process working directory.
func New(cfg config.Config, vcs vcs.Interface, wd string) (*Runner, error) {
	summary, err := commit.NewSummary(cfg.SummaryTemplate)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		vcs:      vcs,
		analyzer: commit.NewAnalyzer(cfg, summary),
		writer:   changeset.NewWriter(cfg, wd),
		wd:       wd,
	}, nil
}

// WithResolver replaces the formatter resolver used when writing changesets.
func (r *Runner) WithResolver(res format.Resolver) *Runner {
	r.writer.WithResolver(res)
	return r
}

// Dir returns the changeset directory.
func (r *Runner) Dir() string {
	if filepath.IsAbs(r.cfg.Dir) || r.wd == "" {
		return r.cfg.Dir
	}
	return filepath.Join(r.wd, r.cfg.Dir)
}

type WriteOpts struct {
	// Packages to release. Defaults to the configured packages.
	Packages []string
	// Bump overrides the bump kind derived from the commit.
	Bump model.BumpKind
	// Summary overrides the summary rendered from the commit.
	Summary string
}

// WriteCommit writes a changeset for a single commit. It returns an empty id
// if the commit's release type is SKIP.
func (r *Runner) WriteCommit(ctx context.Context, ref string, opts WriteOpts) (string, error) {
	c, err := r.vcs.ReadCommit(ctx, ref)
	if err != nil {
		return "", err
	}
	return r.writeCommit(ctx, c, opts)
}

// WriteSince writes a changeset for every commit after since, oldest first.
func (r *Runner) WriteSince(ctx context.Context, since string, opts WriteOpts) ([]string, error) {
	commits, err := r.vcs.ReadCommits(ctx, since+"..HEAD")
	if err != nil {
		return nil, err
	}
	r.cfg.Debugf("%d commits since %s", len(commits), since)

	var ids []string
	for i := len(commits) - 1; i >= 0; i-- {
		id, err := r.writeCommit(ctx, commits[i], opts)
		if err != nil {
			return ids, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// WriteRecord writes rec to the changeset directory as is.
func (r *Runner) WriteRecord(ctx context.Context, rec *model.ChangeRecord) (string, error) {
	return r.writer.Write(ctx, rec, r.cfg.Dir)
}

func (r *Runner) writeCommit(ctx context.Context, c *model.Commit, opts WriteOpts) (string, error) {
	ac, err := r.analyzer.Match(c, r.cfg.GetPolicies())
	if err != nil {
		return "", err
	}

	pkgs := opts.Packages
	if len(pkgs) == 0 {
		pkgs = r.cfg.PackageNames()
	}
	rec, ok, err := r.analyzer.Record(ac, pkgs, opts.Bump)
	if err != nil {
		return "", err
	}
	if !ok {
		r.cfg.Printf("%s: %s %q, skipping", c.ShortID(), ac.ReleaseType, c.Subject)
		return "", nil
	}
	if opts.Summary != "" {
		rec.Summary = opts.Summary
	}
	if len(rec.Releases) == 0 {
		r.cfg.Verbosef("%s: no packages configured, writing an empty changeset", c.ShortID())
	}

	id, err := r.WriteRecord(ctx, rec)
	if err != nil {
		return "", err
	}
	kind := opts.Bump
	if kind == "" {
		kind, _ = ac.ReleaseType.BumpKind()
	}
	r.cfg.Printf("-> %s:%s (%s)", c.ShortID(), id, kind)
	return id, nil
}
