package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeffrom/changeset/changeset"
	"github.com/jeffrom/changeset/model"
)

// Status is the pending release state of the project.
type Status struct {
	Plan *changeset.Plan
	// Current holds the configured version of each package that has one.
	Current map[string]semver.Version
}

func (r *Runner) Status(ctx context.Context) (*Status, error) {
	changesets, err := changeset.ReadDir(r.Dir())
	if err != nil {
		return nil, err
	}

	st := &Status{
		Plan:    changeset.NewPlan(changesets),
		Current: make(map[string]semver.Version),
	}
	for _, pkg := range r.cfg.Packages {
		if pkg.Version == "" {
			continue
		}
		v, err := semver.ParseTolerant(pkg.Version)
		if err != nil {
			return nil, fmt.Errorf("runner: package %q: %w", pkg.Name, err)
		}
		st.Current[pkg.Name] = v
	}
	return st, nil
}

var bumpOrder = []model.BumpKind{model.BumpMajor, model.BumpMinor, model.BumpPatch}

var title = cases.Title(language.English)

func (s *Status) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%d changeset(s)\n", s.Plan.Changesets))

	for _, kind := range bumpOrder {
		var pkgs []*changeset.PackagePlan
		for _, pp := range s.Plan.Packages {
			if pp.Type == kind {
				pkgs = append(pkgs, pp)
			}
		}
		if len(pkgs) == 0 {
			continue
		}

		bw.WriteString(fmt.Sprintf("\n%s:\n", title.String(string(kind))))
		for _, pp := range pkgs {
			version := ""
			if cur, ok := s.Current[pp.Name]; ok {
				next, _ := s.Plan.Next(pp.Name, cur)
				version = fmt.Sprintf("%s -> %s", cur, next)
			}
			bw.WriteString(fmt.Sprintf("  %20s\t%-20s\t%d changeset(s)\n", pp.Name, version, len(pp.Changesets)))
		}
	}
	return bw.Flush()
}
