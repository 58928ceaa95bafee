package changeset

import (
	"github.com/blang/semver/v4"

	"github.com/jeffrom/changeset/commit"
	"github.com/jeffrom/changeset/model"
)

// PackagePlan is the pending release of a single package.
type PackagePlan struct {
	Name       string         `json:"name"`
	Type       model.BumpKind `json:"type"`
	Changesets []string       `json:"changesets"`
}

// Plan aggregates pending changesets into one release per package. Each
// package gets the largest bump any changeset asks for.
type Plan struct {
	Packages   []*PackagePlan `json:"packages"`
	Changesets int            `json:"changesets"`
}

func NewPlan(changesets []*Changeset) *Plan {
	p := &Plan{Changesets: len(changesets)}
	for _, cs := range changesets {
		for _, rel := range cs.Releases {
			pp := p.Get(rel.Name)
			if pp == nil {
				pp = &PackagePlan{Name: rel.Name}
				p.Packages = append(p.Packages, pp)
			}
			if rel.Type.Rank() > pp.Type.Rank() {
				pp.Type = rel.Type
			}
			if !hasString(pp.Changesets, cs.ID) {
				pp.Changesets = append(pp.Changesets, cs.ID)
			}
		}
	}
	return p
}

func (p *Plan) Get(name string) *PackagePlan {
	for _, pp := range p.Packages {
		if pp.Name == name {
			return pp
		}
	}
	return nil
}

// Next returns the version the named package would be released as. ok is
// false if nothing is pending for it.
func (p *Plan) Next(name string, current semver.Version) (semver.Version, bool) {
	pp := p.Get(name)
	if pp == nil {
		return current, false
	}
	return commit.Bump(current, pp.Type), true
}

func hasString(l []string, s string) bool {
	for _, cand := range l {
		if cand == s {
			return true
		}
	}
	return false
}
