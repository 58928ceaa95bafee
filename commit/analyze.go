package commit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeffrom/changeset/config"
	"github.com/jeffrom/changeset/model"
)

var ErrNoPolicyMatch = errors.New("commit: no policy matched")

// AnalyzedCommit is a commit with the release information a policy derived
// from it.
type AnalyzedCommit struct {
	*model.Commit
	ReleaseType ReleaseType `json:"release_type"`
	Scope       string      `json:"scope,omitempty"`
	CommitType  string      `json:"commit_type,omitempty"`
	Policy      string      `json:"policy,omitempty"`
}

type AnalyzedCommits []*AnalyzedCommit

type Analyzer struct {
	cfg     config.Config
	summary *Summary
}

func NewAnalyzer(cfg config.Config, summary *Summary) *Analyzer {
	if summary == nil {
		summary, _ = NewSummary("")
	}
	return &Analyzer{
		cfg:     cfg,
		summary: summary,
	}
}

// Match runs the commit through policies in order. The first policy whose
// subject regexp matches decides the release type. If none match, the first
// policy with a fallback release type is used.
func (a *Analyzer) Match(c *model.Commit, policies []*config.Policy) (*AnalyzedCommit, error) {
	for _, pol := range policies {
		ac, ok := matchPolicy(c, pol)
		if ok {
			a.cfg.Debugf("%s matched policy %q: %s", shortID(c), pol.Name, ac.ReleaseType)
			return ac, nil
		}
	}
	for _, pol := range policies {
		if pol.FallbackReleaseType != "" {
			a.cfg.Debugf("%s: falling back to policy %q: %s", shortID(c), pol.Name, pol.FallbackReleaseType)
			return &AnalyzedCommit{
				Commit:      c,
				ReleaseType: ReleaseTypeFromString(pol.FallbackReleaseType),
				Policy:      pol.Name,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoPolicyMatch, c.Subject)
}

func matchPolicy(c *model.Commit, pol *config.Policy) (*AnalyzedCommit, bool) {
	re := pol.GetSubjectRE()
	if re == nil {
		return nil, false
	}
	m := re.FindStringSubmatch(c.Subject)
	if m == nil {
		return nil, false
	}

	ac := &AnalyzedCommit{Commit: c, Policy: pol.Name}
	breaking := false
	for i, name := range re.SubexpNames() {
		switch name {
		case "type":
			ac.CommitType = strings.ToLower(m[i])
		case "scope":
			ac.Scope = strings.TrimSuffix(strings.TrimPrefix(m[i], "("), ")")
		case "breaking":
			breaking = m[i] != ""
		}
	}

	if ac.CommitType != "" {
		rt, ok := pol.CommitTypes[ac.CommitType]
		switch {
		case ok:
			ac.ReleaseType = ReleaseTypeFromString(rt)
		case pol.FallbackReleaseType != "":
			ac.ReleaseType = ReleaseTypeFromString(pol.FallbackReleaseType)
		default:
			return nil, false
		}
	} else if pol.FallbackReleaseType != "" {
		ac.ReleaseType = ReleaseTypeFromString(pol.FallbackReleaseType)
	} else {
		ac.ReleaseType = ReleasePatch
	}

	if breaking || hasBreakingAnnotation(c.Body, pol) {
		ac.ReleaseType = ReleaseMajor
	}
	return ac, true
}

func hasBreakingAnnotation(body string, pol *config.Policy) bool {
	re := pol.GetBodyAnnotationRE()
	if re == nil || len(pol.BreakingChangeTypes) == 0 {
		return false
	}
	nameIdx := re.SubexpIndex("name")
	for _, line := range strings.Split(body, "\n") {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[0]
		if nameIdx >= 0 {
			name = m[nameIdx]
		}
		for _, bt := range pol.BreakingChangeTypes {
			if strings.TrimSpace(name) == bt {
				return true
			}
		}
	}
	return false
}

// Record builds the changeset record for an analyzed commit. Every package
// gets the commit's bump kind unless kind overrides it. ok is false when the
// commit should not produce a changeset.
func (a *Analyzer) Record(ac *AnalyzedCommit, packages []string, kind model.BumpKind) (*model.ChangeRecord, bool, error) {
	if kind == "" {
		k, ok := ac.ReleaseType.BumpKind()
		if !ok {
			return nil, false, nil
		}
		kind = k
	}

	summary, err := a.summary.ExecuteString(SummaryData{Commit: ac})
	if err != nil {
		return nil, false, err
	}

	releases := make([]model.Release, len(packages))
	for i, name := range packages {
		releases[i] = model.Release{Name: name, Type: kind}
	}

	return &model.ChangeRecord{
		Summary:  summary,
		Releases: releases,
		Hash:     ac.ID,
		Date:     ac.Date(),
	}, true, nil
}

func shortID(c *model.Commit) string {
	if c.ID == "" {
		return "<no id>"
	}
	return c.ShortID()
}
