package config

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Policy describes how a commit message maps to a release type.
type Policy struct {
	Name                  string            `json:"name"`
	SubjectRE             string            `json:"subject_regex,omitempty"`
	BodyAnnotationStartRE string            `json:"body_annotation_start_regex,omitempty"`
	BreakingChangeTypes   []string          `json:"breaking_change_annotations,omitempty"`
	CommitTypes           map[string]string `json:"commit_types,omitempty"`
	FallbackReleaseType   string            `json:"fallback_type,omitempty"`
	subjectRE             *regexp.Regexp
	bodyRE                *regexp.Regexp
}

var releaseTypeNames = []string{"SKIP", "PATCH", "MINOR", "MAJOR"}

func (p *Policy) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("config: policy name is required")
	}
	if p.SubjectRE != "" {
		if _, err := regexp.Compile(p.SubjectRE); err != nil {
			return fmt.Errorf("config: policy %q: invalid subject regex: %w", p.Name, err)
		}
	}
	if p.BodyAnnotationStartRE != "" {
		if _, err := regexp.Compile(p.BodyAnnotationStartRE); err != nil {
			return fmt.Errorf("config: policy %q: invalid body annotation regex: %w", p.Name, err)
		}
	}
	for commitType, releaseType := range p.CommitTypes {
		if !oneOf(releaseType, releaseTypeNames) {
			return fmt.Errorf("config: policy %q: commit type %q has invalid release type %q", p.Name, commitType, releaseType)
		}
	}
	if p.FallbackReleaseType != "" && !oneOf(p.FallbackReleaseType, releaseTypeNames) {
		return fmt.Errorf("config: policy %q: invalid fallback release type %q", p.Name, p.FallbackReleaseType)
	}
	return nil
}

func (p *Policy) GetSubjectRE() *regexp.Regexp {
	if p.SubjectRE == "" {
		return nil
	}
	if p.subjectRE == nil {
		p.subjectRE = regexp.MustCompile(p.SubjectRE)
	}
	return p.subjectRE
}

func (p *Policy) GetBodyAnnotationRE() *regexp.Regexp {
	if p.BodyAnnotationStartRE == "" {
		return nil
	}
	if p.bodyRE == nil {
		p.bodyRE = regexp.MustCompile(p.BodyAnnotationStartRE)
	}
	return p.bodyRE
}

func (p *Policy) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(fmt.Sprintf("Name: %s\n", p.Name))

	if p.SubjectRE != "" {
		bw.WriteString(fmt.Sprintf("Subject regexp: %s\n", p.SubjectRE))
	}
	if p.BodyAnnotationStartRE != "" {
		bw.WriteString(fmt.Sprintf("Body annotation regexp: %s\n", p.BodyAnnotationStartRE))
	}

	if len(p.BreakingChangeTypes) > 0 {
		bw.WriteString(fmt.Sprintf("Breaking change body annotations(s): %s\n", strings.Join(p.BreakingChangeTypes, ", ")))
	}

	if len(p.CommitTypes) > 0 {
		bw.WriteString("Commit types:\n")
		keys := make([]string, 0, len(p.CommitTypes))
		for k := range p.CommitTypes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			bw.WriteString(fmt.Sprintf("  %16s: %16s\n", k, p.CommitTypes[k]))
		}
	}

	if p.FallbackReleaseType != "" {
		bw.WriteString(fmt.Sprintf("Fallback release type: %s\n", p.FallbackReleaseType))
	}

	return bw.Flush()
}

var builtinPolicies = []Policy{
	{
		Name:                  "conventional-lax",
		SubjectRE:             `^(?P<type>[A-Za-z0-9]+)(?P<scope>\([^\)]+\))?(?P<breaking>!)?:\s+(?P<body>.+)$`,
		BodyAnnotationStartRE: `^(?P<name>[A-Z ]+): `,
		BreakingChangeTypes:   []string{"BREAKING CHANGE"},
		CommitTypes: map[string]string{
			"feat":        "MINOR",
			"fix":         "PATCH",
			"revert":      "PATCH",
			"cont":        "PATCH",
			"perf":        "PATCH",
			"improvement": "PATCH",
			"refactor":    "PATCH",
			"style":       "PATCH",
			"test":        "SKIP",
			"chore":       "SKIP",
			"docs":        "SKIP",
		},
	},
	{
		Name:                "lax",
		SubjectRE:           `^(?P<scope>[A-Za-z0-9_-]+): `,
		FallbackReleaseType: "PATCH",
	},
}

func getBuiltinPolicy(name string) *Policy {
	for _, pol := range builtinPolicies {
		if name == pol.Name {
			p := pol
			return &p
		}
	}
	return nil
}

func oneOf(s string, l []string) bool {
	for _, cand := range l {
		if s == cand {
			return true
		}
	}
	return false
}
