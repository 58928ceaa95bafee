package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/jeffrom/changeset/changeset"
)

type CheckFailure struct {
	Failures []FailureEntry
}

type FailureEntry struct {
	path string
	err  error
}

func (cf CheckFailure) Error() string {
	return fmt.Sprintf("%d check(s) failed", len(cf.Failures))
}

func (cf CheckFailure) Is(other error) bool {
	_, ok := other.(CheckFailure)
	return ok
}

// WriteFailure writes failures grouped by file.
func (cf CheckFailure) WriteFailure(w io.Writer) error {
	if len(cf.Failures) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	var paths []string
	byPath := make(map[string][]FailureEntry)
	for _, failure := range cf.Failures {
		if _, ok := byPath[failure.path]; !ok {
			paths = append(paths, failure.path)
		}
		byPath[failure.path] = append(byPath[failure.path], failure)
	}

	for _, p := range paths {
		bw.WriteString(p)
		bw.WriteString("\n")
		for _, failure := range byPath[p] {
			bw.WriteString("  ")
			bw.WriteString(failure.err.Error())
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

// Check validates every changeset in the changeset directory. Packages are
// checked against the configured packages, if any are configured.
func (r *Runner) Check(ctx context.Context) ([]*changeset.Changeset, error) {
	paths, err := changeset.List(r.Dir())
	if err != nil {
		return nil, err
	}

	var failures []FailureEntry
	var changesets []*changeset.Changeset
	for _, p := range paths {
		cs, err := changeset.Read(p)
		if err != nil {
			failures = append(failures, FailureEntry{path: p, err: err})
			continue
		}
		failures = append(failures, r.checkChangeset(cs)...)
		changesets = append(changesets, cs)
	}

	if len(failures) > 0 {
		return nil, CheckFailure{Failures: failures}
	}
	return changesets, nil
}

func (r *Runner) checkChangeset(cs *changeset.Changeset) []FailureEntry {
	var failures []FailureEntry
	seen := make(map[string]bool)
	for _, rel := range cs.Releases {
		if seen[rel.Name] {
			failures = append(failures, FailureEntry{path: cs.Path, err: fmt.Errorf("package %q is listed more than once", rel.Name)})
		}
		seen[rel.Name] = true

		if len(r.cfg.Packages) > 0 && r.cfg.GetPackage(rel.Name) == nil {
			failures = append(failures, FailureEntry{path: cs.Path, err: fmt.Errorf("package %q is not configured", rel.Name)})
		}
	}
	return failures
}
