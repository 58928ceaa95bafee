package changeset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeffrom/changeset/format"
	"github.com/jeffrom/changeset/model"
)

var ErrNoFrontmatter = errors.New("changeset: no frontmatter")

// Changeset is a changeset file read back from disk.
type Changeset struct {
	ID       string          `json:"id"`
	Path     string          `json:"path,omitempty"`
	Releases []model.Release `json:"releases"`
	Summary  string          `json:"summary"`
}

func Read(p string) (*Changeset, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	cs, err := Parse(id, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	cs.Path = p
	return cs, nil
}

// Parse parses changeset file contents. Releases keep the order they appear
// in the frontmatter.
func Parse(id string, b []byte) (*Changeset, error) {
	fm, body, ok := format.SplitFrontmatter(b)
	if !ok {
		return nil, ErrNoFrontmatter
	}

	releases, err := parseReleases(fm)
	if err != nil {
		return nil, err
	}
	return &Changeset{
		ID:       id,
		Releases: releases,
		Summary:  strings.TrimSpace(string(body)),
	}, nil
}

func parseReleases(fm []byte) ([]model.Release, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return nil, fmt.Errorf("changeset: invalid frontmatter: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errors.New("changeset: invalid frontmatter document")
	}
	m := doc.Content[0]
	if m.Kind == yaml.ScalarNode && m.Tag == "!!null" {
		return nil, nil
	}
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("changeset: frontmatter must be a mapping (line %d)", m.Line)
	}

	releases := make([]model.Release, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("changeset: line %d: expected \"name\": bump", key.Line)
		}
		kind, err := model.ParseBumpKind(val.Value)
		if err != nil {
			return nil, fmt.Errorf("changeset: line %d: package %q: %w", val.Line, key.Value, err)
		}
		releases = append(releases, model.Release{Name: key.Value, Type: kind})
	}
	return releases, nil
}

// List returns the paths of changeset files in dir, sorted by id. README.md
// is not a changeset. A missing dir has no changesets.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || filepath.Ext(name) != ".md" || strings.EqualFold(name, "README.md") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadDir reads every changeset in dir.
func ReadDir(dir string) ([]*Changeset, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	changesets := make([]*Changeset, 0, len(paths))
	for _, p := range paths {
		cs, err := Read(p)
		if err != nil {
			return nil, err
		}
		changesets = append(changesets, cs)
	}
	return changesets, nil
}
