package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeffrom/changeset/changeset"
	"github.com/jeffrom/changeset/config"
	"github.com/jeffrom/changeset/model"
	"github.com/jeffrom/changeset/vcs"
)

var testDate = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

var (
	initialCommit = &model.Commit{ID: "0000000011111111", Subject: "initial commit", CommitterDate: testDate.Add(-time.Hour)}
	fixCommit     = &model.Commit{ID: "abcdef1234567890", Subject: "fix: cool fix", CommitterDate: testDate}
	featCommit    = &model.Commit{ID: "1234567890abcdef", Subject: "feat: cool feature", Body: "more info", CommitterDate: testDate.Add(time.Minute)}
	choreCommit   = &model.Commit{ID: "fedcba0987654321", Subject: "chore: tidy up", CommitterDate: testDate.Add(2 * time.Minute)}
)

func TestWriteCommit(t *testing.T) {
	dir := newProject(t)
	cfg, ob := newTestConfig(&config.Config{Packages: []config.Package{{Name: "left-pad"}, {Name: "@scope/pkg"}}})
	m := vcs.NewMock().SetCommits(fixCommit, initialCommit)
	rnr := newTestRunner(t, cfg, m, dir)

	id, err := rnr.WriteCommit(context.Background(), "HEAD", WriteOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if id != "20240102030405-abcdef12" {
		t.Fatalf("expected id %q, got %q", "20240102030405-abcdef12", id)
	}
	if !strings.Contains(ob.String(), id) {
		t.Errorf("expected id in output, got %q", ob.String())
	}

	cs, err := changeset.Read(filepath.Join(rnr.Dir(), id+".md"))
	if err != nil {
		t.Fatal(err)
	}
	expect := []model.Release{
		{Name: "left-pad", Type: model.BumpPatch},
		{Name: "@scope/pkg", Type: model.BumpPatch},
	}
	if len(cs.Releases) != len(expect) {
		t.Fatalf("expected %d releases, got %d", len(expect), len(cs.Releases))
	}
	for i, rel := range expect {
		if cs.Releases[i] != rel {
			t.Errorf("release %d: expected %+v, got %+v", i, rel, cs.Releases[i])
		}
	}
	if cs.Summary != "fix: cool fix" {
		t.Errorf("expected summary %q, got %q", "fix: cool fix", cs.Summary)
	}
}

func TestWriteCommitOverrides(t *testing.T) {
	dir := newProject(t)
	cfg, _ := newTestConfig(nil)
	m := vcs.NewMock().SetCommits(fixCommit)
	rnr := newTestRunner(t, cfg, m, dir)

	id, err := rnr.WriteCommit(context.Background(), "abcdef12", WriteOpts{
		Packages: []string{"only"},
		Bump:     model.BumpMajor,
		Summary:  "a custom summary",
	})
	if err != nil {
		t.Fatal(err)
	}
	cs, err := changeset.Read(filepath.Join(rnr.Dir(), id+".md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cs.Releases) != 1 || cs.Releases[0] != (model.Release{Name: "only", Type: model.BumpMajor}) {
		t.Errorf("expected only: major, got %+v", cs.Releases)
	}
	if cs.Summary != "a custom summary" {
		t.Errorf("expected custom summary, got %q", cs.Summary)
	}
}

func TestWriteCommitSkip(t *testing.T) {
	dir := newProject(t)
	cfg, ob := newTestConfig(&config.Config{Packages: []config.Package{{Name: "pkg"}}})
	m := vcs.NewMock().SetCommits(choreCommit)
	rnr := newTestRunner(t, cfg, m, dir)

	id, err := rnr.WriteCommit(context.Background(), "HEAD", WriteOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if id != "" {
		t.Fatalf("expected no changeset, got %q", id)
	}
	if !strings.Contains(ob.String(), "skipping") {
		t.Errorf("expected skip message, got %q", ob.String())
	}
}

func TestWriteCommitNotFound(t *testing.T) {
	cfg, _ := newTestConfig(nil)
	rnr := newTestRunner(t, cfg, vcs.NewMock(), newProject(t))

	_, err := rnr.WriteCommit(context.Background(), "HEAD", WriteOpts{})
	nf := vcs.NotFoundError{}
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestWriteSince(t *testing.T) {
	dir := newProject(t)
	cfg, _ := newTestConfig(&config.Config{Packages: []config.Package{{Name: "pkg", Version: "1.2.3"}}})
	m := vcs.NewMock().SetCommits(choreCommit, featCommit, fixCommit, initialCommit)
	rnr := newTestRunner(t, cfg, m, dir)

	ids, err := rnr.WriteSince(context.Background(), initialCommit.ID[:8], WriteOpts{})
	if err != nil {
		t.Fatal(err)
	}
	expect := []string{"20240102030405-abcdef12", "20240102030505-12345678"}
	if len(ids) != len(expect) {
		t.Fatalf("expected ids %v, got %v", expect, ids)
	}
	for i := range expect {
		if ids[i] != expect[i] {
			t.Errorf("expected id %q, got %q", expect[i], ids[i])
		}
	}
	if q := m.Queries(); len(q) != 1 || q[0] != "00000000..HEAD" {
		t.Errorf("expected query 00000000..HEAD, got %v", q)
	}

	st, err := rnr.Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Plan.Changesets != 2 {
		t.Errorf("expected 2 changesets, got %d", st.Plan.Changesets)
	}
	pp := st.Plan.Get("pkg")
	if pp == nil || pp.Type != model.BumpMinor {
		t.Fatalf("expected pkg: minor, got %+v", pp)
	}

	b := &bytes.Buffer{}
	if err := st.TextSummary(b); err != nil {
		t.Fatal(err)
	}
	t.Logf("status output:\n%s", b.String())
	res := b.String()
	for _, expect := range []string{"2 changeset(s)", "Minor:", "pkg", "1.2.3 -> 1.3.0"} {
		if !strings.Contains(res, expect) {
			t.Errorf("expected %q in status output", expect)
		}
	}
}

func TestStatusEmpty(t *testing.T) {
	cfg, _ := newTestConfig(&config.Config{Dir: "nope"})
	rnr := newTestRunner(t, cfg, vcs.NewMock(), t.TempDir())

	st, err := rnr.Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b := &bytes.Buffer{}
	if err := st.TextSummary(b); err != nil {
		t.Fatal(err)
	}
	if b.String() != "0 changeset(s)\n" {
		t.Errorf("expected empty status, got %q", b.String())
	}
}

func TestCheck(t *testing.T) {
	dir := newProject(t)
	cfg, _ := newTestConfig(&config.Config{Packages: []config.Package{{Name: "a"}}})
	rnr := newTestRunner(t, cfg, vcs.NewMock(), dir)

	writeChangeset(t, rnr.Dir(), "20240101000000-aaaaaaaa", "---\n\"a\": patch\n---\n\nfine\n")
	changesets, err := rnr.Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(changesets) != 1 {
		t.Fatalf("expected 1 changeset, got %d", len(changesets))
	}

	writeChangeset(t, rnr.Dir(), "20240102000000-bbbbbbbb", "---\n\"b\": patch\n---\n\nunknown package\n")
	writeChangeset(t, rnr.Dir(), "20240103000000-cccccccc", "---\n\"a\": enormous\n---\n\nbad bump\n")
	_, err = rnr.Check(context.Background())
	if err == nil {
		t.Fatal("expected check to fail")
	}
	cf := CheckFailure{}
	if !errors.As(err, &cf) {
		t.Fatalf("expected CheckFailure, got %v", err)
	}
	if len(cf.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d: %v", len(cf.Failures), cf.Failures)
	}
	if !errors.Is(err, CheckFailure{}) {
		t.Error("expected errors.Is to match CheckFailure")
	}

	b := &bytes.Buffer{}
	if err := cf.WriteFailure(b); err != nil {
		t.Fatal(err)
	}
	res := b.String()
	if !strings.Contains(res, "20240102000000-bbbbbbbb.md\n  package \"b\" is not configured\n") {
		t.Errorf("unexpected failure output:\n%s", res)
	}
	if !strings.Contains(res, "20240103000000-cccccccc.md\n") {
		t.Errorf("expected invalid bump failure in output:\n%s", res)
	}
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, config.DefaultDir), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func writeChangeset(t *testing.T, dir, id, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, id+".md"), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestConfig(overrides *config.Config) (config.Config, *bytes.Buffer) {
	ob := &bytes.Buffer{}
	tio := config.TerminalIO{Stdout: ob, Stderr: ob}
	return config.NewWithTerminalIO(overrides, &tio), ob
}

func newTestRunner(t *testing.T, cfg config.Config, m vcs.Interface, wd string) *Runner {
	t.Helper()
	rnr, err := New(cfg, m, wd)
	if err != nil {
		t.Fatal(err)
	}
	return rnr
}
