package gitcli

import (
	"testing"
	"time"
)

const testLog = `_START_abcdef1234567890_SEP_Jane Doe_SEP_jane@example.com_SEP_2024-01-02 03:04:05 +0000_SEP_Jane Doe_SEP_jane@example.com_SEP_2024-01-02 04:04:05 +0100_SEP_feat: add a thing_SEP_first line
second line
_END_
_START_1234567890abcdef_SEP_John Doe_SEP_john@example.com_SEP_2024-01-01 00:00:00 +0000_SEP_John Doe_SEP_john@example.com_SEP_2024-01-01 00:00:00 +0000_SEP_fix: a fix_SEP__END_
`

func TestParseLog(t *testing.T) {
	commits, err := parseLog([]byte(testLog))
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}

	c := commits[0]
	if c.ID != "abcdef1234567890" {
		t.Errorf("expected id %q, got %q", "abcdef1234567890", c.ID)
	}
	if c.Subject != "feat: add a thing" {
		t.Errorf("expected subject %q, got %q", "feat: add a thing", c.Subject)
	}
	if c.Body != "first line\nsecond line\n" {
		t.Errorf("expected body %q, got %q", "first line\nsecond line\n", c.Body)
	}
	expectDate := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !c.CommitterDate.Equal(expectDate) {
		t.Errorf("expected committer date %s, got %s", expectDate, c.CommitterDate)
	}

	if commits[1].Body != "" {
		t.Errorf("expected empty body, got %q", commits[1].Body)
	}
}

func TestParseLogInvalid(t *testing.T) {
	if _, err := parseLog([]byte("not a git log line\n")); err == nil {
		t.Fatal("expected invalid log to fail")
	}
}

func TestArgsString(t *testing.T) {
	s := ArgsString([]string{"log", "-1", "--pretty=format:%s %b", "HEAD"})
	expect := `log -1 "--pretty=format:%s %b" HEAD`
	if s != expect {
		t.Errorf("expected %q, got %q", expect, s)
	}
}
