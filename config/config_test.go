package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	cfg := New(nil)
	if len(cfg.Policies) != 2 {
		t.Fatalf("expected %d policies, got %d", 2, len(cfg.Policies))
	}
	if cfg.Dir != DefaultDir {
		t.Fatalf("expected dir %q, got %q", DefaultDir, cfg.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestConfigOverrides(t *testing.T) {
	cfg := New(&Config{
		Dir:      "changes",
		Policies: []string{"lax"},
		Packages: []Package{{Name: "@scope/pkg", Version: "1.2.3"}},
	})
	if cfg.Dir != "changes" {
		t.Errorf("expected dir %q, got %q", "changes", cfg.Dir)
	}
	if len(cfg.Policies) != 1 || cfg.Policies[0] != "lax" {
		t.Errorf("expected policies [lax], got %v", cfg.Policies)
	}
	if cfg.Formatter.Command != "prettier" {
		t.Errorf("expected default formatter command to be kept, got %q", cfg.Formatter.Command)
	}
	if pkg := cfg.GetPackage("@scope/pkg"); pkg == nil || pkg.Version != "1.2.3" {
		t.Errorf("expected package @scope/pkg@1.2.3, got %+v", pkg)
	}
	if names := cfg.PackageNames(); len(names) != 1 || names[0] != "@scope/pkg" {
		t.Errorf("expected package names [@scope/pkg], got %v", names)
	}
}

func TestConfigValidate(t *testing.T) {
	tcs := []struct {
		name string
		cfg  *Config
	}{
		{
			name: "duplicate-package",
			cfg:  &Config{Packages: []Package{{Name: "a"}, {Name: "a"}}},
		},
		{
			name: "empty-package",
			cfg:  &Config{Packages: []Package{{Version: "1.0.0"}}},
		},
		{
			name: "invalid-version",
			cfg:  &Config{Packages: []Package{{Name: "a", Version: "one"}}},
		},
		{
			name: "unknown-policy",
			cfg:  &Config{Policies: []string{"nope"}},
		},
		{
			name: "invalid-release-type",
			cfg: &Config{
				Policies: []string{"custom"},
				CustomPolicies: []Policy{
					{Name: "custom", SubjectRE: `^x`, CommitTypes: map[string]string{"x": "HUGE"}},
				},
			},
		},
		{
			name: "invalid-regex",
			cfg: &Config{
				Policies:       []string{"custom"},
				CustomPolicies: []Policy{{Name: "custom", SubjectRE: `(`}},
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New(tc.cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected config to be invalid")
			} else {
				t.Log(err)
			}
		})
	}
}

func TestCustomPolicyOverridesBuiltin(t *testing.T) {
	cfg := New(&Config{
		Policies:       []string{"lax"},
		CustomPolicies: []Policy{{Name: "lax", FallbackReleaseType: "MINOR"}},
	})
	pols := cfg.GetPolicies()
	if len(pols) != 1 {
		t.Fatalf("expected 1 policy, got %d", len(pols))
	}
	if pols[0].FallbackReleaseType != "MINOR" {
		t.Errorf("expected custom fallback MINOR, got %q", pols[0].FallbackReleaseType)
	}
}

func TestPrintf(t *testing.T) {
	ob := &bytes.Buffer{}
	eb := &bytes.Buffer{}
	tio := TerminalIO{Stdout: ob, Stderr: eb}

	cfg := NewWithTerminalIO(nil, &tio)
	cfg.Printf("hello %s", "there")
	cfg.Debugf("not shown")
	cfg.Errorf("oops")
	if ob.String() != "hello there\n" {
		t.Errorf("expected %q, got %q", "hello there\n", ob.String())
	}
	if eb.String() != "oops\n" {
		t.Errorf("expected %q, got %q", "oops\n", eb.String())
	}

	ob.Reset()
	cfg.Quiet = true
	cfg.Printf("quiet")
	if ob.Len() != 0 {
		t.Errorf("expected no output when quiet, got %q", ob.String())
	}
}

func TestPolicyTextSummary(t *testing.T) {
	b := &bytes.Buffer{}
	pol := getBuiltinPolicy("conventional-lax")
	if err := pol.TextSummary(b); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "Name: conventional-lax\n") {
		t.Errorf("unexpected summary:\n%s", b.String())
	}
	if !strings.Contains(b.String(), "feat") {
		t.Errorf("expected commit types in summary:\n%s", b.String())
	}
}
