// Package config holds runtime configuration for changeset.
package config

import (
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/imdario/mergo"
)

// DefaultDir is where changesets are stored, relative to the working
// directory.
const DefaultDir = ".changeset"

type Config struct {
	Verbose         bool            `json:"verbose,omitempty"`
	Debug           bool            `json:"debug,omitempty"`
	Dryrun          bool            `json:"dryrun,omitempty"`
	Quiet           bool            `json:"quiet,omitempty"`
	Dir             string          `json:"dir,omitempty"`
	Packages        []Package       `json:"packages,omitempty"`
	Policies        []string        `json:"policies,omitempty"`
	CustomPolicies  []Policy        `json:"custom_policies,omitempty"`
	SummaryTemplate string          `json:"summary_template,omitempty"`
	Formatter       FormatterConfig `json:"formatter,omitempty"`
	Term            TerminalIO      `json:"-"`
}

// Package is a releasable package. Version is optional and only used to
// preview the next version.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// FormatterConfig controls how changeset contents are reformatted before
// being written.
type FormatterConfig struct {
	Disabled bool   `json:"disabled,omitempty"`
	Command  string `json:"command,omitempty"`
	// Config is an explicit path to a formatter config file. Without it the
	// formatter resolves its own project-local configuration.
	Config  string            `json:"config,omitempty"`
	Options map[string]string `json:"options,omitempty"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("config: changeset dir is required")
	}

	seen := make(map[string]bool)
	for _, pkg := range c.Packages {
		if pkg.Name == "" {
			return errors.New("config: package name is required")
		}
		if seen[pkg.Name] {
			return fmt.Errorf("config: duplicate package %q", pkg.Name)
		}
		seen[pkg.Name] = true

		if pkg.Version != "" {
			if _, err := semver.ParseTolerant(pkg.Version); err != nil {
				return fmt.Errorf("config: package %q: invalid version %q: %w", pkg.Name, pkg.Version, err)
			}
		}
	}

	for _, name := range c.Policies {
		if c.findPolicy(name) == nil {
			return fmt.Errorf("config: unknown policy %q", name)
		}
	}
	for _, pol := range c.GetPolicies() {
		if err := pol.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Debug {
		return
	}
	c.Printf(msg, args...)
}

// Verbosef prints when verbose or debug output is enabled.
func (c Config) Verbosef(msg string, args ...interface{}) {
	if !c.Verbose && !c.Debug {
		return
	}
	c.Printf(msg, args...)
}

// GetPolicies returns the enabled policies in the order they were declared.
// Custom policies take precedence over builtin ones of the same name.
func (c Config) GetPolicies() []*Policy {
	var pols []*Policy
	for _, name := range c.Policies {
		if pol := c.findPolicy(name); pol != nil {
			pols = append(pols, pol)
		}
	}
	return pols
}

func (c Config) findPolicy(name string) *Policy {
	for _, pol := range c.CustomPolicies {
		if pol.Name == name {
			p := pol
			return &p
		}
	}
	return getBuiltinPolicy(name)
}

// PackageNames returns the names of all configured packages.
func (c Config) PackageNames() []string {
	names := make([]string, len(c.Packages))
	for i, pkg := range c.Packages {
		names[i] = pkg.Name
	}
	return names
}

// GetPackage returns the named package, or nil.
func (c Config) GetPackage(name string) *Package {
	for _, pkg := range c.Packages {
		if pkg.Name == name {
			p := pkg
			return &p
		}
	}
	return nil
}
