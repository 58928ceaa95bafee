package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/jeffrom/changeset/config"
	"github.com/jeffrom/changeset/model"
	"github.com/jeffrom/changeset/runner"
	"github.com/jeffrom/changeset/vcs/gitcli"
)

// ConfigFile is looked for in the working directory and its parents.
const ConfigFile = "changeset.yaml"

var (
	// overridden by go build -X
	Version string
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var cfgFile string
	var dir string
	var packages []string
	var policies []string
	var noPolicy bool
	var bump string
	var summary string
	var summaryTemplate string
	var formatter string
	var noFormat bool
	var since string
	var hash string
	var date string
	var printStatus bool
	var check bool
	var printPolicies bool
	var printConfig bool
	var debugConfig string
	flags := pflag.NewFlagSet("changeset", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVarP(&cfg.Dryrun, "dry-run", "n", false, "Print changesets instead of writing them")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.StringVarP(&dir, "dir", "d", config.DefaultDir, "changeset `directory`")
	flags.StringArrayVarP(&packages, "package", "p", nil, "release package `name` (repeatable)")
	flags.StringVar(&bump, "bump", "", "override the bump `kind` (patch, minor, major)")
	flags.StringVar(&summary, "summary", "", "override the changeset summary `text` (- reads stdin)")
	flags.StringVar(&summaryTemplate, "summary-template", "", "go text/template for the summary `format`")
	flags.StringVar(&since, "since", "", "write changesets for every commit after `ref`")
	flags.StringVar(&hash, "hash", "", "write a changeset for `hash` without reading git")
	flags.StringVar(&date, "date", "", "RFC3339 `date` used with --hash (default now)")
	flags.StringVar(&formatter, "formatter", "", "project-local formatter `command` (default prettier)")
	flags.BoolVar(&noFormat, "no-format", false, "Don't reformat changesets")
	flags.StringArrayVar(&policies, "policy", []string{"conventional-lax", "lax"}, "declare commit policies by `name`")
	flags.BoolVarP(&noPolicy, "no-policy", "P", false, "disable all commit policies")
	flags.BoolVarP(&printStatus, "status", "s", false, "print pending changesets and exit")
	flags.BoolVarP(&check, "check", "C", false, "validate pending changesets and exit")
	flags.BoolVar(&printPolicies, "policies", false, "print enabled commit policies and exit")
	flags.BoolVarP(&cfg.Debug, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.BoolVar(&printConfig, "print-config", false, "Print default configuration and exit")
	flags.StringVar(&debugConfig, "debug-config", "", "Write configuration to `file` and exit")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	args := flags.Args()[1:]

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}
	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", string(b))
		return nil
	}

	fileCfg, err := readConfigYAML(cfgFile)
	if err != nil {
		return err
	}
	if fileCfg != nil {
		if err := mergo.Merge(&cfg, *fileCfg, mergo.WithOverride); err != nil {
			return err
		}
	}
	if flags.Changed("dir") {
		cfg.Dir = dir
	}
	if flags.Changed("policy") || (fileCfg == nil || fileCfg.Policies == nil) {
		cfg.Policies = policies
	}
	if noPolicy {
		cfg.Policies = nil
	}
	if flags.Changed("summary-template") {
		cfg.SummaryTemplate = summaryTemplate
	}
	if flags.Changed("formatter") {
		cfg.Formatter.Command = formatter
	}
	if noFormat {
		cfg.Formatter.Disabled = true
	}
	if cfg.Debug {
		b, err := json.MarshalIndent(cfg, "", "  ")
		die(err)
		cfg.Debugf("config: %s", string(b))
	}

	if debugConfig != "" {
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		if debugConfig == "-" {
			cfg.Printf("%s", b)
		} else {
			if err := os.WriteFile(debugConfig, b, 0644); err != nil {
				return err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if debugConfig != "" {
		return nil
	}
	// done setting up config

	ref := "HEAD"
	if len(args) > 0 {
		ref = args[0]
	}

	opts := runner.WriteOpts{Packages: packages}
	if bump != "" {
		kind, err := model.ParseBumpKind(bump)
		if err != nil {
			return err
		}
		opts.Bump = kind
	}
	if summary == "-" {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return errors.New("--summary -: stdin is a terminal")
		}
		b, err := io.ReadAll(cfg.Term.Stdin)
		if err != nil {
			return err
		}
		summary = strings.TrimSpace(string(b))
	}
	opts.Summary = summary

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	git := gitcli.New(cfg, wd)
	rnr, err := runner.New(cfg, git, wd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if printPolicies {
		for _, pol := range cfg.GetPolicies() {
			if err := pol.TextSummary(cfg.Term.Stdout); err != nil {
				return err
			}
			cfg.Printf("")
		}
		return nil
	}

	if printStatus {
		st, err := rnr.Status(ctx)
		if err != nil {
			return err
		}
		return st.TextSummary(cfg.Term.Stdout)
	}

	if check {
		changesets, err := rnr.Check(ctx)
		if err != nil {
			cf := runner.CheckFailure{}
			if errors.As(err, &cf) {
				if err := cf.WriteFailure(cfg.Term.Stdout); err != nil {
					cfg.Errorf("failed to write invalid changeset information: %v", err)
				}
			}
			return err
		}
		cfg.Printf("OK (%d changeset(s))", len(changesets))
		return nil
	}

	var ids []string
	switch {
	case hash != "":
		rec, err := recordFromFlags(cfg, opts, hash, date)
		if err != nil {
			return err
		}
		id, err := rnr.WriteRecord(ctx, rec)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	case since != "":
		ids, err = rnr.WriteSince(ctx, since, opts)
		if err != nil {
			return err
		}
	default:
		id, err := rnr.WriteCommit(ctx, ref, opts)
		if err != nil {
			return err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}

	printIDs(cfg, ids)
	return nil
}

func recordFromFlags(cfg config.Config, opts runner.WriteOpts, hash, date string) (*model.ChangeRecord, error) {
	if opts.Bump == "" {
		return nil, errors.New("--bump is required with --hash")
	}
	t := time.Now()
	if date != "" {
		var err error
		t, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("--date: %w", err)
		}
	}

	pkgs := opts.Packages
	if len(pkgs) == 0 {
		pkgs = cfg.PackageNames()
	}
	releases := make([]model.Release, len(pkgs))
	for i, name := range pkgs {
		releases[i] = model.Release{Name: name, Type: opts.Bump}
	}
	return &model.ChangeRecord{
		Summary:  opts.Summary,
		Releases: releases,
		Hash:     hash,
		Date:     t,
	}, nil
}

// printIDs prints bare ids in quiet mode so they can be piped elsewhere.
func printIDs(cfg config.Config, ids []string) {
	if !cfg.Quiet {
		cfg.Printf("wrote %d changeset(s)", len(ids))
		return
	}
	istty := isatty.IsTerminal(os.Stdout.Fd())
	for i, id := range ids {
		if istty || i < len(ids)-1 {
			fmt.Fprintln(cfg.Term.Stdout, id)
		} else {
			fmt.Fprint(cfg.Term.Stdout, id)
		}
	}
}

func die(err error) {
	if err != nil {
		panic(err)
	}
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s [ref]

Write changeset files from conventional commits.

FLAGS
%s

EXAMPLES

# write a changeset for HEAD, bumping every configured package
$ changeset

# write a changeset for a specific commit and package
$ changeset -p @scope/pkg 1a2b3c4d

# write changesets for every commit since the last release
$ changeset --since v1.2.3

# write a changeset without git
$ changeset --hash deadbeefdeadbeef --bump minor -p left-pad --summary "add a thing"

# show pending releases
$ changeset --status
`, os.Args[0], flags.FlagUsages())
}

func readConfigYAML(p string) (*config.Config, error) {
	if p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		candPath := filepath.Join(wd, ConfigFile)
		b, err := os.ReadFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				parent := filepath.Dir(wd)
				if parent == wd {
					break
				}
				wd = parent
				continue
			}
			return nil, err
		}

		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", candPath, err)
		}
		return cfg, nil
	}
	return nil, nil
}
