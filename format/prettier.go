package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"unicode"
)

var CommandContext = exec.CommandContext

const defaultCommand = "prettier"

// Prettier runs a project-local prettier install.
type Prettier struct {
	path string
	wd   string
}

// FindPrettier looks for node_modules/.bin/<command> in wd and each of its
// parents. A command containing a path separator is used as is, relative to
// wd.
func FindPrettier(wd, command string) (*Prettier, error) {
	if command == "" {
		command = defaultCommand
	}
	abswd, err := filepath.Abs(wd)
	if err != nil {
		return nil, err
	}

	if strings.ContainsRune(command, filepath.Separator) || strings.Contains(command, "/") {
		p := command
		if !filepath.IsAbs(p) {
			p = filepath.Join(abswd, p)
		}
		if err := checkExecutable(p); err != nil {
			return nil, err
		}
		return &Prettier{path: p, wd: abswd}, nil
	}

	for dir := abswd; ; {
		p := filepath.Join(dir, "node_modules", ".bin", command)
		err := checkExecutable(p)
		if err == nil {
			return &Prettier{path: p, wd: abswd}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, fmt.Errorf("%w: %s (searched from %s)", ErrNotFound, command, abswd)
}

func checkExecutable(p string) error {
	fi, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("format: %s is a directory", p)
	}
	return nil
}

func (p *Prettier) Name() string { return filepath.Base(p.path) }

// Path returns the resolved executable.
func (p *Prettier) Path() string { return p.path }

func (p *Prettier) Format(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	args := p.args(opts)
	cmd := CommandContext(ctx, p.path, args...)
	cmd.Dir = p.wd
	cmd.Stdin = bytes.NewReader(src)

	eb := &bytes.Buffer{}
	ob := &bytes.Buffer{}
	cmd.Stderr = eb
	cmd.Stdout = ob

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("format: %s failed: %s (%w)", p.Name(), strings.TrimSpace(eb.String()), err)
	}
	return ob.Bytes(), nil
}

func (p *Prettier) args(opts Options) []string {
	parser := opts.Parser
	if parser == "" {
		parser = ParserMarkdown
	}
	args := []string{"--parser", parser}
	if opts.Filepath != "" {
		args = append(args, "--stdin-filepath", opts.Filepath)
	}
	if opts.ConfigPath != "" {
		args = append(args, "--config", opts.ConfigPath)
	}

	keys := make([]string, 0, len(opts.Settings))
	for k := range opts.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		flag := kebab(k)
		switch v := opts.Settings[k]; v {
		case "true":
			args = append(args, "--"+flag)
		case "false":
			args = append(args, "--no-"+flag)
		default:
			args = append(args, "--"+flag, v)
		}
	}
	return args
}

// kebab converts camelCase config keys to command line flag names.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '_' {
			r = '-'
		}
		b.WriteRune(r)
	}
	return b.String()
}
