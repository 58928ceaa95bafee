// Package format reformats changeset contents before they are written.
//
// A project-local formatter install is preferred. When none can be found the
// bundled formatter is used instead, so formatting never requires a node
// toolchain.
package format

import (
	"context"
	"errors"

	"github.com/jeffrom/changeset/config"
)

// ErrNotFound is returned when a formatter is not installed where it was
// looked for. It is the only resolution error that falls back to the bundled
// formatter.
var ErrNotFound = errors.New("format: formatter not found")

// ParserMarkdown is the parser used for changeset files.
const ParserMarkdown = "markdown"

// Options are passed to every Format call.
type Options struct {
	Parser string
	// Filepath is the path the formatted contents will be written to. Local
	// formatters use it to resolve their project configuration.
	Filepath   string
	ConfigPath string
	Settings   map[string]string
}

type Formatter interface {
	Name() string
	Format(ctx context.Context, src []byte, opts Options) ([]byte, error)
}

// Resolver selects a formatter for a working directory.
type Resolver interface {
	Resolve(ctx context.Context, wd string) (Formatter, error)
}

type ResolverFunc func(ctx context.Context, wd string) (Formatter, error)

func (f ResolverFunc) Resolve(ctx context.Context, wd string) (Formatter, error) {
	return f(ctx, wd)
}

// NewResolver returns the default resolver: a project-local formatter if one
// is installed under wd or any of its parents, otherwise Bundled. Disabled
// formatting resolves to Noop.
func NewResolver(cfg config.FormatterConfig) Resolver {
	return ResolverFunc(func(ctx context.Context, wd string) (Formatter, error) {
		if cfg.Disabled {
			return Noop{}, nil
		}
		local, err := FindPrettier(wd, cfg.Command)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Bundled{}, nil
			}
			return nil, err
		}
		return local, nil
	})
}

// Noop returns its input unchanged.
type Noop struct{}

func (Noop) Name() string { return "none" }

func (Noop) Format(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	return src, nil
}
