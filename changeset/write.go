package changeset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeffrom/changeset/config"
	"github.com/jeffrom/changeset/format"
	"github.com/jeffrom/changeset/model"
)

// Writer writes changeset files.
type Writer struct {
	cfg      config.Config
	wd       string
	resolver format.Resolver
}

// NewWriter returns a Writer that resolves its formatter from wd, the
// project's working directory. An empty wd means the process working
// directory.
func NewWriter(cfg config.Config, wd string) *Writer {
	return &Writer{
		cfg:      cfg,
		wd:       wd,
		resolver: format.NewResolver(cfg.Formatter),
	}
}

// WithResolver replaces the formatter resolver.
func (w *Writer) WithResolver(r format.Resolver) *Writer {
	w.resolver = r
	return w
}

// Write formats rec and writes it to <dir>/<id>.md, returning the id. A
// relative dir is relative to the writer's working directory. dir must
// exist. An existing file with the same id is overwritten.
func (w *Writer) Write(ctx context.Context, rec *model.ChangeRecord, dir string) (string, error) {
	id, err := ID(rec)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(dir) && w.wd != "" {
		dir = filepath.Join(w.wd, dir)
	}
	p := filepath.Join(dir, id+".md")

	contents, err := w.format(ctx, Render(rec), p)
	if err != nil {
		return "", err
	}

	if w.cfg.Dryrun {
		w.cfg.Printf("would write %s (dryrun):\n%s", p, contents)
		return id, nil
	}

	w.cfg.Debugf("writing %s", p)
	if err := os.WriteFile(p, contents, 0644); err != nil {
		return "", err
	}
	return id, nil
}

func (w *Writer) format(ctx context.Context, src []byte, p string) ([]byte, error) {
	wd := w.wd
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	f, err := w.resolver.Resolve(ctx, wd)
	if err != nil {
		return nil, fmt.Errorf("changeset: resolve formatter: %w", err)
	}
	w.cfg.Debugf("formatting %s with %s", filepath.Base(p), f.Name())

	out, err := f.Format(ctx, src, format.Options{
		Parser:     format.ParserMarkdown,
		Filepath:   p,
		ConfigPath: w.cfg.Formatter.Config,
		Settings:   w.cfg.Formatter.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("changeset: format: %w", err)
	}
	return out, nil
}
