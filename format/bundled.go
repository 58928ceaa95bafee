package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Kunde21/markdownfmt/v3"
)

// Bundled formats markdown in process. The frontmatter block is kept as is.
type Bundled struct{}

func (Bundled) Name() string { return "bundled" }

func (Bundled) Format(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	if opts.Parser != "" && opts.Parser != ParserMarkdown {
		return nil, fmt.Errorf("format: bundled formatter does not support parser %q", opts.Parser)
	}

	fm, body, hasFrontmatter := SplitFrontmatter(src)
	body = bytes.TrimLeft(body, "\r\n")

	var formatted []byte
	if len(bytes.TrimSpace(body)) > 0 {
		out, err := markdownfmt.Process("", body)
		if err != nil {
			return nil, fmt.Errorf("format: bundled: %w", err)
		}
		formatted = append(bytes.TrimRight(out, " \t\r\n"), '\n')
	}

	if !hasFrontmatter {
		return formatted, nil
	}

	b := &bytes.Buffer{}
	b.WriteString(FrontmatterDelim + "\n")
	b.Write(fm)
	b.WriteString(FrontmatterDelim + "\n")
	if len(formatted) > 0 {
		b.WriteString("\n")
		b.Write(formatted)
	}
	return b.Bytes(), nil
}
