package changeset

import (
	"bytes"
	"strings"

	"github.com/jeffrom/changeset/format"
	"github.com/jeffrom/changeset/model"
)

var nameEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Render returns the unformatted contents of the changeset file for rec.
// Package names are always double quoted since they may contain characters
// that are not valid in plain YAML scalars, such as the "@" in scoped names.
func Render(rec *model.ChangeRecord) []byte {
	b := &bytes.Buffer{}
	b.WriteString(format.FrontmatterDelim + "\n")
	for _, rel := range rec.Releases {
		b.WriteString(`"`)
		b.WriteString(nameEscaper.Replace(rel.Name))
		b.WriteString(`": `)
		b.WriteString(string(rel.Type))
		b.WriteString("\n")
	}
	b.WriteString(format.FrontmatterDelim + "\n")
	b.WriteString("\n")
	b.WriteString(rec.Summary)
	b.WriteString("\n")
	return b.Bytes()
}
