package commit

import (
	"bytes"
	"io"
	"strings"
	"text/template"
)

// DefaultSummaryTemplate renders the commit subject followed by the body,
// if any.
const DefaultSummaryTemplate = `{{ .Commit.Subject }}
{{- with trim .Commit.Body }}

{{ . }}
{{- end }}`

type SummaryData struct {
	Commit *AnalyzedCommit
}

var funcMap = template.FuncMap{
	"join":  strings.Join,
	"trim":  strings.TrimSpace,
	"lower": strings.ToLower,
}

// Summary renders changeset summaries from commits.
type Summary struct {
	t *template.Template
}

func NewSummary(s string) (*Summary, error) {
	name := "summary"
	if s != "" {
		name = "custom_summary"
	}
	tmpl := s
	if tmpl == "" {
		tmpl = DefaultSummaryTemplate
	}
	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return nil, err
	}
	return &Summary{t: t}, nil
}

func (s *Summary) Execute(w io.Writer, d SummaryData) error {
	return s.t.Execute(w, d)
}

func (s *Summary) ExecuteString(d SummaryData) (string, error) {
	b := &bytes.Buffer{}
	if err := s.Execute(b, d); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
