package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/finopslab/sentinel/pkg/models/domain"
)

// Reporter outputs reports to the console in a compact text form, suitable
// for piping into other tools.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.ConsoleReport) error {
	tmpl := `
{{.Title}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}
Monthly Total: USD {{printf "%.2f" .TotalMonthly}}
Annual Total: USD {{printf "%.2f" .TotalAnnual}}

{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}
{{$key}}: {{$value}}
{{end}}
{{range .Details}}
- {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
  {{.Description}}
{{end}}
{{end}}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
