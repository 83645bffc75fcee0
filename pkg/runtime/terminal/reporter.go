package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

// StyleReporter lists the registered document styles.
type StyleReporter struct {
	writer io.Writer
}

func NewStyleReporter(writer io.Writer) *StyleReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &StyleReporter{writer: writer}
}

func (c *StyleReporter) Handle(registry style.Registry) error {
	styles := make([]style.Style, 0)
	for _, name := range registry.Names() {
		s, err := registry.Resolve(name)
		if err != nil {
			return err
		}
		styles = append(styles, s)
	}

	tmpl := `{{range .}}{{printf "%-12s" .Name}} {{.Font}}{{if .Bold}}-Bold{{end}} {{.Size}}/{{.Leading}}pt{{if .LeftIndent}} indent {{.LeftIndent}}{{end}}{{if eq .Wrap 1}} char-wrap{{end}}
{{end}}`
	t, err := template.New("styles").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, styles)
}
