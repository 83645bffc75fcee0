package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"
)

type TableConfig struct {
	KindWidth    int
	StyleWidth   int
	SummaryWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		KindWidth:    12,
		StyleWidth:   12,
		SummaryWidth: 80,
	}
}

// Reporter prints document outlines as fixed-width text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) WithConfig(config TableConfig) *Reporter {
	return &Reporter{writer: c.writer, config: config}
}

func (c *Reporter) Handle(outline *Outline) error {
	funcMap := template.FuncMap{
		"formatRow": func(kind, style, summary string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s |",
				c.config.KindWidth, clip(kind, c.config.KindWidth),
				c.config.StyleWidth, clip(style, c.config.StyleWidth),
				c.config.SummaryWidth, clip(summary, c.config.SummaryWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.KindWidth+2),
				strings.Repeat("-", c.config.StyleWidth+2),
				strings.Repeat("-", c.config.SummaryWidth+2))
		},
	}

	tmpl := `
{{.Title}}
Forced pages: {{.Pages}}
{{range .Sections}}
=== {{.Title}} ===
{{separator}}
{{formatRow "Kind" "Style" "Summary"}}
{{separator}}
{{range .Blocks}}{{formatRow .Kind .Style .Summary}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("outline").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, outline)
}

// clip shortens s to width runes, marking the cut with "...".
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}
