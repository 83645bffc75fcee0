package export

import (
	"fmt"
	"strings"

	"github.com/Samayeeta/indicure-ey/pkg/document"
	"github.com/Samayeeta/indicure-ey/pkg/document/flow"
	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

// Outline is a text summary of a composed document.
type Outline struct {
	Title string
	// Pages counts the pages started by the story itself, not overflow.
	Pages    int
	Sections []Section
}

type Section struct {
	Title  string
	Blocks []Block
}

type Block struct {
	Kind    string
	Style   string
	Summary string
}

// NewOutline walks the document story. Every H1 paragraph opens a section;
// spacers are left out.
func NewOutline(doc *document.Document) *Outline {
	o := &Outline{Title: doc.Meta.Title, Pages: 1}
	cur := &Section{Title: "Header"}

	flush := func() {
		if len(cur.Blocks) > 0 || cur.Title != "Header" {
			o.Sections = append(o.Sections, *cur)
		}
	}

	for _, f := range doc.Story {
		switch t := f.(type) {
		case flow.Paragraph:
			if t.Style == style.H1 {
				flush()
				cur = &Section{Title: t.PlainText()}
				continue
			}
			cur.Blocks = append(cur.Blocks, Block{Kind: "paragraph", Style: string(t.Style), Summary: paragraphSummary(t)})
		case flow.Bullet:
			cur.Blocks = append(cur.Blocks, Block{Kind: "bullet", Style: string(t.Style), Summary: paragraphSummary(t.Paragraph)})
		case flow.Table:
			headers := make([]string, 0, len(t.Header))
			for _, h := range t.Header {
				headers = append(headers, h.PlainText())
			}
			cur.Blocks = append(cur.Blocks, Block{
				Kind:    "table",
				Summary: fmt.Sprintf("%d rows: %s", len(t.Rows), strings.Join(headers, ", ")),
			})
		case flow.Image:
			cur.Blocks = append(cur.Blocks, Block{
				Kind:    "image",
				Summary: fmt.Sprintf("%s (%s, %.0fx%.0f pt)", t.Name, t.Format, t.Width, t.Height),
			})
		case flow.PageBreak:
			o.Pages++
			cur.Blocks = append(cur.Blocks, Block{Kind: "page break"})
		}
	}
	flush()
	return o
}

func paragraphSummary(p flow.Paragraph) string {
	text := strings.Join(strings.Fields(p.PlainText()), " ")
	if links := p.Links(); len(links) > 0 {
		text += " <" + links[0] + ">"
	}
	return text
}
