// Package flow defines the units of document content (flowables) that the
// PDF writer positions on pages.
package flow

import (
	"strings"

	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

type Flowable interface {
	flowable()
}

// Span is a run of text inside a paragraph. A span with Break set is a
// forced line break and carries no text. A Preserve span keeps its
// whitespace as written and is only split where it overflows the line.
type Span struct {
	Text     string
	Bold     bool
	Link     string
	Break    bool
	Preserve bool
}

func Text(s string) Span { return Span{Text: s} }

func Bold(s string) Span { return Span{Text: s, Bold: true} }

func LinkTo(text, url string) Span { return Span{Text: text, Link: url} }

func LineBreak() Span { return Span{Break: true} }

func Verbatim(s string) Span { return Span{Text: s, Preserve: true} }

type Paragraph struct {
	Style style.Name
	Spans []Span
}

// Para is shorthand for a single-span paragraph.
func Para(name style.Name, text string) Paragraph {
	return Paragraph{Style: name, Spans: []Span{Text(text)}}
}

// PlainText joins the paragraph spans, rendering breaks as newlines.
func (p Paragraph) PlainText() string {
	var b strings.Builder
	for _, s := range p.Spans {
		if s.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Links returns the link targets in span order.
func (p Paragraph) Links() []string {
	var links []string
	for _, s := range p.Spans {
		if s.Link != "" {
			links = append(links, s.Link)
		}
	}
	return links
}

// Bullet is a paragraph prefixed with a bullet glyph and indented per its style.
type Bullet struct {
	Paragraph
}

type Spacer struct {
	Height float64
}

// Image is a raster embedded at a fixed size in layout units.
type Image struct {
	Name   string
	Format string
	Data   []byte
	Width  float64
	Height float64
}

type PageBreak struct{}

type Table struct {
	Widths       []float64
	Header       []Paragraph
	Rows         [][]Paragraph
	RepeatHeader bool
	Grid         Grid
}

// Grid describes the uniform cell decoration applied to every cell.
type Grid struct {
	LineWidth     float64
	LineColor     style.Color
	HeaderFill    style.Color
	PaddingLeft   float64
	PaddingRight  float64
	PaddingTop    float64
	PaddingBottom float64
	VAlignTop     bool
}

func (Paragraph) flowable() {}
func (Bullet) flowable()    {}
func (Spacer) flowable()    {}
func (Image) flowable()     {}
func (PageBreak) flowable() {}
func (Table) flowable()     {}

// Story is an ordered list of flowables.
type Story []Flowable

func (s *Story) Add(f ...Flowable) {
	*s = append(*s, f...)
}
