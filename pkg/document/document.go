// Package document assembles an analysis report into a paginated PDF.
//
// Composition runs in a fixed section order. Missing or malformed report
// fields resolve to defaults through the normalizer, so the only failures
// are non-numeric chart data and serialization errors.
package document

import (
	"fmt"
	"strings"

	"github.com/Samayeeta/indicure-ey/pkg/document/chart"
	"github.com/Samayeeta/indicure-ey/pkg/document/flow"
	"github.com/Samayeeta/indicure-ey/pkg/document/normalize"
	"github.com/Samayeeta/indicure-ey/pkg/document/pdf"
	"github.com/Samayeeta/indicure-ey/pkg/document/style"
	"github.com/Samayeeta/indicure-ey/pkg/document/table"
	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

const (
	Title  = "IndiCure AI – Drug Repurposing Report"
	Author = "IndiCure AI"

	// The header always names the demo drug and indication, whatever the
	// report contains.
	Drug       = "Ranolazine"
	Indication = "HFpEF (India)"

	NoReferences = "No references available."
	AppendixNote = "This section contains unedited agent text for auditability and traceability."

	lvedvTitle   = "LVEDV Improvement (ml)"
	lvedvYLabel  = "Change in LVEDV (ml)"
	lvedvCaption = "LVEDV Improvement"
)

// Document is a composed but not yet serialized report.
type Document struct {
	Meta   pdf.Meta
	Story  flow.Story
	Charts []chart.Spec
}

type Composer struct {
	styles     style.Registry
	normalizer *normalize.Normalizer
	writer     *pdf.Writer
	canvas     chart.Options
}

func NewComposer(styles style.Registry, normalizer *normalize.Normalizer, writer *pdf.Writer) *Composer {
	return &Composer{
		styles:     styles,
		normalizer: normalizer,
		writer:     writer,
		canvas:     chart.DefaultOptions(),
	}
}

// DefaultComposer wires the builtin styles, defaults and writer.
func DefaultComposer() *Composer {
	styles := style.Default()
	return NewComposer(styles, normalize.Default(), pdf.NewWriter(styles))
}

// Build is the package-level entry point: report in, PDF bytes out.
func Build(report domain.Report) ([]byte, error) {
	return DefaultComposer().Build(report)
}

// Build composes and serializes report. It returns either a complete PDF or
// an error, never partial output.
func (c *Composer) Build(report domain.Report) ([]byte, error) {
	doc, err := c.Compose(report)
	if err != nil {
		return nil, err
	}

	out, err := c.writer.Write(doc.Meta, doc.Story)
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return out, nil
}

// Compose builds the story for report without mutating it.
func (c *Composer) Compose(report domain.Report) (*Document, error) {
	n := c.normalizer
	doc := &Document{Meta: pdf.Meta{Title: Title, Author: Author}}
	s := &doc.Story

	s.Add(
		flow.Para(style.Title, Title),
		flow.Paragraph{Style: style.Muted, Spans: []flow.Span{
			flow.Bold("Drug:"), flow.Text(" " + Drug + "   "),
			flow.Bold("Proposed Indication:"), flow.Text(" " + Indication + "   "),
			flow.Bold("Analysis Mode:"), flow.Text(" " + n.Mode(report)),
		}},
		flow.Spacer{Height: 12},
	)

	s.Add(
		flow.Para(style.H1, "Executive Summary"),
		flow.Para(style.Normal, n.Scalar(report, domain.FieldExecutiveSummary)),
		flow.Spacer{Height: 10},
	)

	dashboard, err := table.SignalDashboard(n.Records(report, domain.FieldSignalDashboard), c.styles)
	if err != nil {
		return nil, fmt.Errorf("failed to build signal dashboard: %w", err)
	}
	s.Add(flow.Para(style.H1, "Signal Dashboard"), dashboard, flow.Spacer{Height: 14})

	outcomes, err := table.ClinicalOutcomes(n.Records(report, domain.FieldClinicalOutcomes), c.styles)
	if err != nil {
		return nil, fmt.Errorf("failed to build clinical outcomes: %w", err)
	}
	s.Add(flow.Para(style.H1, "Clinical Evidence (Key Outcomes)"), outcomes, flow.Spacer{Height: 14})

	spec, err := chart.FromSeries(lvedvTitle, lvedvYLabel, n.Series(report, normalize.LVEDVSeries))
	if err != nil {
		return nil, fmt.Errorf("failed to read chart %s: %w", normalize.LVEDVSeries, err)
	}
	img, err := c.renderChart(spec)
	if err != nil {
		return nil, err
	}
	doc.Charts = append(doc.Charts, spec)
	s.Add(
		flow.Para(style.H1, "Key Charts"),
		flow.Paragraph{Style: style.Normal, Spans: []flow.Span{flow.Bold("Figure 1."), flow.Text(" " + lvedvCaption)}},
		flow.Spacer{Height: 6},
		flow.Image{Name: normalize.LVEDVSeries, Format: "PNG", Data: img, Width: chart.EmbedWidth, Height: chart.EmbedHeight},
		flow.Spacer{Height: 14},
	)

	s.Add(flow.Para(style.H1, "Feasibility"))
	s.Add(bullets(n.Strings(report, domain.FieldFeasibility))...)
	s.Add(flow.Spacer{Height: 10})

	s.Add(
		flow.Para(style.H1, "Recommendation"),
		flow.Para(style.Normal, n.Scalar(report, domain.FieldRecommendation)),
		flow.Spacer{Height: 10},
		flow.Para(style.H1, "Conclusion"),
		flow.Para(style.Normal, n.Scalar(report, domain.FieldConclusion)),
		flow.Spacer{Height: 10},
	)

	s.Add(flow.Para(style.H1, "Limitations and Assumptions"))
	s.Add(bullets(n.Strings(report, domain.FieldLimitations))...)
	s.Add(flow.Spacer{Height: 12})

	s.Add(flow.Para(style.H1, "Key References"))
	s.Add(references(n.References(report, domain.FieldReferences))...)
	s.Add(flow.Spacer{Height: 10})

	if raw, ok := n.Appendix(report); ok {
		s.Add(
			flow.PageBreak{},
			flow.Para(style.H1, "Appendix: Raw Agent Output"),
			flow.Para(style.Muted, AppendixNote),
			flow.Spacer{Height: 8},
			flow.Paragraph{Style: style.Cell, Spans: lineSpans(raw)},
		)
	}

	return doc, nil
}

func (c *Composer) renderChart(spec chart.Spec) ([]byte, error) {
	canvas, err := chart.NewCanvas(c.canvas)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire chart canvas: %w", err)
	}
	defer canvas.Release()

	img, err := chart.RenderBar(canvas, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return img, nil
}

func bullets(items []string) []flow.Flowable {
	out := make([]flow.Flowable, 0, len(items))
	for _, item := range items {
		out = append(out, flow.Bullet{Paragraph: flow.Para(style.Bullet, item)})
	}
	return out
}

func references(refs []normalize.Reference) []flow.Flowable {
	if len(refs) == 0 {
		return []flow.Flowable{flow.Para(style.Normal, NoReferences)}
	}

	out := make([]flow.Flowable, 0, len(refs))
	for _, r := range refs {
		switch r.Kind {
		case normalize.ReferenceLinked:
			out = append(out, flow.Paragraph{Style: style.Link, Spans: []flow.Span{
				flow.Text("• "), flow.LinkTo(r.Title, r.URL),
			}})
		default:
			out = append(out, flow.Para(style.Normal, "• "+r.Title))
		}
	}
	return out
}

// lineSpans keeps the raw text as is and turns each newline into an explicit
// line break.
func lineSpans(raw string) []flow.Span {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	parts := strings.Split(raw, "\n")
	spans := make([]flow.Span, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			spans = append(spans, flow.LineBreak())
		}
		if p != "" {
			spans = append(spans, flow.Verbatim(p))
		}
	}
	return spans
}
