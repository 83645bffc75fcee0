// Package pdf lays a flow.Story out on A4 pages and serializes it with fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Samayeeta/indicure-ey/pkg/document/flow"
	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

const (
	// Margin is applied on all four sides, in points.
	Margin = 40.0
)

// Epoch is stamped as creation and modification date so identical stories
// serialize to identical bytes.
var Epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Meta is the document information dictionary.
type Meta struct {
	Title   string
	Author  string
	Subject string
	Created time.Time
}

type Writer struct {
	styles   style.Registry
	compress bool
}

func NewWriter(styles style.Registry) *Writer {
	return &Writer{styles: styles, compress: true}
}

// WithoutCompression returns a copy of w that writes plain content streams.
func (w *Writer) WithoutCompression() *Writer {
	c := *w
	c.compress = false
	return &c
}

// Write lays out story and returns the finished PDF. On error no bytes are
// returned.
func (w *Writer) Write(meta Meta, story flow.Story) ([]byte, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "A4",
	})

	created := meta.Created
	if created.IsZero() {
		created = Epoch
	}
	doc.SetCreationDate(created)
	doc.SetModificationDate(created)
	doc.SetCatalogSort(true)
	doc.SetCompression(w.compress)
	doc.SetTitle(meta.Title, true)
	doc.SetAuthor(meta.Author, true)
	if meta.Subject != "" {
		doc.SetSubject(meta.Subject, true)
	}
	doc.SetMargins(Margin, Margin, Margin)
	doc.SetAutoPageBreak(false, Margin)
	doc.SetCellMargin(0)

	l := newLayout(doc, w.styles)
	l.newPage()

	for i, f := range story {
		if err := l.place(f); err != nil {
			return nil, fmt.Errorf("failed to lay out flowable %d: %w", i, err)
		}
		if err := doc.Error(); err != nil {
			return nil, fmt.Errorf("failed to lay out flowable %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// glyphFallback maps characters outside cp1252 onto close ASCII stand-ins
// before translation.
var glyphFallback = strings.NewReplacer(
	"↑", "+",
	"↓", "-",
	"′", "'",
	"₂", "2",
	"⁺", "+",
	"≥", ">=",
	"≤", "<=",
	"\t", " ",
)

// layout holds the cursor state of one document. It is never shared.
type layout struct {
	doc    *fpdf.Fpdf
	styles style.Registry
	tr     func(string) string

	left, top, width, bottom float64

	y     float64
	after float64
	fresh bool
	image int
}

func newLayout(doc *fpdf.Fpdf, styles style.Registry) *layout {
	pageW, pageH := doc.GetPageSize()
	return &layout{
		doc:    doc,
		styles: styles,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		left:   Margin,
		top:    Margin,
		width:  pageW - 2*Margin,
		bottom: pageH - Margin,
	}
}

func (l *layout) encode(s string) string {
	return l.tr(glyphFallback.Replace(s))
}

func (l *layout) newPage() {
	l.doc.AddPage()
	l.y = l.top
	l.after = 0
	l.fresh = true
}

// ensure starts a new page when h more points do not fit below the cursor,
// unless the current page is still empty.
func (l *layout) ensure(h float64) {
	if l.y+h > l.bottom && !l.fresh {
		l.newPage()
	}
}

func (l *layout) gap(before float64) {
	if !l.fresh {
		l.y += l.after + before
	}
	l.after = 0
}

func (l *layout) place(f flow.Flowable) error {
	switch t := f.(type) {
	case flow.Paragraph:
		return l.paragraph(t, 0, "")
	case flow.Bullet:
		return l.bullet(t)
	case flow.Spacer:
		l.spacer(t)
	case flow.Image:
		return l.imageBlock(t)
	case flow.PageBreak:
		if !l.fresh {
			l.newPage()
		}
	case flow.Table:
		return l.table(t)
	default:
		return fmt.Errorf("unsupported flowable %T", f)
	}
	return nil
}

func (l *layout) paragraph(p flow.Paragraph, indent float64, marker string) error {
	st, err := l.styles.Resolve(p.Style)
	if err != nil {
		return err
	}
	l.gap(st.SpaceBefore)

	lines := l.wrap(p.Spans, st, l.width-indent)
	for i, ln := range lines {
		l.ensure(st.Leading)
		if i == 0 && marker != "" {
			m := l.encode(marker)
			l.text(l.left+st.BulletIndent, l.y, st.Leading, st, fragment{text: m, width: l.measure(m, st, false)})
		}
		l.drawLine(ln, l.left+indent, l.y, st)
		l.y += st.Leading
		l.fresh = false
	}
	l.after = st.SpaceAfter
	return nil
}

func (l *layout) bullet(b flow.Bullet) error {
	st, err := l.styles.Resolve(b.Style)
	if err != nil {
		return err
	}
	return l.paragraph(b.Paragraph, st.LeftIndent, "•")
}

func (l *layout) spacer(s flow.Spacer) {
	l.gap(0)
	if l.fresh {
		return
	}
	l.y += s.Height
	if l.y > l.bottom {
		l.newPage()
	}
}

func (l *layout) imageBlock(img flow.Image) error {
	l.gap(0)
	l.ensure(img.Height)

	l.image++
	name := fmt.Sprintf("%s-%d", img.Name, l.image)
	opts := fpdf.ImageOptions{ImageType: img.Format, ReadDpi: false}
	l.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if err := l.doc.Error(); err != nil {
		return fmt.Errorf("failed to register image %q: %w", img.Name, err)
	}

	x := l.left + (l.width-img.Width)/2
	l.doc.ImageOptions(name, x, l.y, img.Width, img.Height, false, opts, 0, "")
	l.y += img.Height
	l.fresh = false
	return nil
}

func (l *layout) setFont(st style.Style, bold, underline bool) {
	s := ""
	if bold || st.Bold {
		s += "B"
	}
	if underline {
		s += "U"
	}
	l.doc.SetFont(st.Font, s, st.Size)
}

func (l *layout) text(x, y, h float64, st style.Style, f fragment) {
	l.setFont(st, f.bold, f.link != "")
	l.doc.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	l.doc.SetXY(x, y)
	l.doc.CellFormat(f.width, h, f.text, "", 0, "L", false, 0, f.link)
}

func (l *layout) drawLine(ln line, x, y float64, st style.Style) {
	for _, f := range ln.frags {
		l.text(x, y, st.Leading, st, f)
		x += f.width
	}
}
