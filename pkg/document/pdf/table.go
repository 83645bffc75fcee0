package pdf

import (
	"fmt"

	"github.com/Samayeeta/indicure-ey/pkg/document/flow"
	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

// cell is a wrapped table cell; lines[from:] are still to be drawn.
type cell struct {
	st    style.Style
	lines []line
	from  int
}

func (c cell) remaining() int {
	return len(c.lines) - c.from
}

type tableLayout struct {
	t    flow.Table
	xs   []float64
	head []cell
	// pageTop is the cursor just below the header on the latest table page.
	pageTop float64
}

func (l *layout) table(t flow.Table) error {
	if len(t.Widths) == 0 {
		return fmt.Errorf("table has no columns")
	}
	if len(t.Header) != len(t.Widths) {
		return fmt.Errorf("table has %d header cells for %d columns", len(t.Header), len(t.Widths))
	}

	tl := &tableLayout{t: t, xs: make([]float64, len(t.Widths))}
	x := l.left
	for i, w := range t.Widths {
		tl.xs[i] = x
		x += w
	}

	var err error
	if tl.head, err = l.cells(t, t.Header); err != nil {
		return err
	}

	l.gap(0)
	headH := l.rowHeight(t.Grid, tl.head)

	first := headH
	if len(t.Rows) > 0 {
		row, err := l.cells(t, t.Rows[0])
		if err != nil {
			return err
		}
		first += l.rowHeight(t.Grid, row)
	}
	l.ensure(first)
	l.drawRow(tl, tl.head, true)
	tl.pageTop = l.y

	for i, r := range t.Rows {
		if len(r) != len(t.Widths) {
			return fmt.Errorf("table row %d has %d cells for %d columns", i, len(r), len(t.Widths))
		}
		row, err := l.cells(t, r)
		if err != nil {
			return err
		}
		for {
			if l.y+l.rowHeight(t.Grid, row) <= l.bottom {
				l.drawRow(tl, row, false)
				break
			}
			if l.fitsFreshPage(tl, row) {
				l.tableBreak(tl)
				continue
			}
			// Taller than a page: draw what fits and continue below a new header.
			l.drawPartialRow(tl, row, l.y == tl.pageTop)
			if done(row) {
				break
			}
			l.tableBreak(tl)
		}
	}
	l.after = 0
	return nil
}

func done(row []cell) bool {
	for _, c := range row {
		if c.remaining() > 0 {
			return false
		}
	}
	return true
}

func (l *layout) tableBreak(tl *tableLayout) {
	l.newPage()
	if tl.t.RepeatHeader {
		l.drawRow(tl, tl.head, true)
	}
	tl.pageTop = l.y
}

func (l *layout) fitsFreshPage(tl *tableLayout, row []cell) bool {
	avail := l.bottom - l.top
	if tl.t.RepeatHeader {
		avail -= l.rowHeight(tl.t.Grid, tl.head)
	}
	return l.rowHeight(tl.t.Grid, row) <= avail
}

func (l *layout) cells(t flow.Table, ps []flow.Paragraph) ([]cell, error) {
	out := make([]cell, len(ps))
	for i, p := range ps {
		st, err := l.styles.Resolve(p.Style)
		if err != nil {
			return nil, err
		}
		inner := t.Widths[i] - t.Grid.PaddingLeft - t.Grid.PaddingRight
		out[i] = cell{st: st, lines: l.wrap(p.Spans, st, inner)}
	}
	return out, nil
}

func (l *layout) rowHeight(g flow.Grid, row []cell) float64 {
	var h float64
	for _, c := range row {
		if ch := float64(c.remaining()) * c.st.Leading; ch > h {
			h = ch
		}
	}
	return h + g.PaddingTop + g.PaddingBottom
}

func (l *layout) drawRow(tl *tableLayout, row []cell, header bool) {
	h := l.rowHeight(tl.t.Grid, row)
	l.drawCells(tl, row, h, header)
	if !header {
		for i := range row {
			row[i].from = len(row[i].lines)
		}
	}
	l.y += h
	l.fresh = false
}

// drawPartialRow draws as many lines of each cell as fit above the bottom
// margin and advances the cells. With force set at least one line of every
// unfinished cell is drawn so the table always makes progress.
func (l *layout) drawPartialRow(tl *tableLayout, row []cell, force bool) {
	g := tl.t.Grid
	avail := l.bottom - l.y - g.PaddingTop - g.PaddingBottom

	part := make([]cell, len(row))
	drawn := false
	for i, c := range row {
		n := 0
		if c.st.Leading > 0 {
			n = int(avail / c.st.Leading)
		}
		if n == 0 && force {
			n = 1
		}
		if n > c.remaining() {
			n = c.remaining()
		}
		if n > 0 {
			drawn = true
		}
		part[i] = cell{st: c.st, lines: c.lines[c.from : c.from+n]}
	}
	if !drawn {
		return
	}

	h := l.rowHeight(g, part)
	l.drawCells(tl, part, h, false)
	for i := range row {
		row[i].from += len(part[i].lines)
	}
	l.y += h
	l.fresh = false
}

func (l *layout) drawCells(tl *tableLayout, row []cell, h float64, header bool) {
	g := tl.t.Grid
	l.doc.SetLineWidth(g.LineWidth)
	l.doc.SetDrawColor(g.LineColor.R, g.LineColor.G, g.LineColor.B)

	for i, c := range row {
		x, w := tl.xs[i], tl.t.Widths[i]
		if header {
			l.doc.SetFillColor(g.HeaderFill.R, g.HeaderFill.G, g.HeaderFill.B)
			l.doc.Rect(x, l.y, w, h, "FD")
		} else {
			l.doc.Rect(x, l.y, w, h, "D")
		}

		y := l.y + g.PaddingTop
		if !g.VAlignTop {
			y += (h - g.PaddingTop - g.PaddingBottom - float64(c.remaining())*c.st.Leading) / 2
		}
		for _, ln := range c.lines[c.from:] {
			l.drawLine(ln, x+g.PaddingLeft, y, c.st)
			y += c.st.Leading
		}
	}
}
