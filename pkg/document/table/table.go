// Package table turns header/row specifications into wrapped, paginatable
// table flowables.
package table

import (
	"errors"
	"fmt"

	"github.com/Samayeeta/indicure-ey/pkg/document/flow"
	"github.com/Samayeeta/indicure-ey/pkg/document/normalize"
	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

var ErrShapeMismatch = errors.New("table shape mismatch")

type Spec struct {
	Headers []string
	Widths  []float64
	Rows    [][]any
}

// DefaultGrid is the decoration shared by every table in the document.
func DefaultGrid() flow.Grid {
	return flow.Grid{
		LineWidth:     0.5,
		LineColor:     style.Grey,
		HeaderFill:    style.Hex("#E6E6E6"),
		PaddingLeft:   6,
		PaddingRight:  6,
		PaddingTop:    5,
		PaddingBottom: 5,
		VAlignTop:     true,
	}
}

// Build wraps every header and body cell into a paragraph so no cell can
// overflow its column. Rows shorter than the header are padded with empty
// cells; longer rows are rejected.
func Build(spec Spec, styles style.Registry) (flow.Table, error) {
	if len(spec.Widths) != len(spec.Headers) {
		return flow.Table{}, fmt.Errorf("%w: %d headers, %d widths", ErrShapeMismatch, len(spec.Headers), len(spec.Widths))
	}
	for i, w := range spec.Widths {
		if w <= 0 {
			return flow.Table{}, fmt.Errorf("%w: column %d has width %v", ErrShapeMismatch, i, w)
		}
	}
	if _, err := styles.Resolve(style.CellHeader); err != nil {
		return flow.Table{}, err
	}
	if _, err := styles.Resolve(style.Cell); err != nil {
		return flow.Table{}, err
	}

	t := flow.Table{
		Widths:       append([]float64(nil), spec.Widths...),
		Header:       make([]flow.Paragraph, 0, len(spec.Headers)),
		Rows:         make([][]flow.Paragraph, 0, len(spec.Rows)),
		RepeatHeader: true,
		Grid:         DefaultGrid(),
	}

	for _, h := range spec.Headers {
		t.Header = append(t.Header, flow.Paragraph{Style: style.CellHeader, Spans: []flow.Span{flow.Bold(h)}})
	}

	for i, row := range spec.Rows {
		if len(row) > len(spec.Headers) {
			return flow.Table{}, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrShapeMismatch, i, len(row), len(spec.Headers))
		}
		cells := make([]flow.Paragraph, len(spec.Headers))
		for c := range cells {
			var v any
			if c < len(row) {
				v = row[c]
			}
			cells[c] = flow.Para(style.Cell, normalize.Stringify(v))
		}
		t.Rows = append(t.Rows, cells)
	}

	return t, nil
}

type column struct {
	header string
	key    string
	width  float64
}

var (
	dashboardColumns = []column{
		{"Metric", "metric", 120},
		{"Rating", "rating", 90},
		{"Rationale", "rationale", 305},
	}
	outcomeColumns = []column{
		{"Parameter", "parameter", 140},
		{"Result", "result", 275},
		{"p-value", "p_value", 100},
	}
)

// SignalDashboard builds the metric/rating/rationale table.
func SignalDashboard(records []normalize.Record, styles style.Registry) (flow.Table, error) {
	return Build(fromRecords(dashboardColumns, records), styles)
}

// ClinicalOutcomes builds the parameter/result/p-value table.
func ClinicalOutcomes(records []normalize.Record, styles style.Registry) (flow.Table, error) {
	return Build(fromRecords(outcomeColumns, records), styles)
}

func fromRecords(columns []column, records []normalize.Record) Spec {
	spec := Spec{
		Headers: make([]string, 0, len(columns)),
		Widths:  make([]float64, 0, len(columns)),
		Rows:    make([][]any, 0, len(records)),
	}
	for _, c := range columns {
		spec.Headers = append(spec.Headers, c.header)
		spec.Widths = append(spec.Widths, c.width)
	}
	for _, r := range records {
		row := make([]any, 0, len(columns))
		for _, c := range columns {
			row = append(row, r[c.key])
		}
		spec.Rows = append(spec.Rows, row)
	}
	return spec
}
