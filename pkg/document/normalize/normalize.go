// Package normalize coerces loosely shaped report fields into the canonical
// sections the composer renders. Normalization never fails: absent or
// malformed input resolves to a documented default.
package normalize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

type Shape int

const (
	ShapeScalar Shape = iota
	ShapeStrings
	ShapeRecords
	ShapeReferences
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeStrings:
		return "strings"
	case ShapeRecords:
		return "records"
	case ShapeReferences:
		return "references"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Record is one row of a structured section, keyed by column.
type Record map[string]any

// Text returns the stringified column value; missing and nil values are "".
func (r Record) Text(key string) string {
	return Stringify(r[key])
}

type ReferenceKind int

const (
	ReferencePlain ReferenceKind = iota
	ReferenceLinked
)

type Reference struct {
	Kind  ReferenceKind
	Title string
	URL   string
}

// Section is a fully resolved report field. Only the member matching Shape
// is populated.
type Section struct {
	Shape      Shape
	Text       string
	Items      []string
	Records    []Record
	References []Reference
}

// RecordColumns lists the columns of each structured field, in table order.
var RecordColumns = map[string][]string{
	domain.FieldSignalDashboard:  {"metric", "rating", "rationale"},
	domain.FieldClinicalOutcomes: {"parameter", "result", "p_value"},
}

type Normalizer struct {
	defaults Defaults
}

func New(defaults Defaults) *Normalizer {
	return &Normalizer{defaults: defaults}
}

// Default returns a normalizer backed by BuiltinDefaults.
func Default() *Normalizer {
	return New(BuiltinDefaults())
}

// Normalize resolves report[key] into the requested shape.
func (n *Normalizer) Normalize(report domain.Report, key string, shape Shape) Section {
	v, _ := report.Get(key)

	switch shape {
	case ShapeScalar:
		return Section{Shape: shape, Text: n.scalar(key, v)}
	case ShapeStrings:
		return Section{Shape: shape, Items: n.stringList(key, v)}
	case ShapeRecords:
		return Section{Shape: shape, Records: n.records(key, v)}
	case ShapeReferences:
		return Section{Shape: shape, References: references(v)}
	default:
		return Section{Shape: ShapeScalar}
	}
}

func (n *Normalizer) Scalar(report domain.Report, key string) string {
	return n.Normalize(report, key, ShapeScalar).Text
}

func (n *Normalizer) Strings(report domain.Report, key string) []string {
	return n.Normalize(report, key, ShapeStrings).Items
}

func (n *Normalizer) Records(report domain.Report, key string) []Record {
	return n.Normalize(report, key, ShapeRecords).Records
}

func (n *Normalizer) References(report domain.Report, key string) []Reference {
	return n.Normalize(report, key, ShapeReferences).References
}

// Mode returns the analysis mode. Non-string scalars such as a JSON number
// are shown as written; lists and mappings fall back to the default.
func (n *Normalizer) Mode(report domain.Report) string {
	v, _ := report.Get(domain.FieldMode)
	switch v.(type) {
	case nil, string, []any, map[string]any:
	default:
		if s := strings.TrimSpace(Stringify(v)); s != "" {
			return s
		}
	}
	return n.Scalar(report, domain.FieldMode)
}

// Appendix returns the free-form audit text and whether it should be rendered.
func (n *Normalizer) Appendix(report domain.Report) (string, bool) {
	v, _ := report.Get(domain.FieldRawAgentOutput)
	var text string
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		text = t
	case []any, map[string]any:
		b, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "", false
		}
		text = string(b)
	default:
		text = Stringify(t)
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func (n *Normalizer) scalar(key string, v any) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return n.defaults.Scalars[key]
}

func (n *Normalizer) stringList(key string, v any) []string {
	f := ClassifyText(v)
	switch f.Kind {
	case TextScalar:
		return []string{f.Scalar}
	case TextList:
		if len(f.List) > 0 {
			return f.List
		}
	}
	if def, ok := n.defaults.Strings[key]; ok {
		return def()
	}
	return []string{}
}

func (n *Normalizer) records(key string, v any) []Record {
	items, ok := asList(v)
	if ok && len(items) > 0 {
		columns := RecordColumns[key]
		out := make([]Record, 0, len(items))
		for _, item := range items {
			out = append(out, toRecord(item, columns))
		}
		return out
	}
	if def, ok := n.defaults.Records[key]; ok {
		return def()
	}
	return []Record{}
}

func toRecord(item any, columns []string) Record {
	switch t := item.(type) {
	case nil:
		return Record{}
	case Record:
		return t
	case map[string]any:
		return Record(t)
	case map[string]string:
		r := make(Record, len(t))
		for k, v := range t {
			r[k] = v
		}
		return r
	default:
		first := "value"
		if len(columns) > 0 {
			first = columns[0]
		}
		return Record{first: Stringify(t)}
	}
}

func references(v any) []Reference {
	items, ok := asList(v)
	if !ok {
		return []Reference{}
	}

	out := make([]Reference, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, bareReference(t))
		case map[string]any:
			out = append(out, recordReference(Record(t)))
		case map[string]string:
			out = append(out, recordReference(toRecord(t, nil)))
		case Record:
			out = append(out, recordReference(t))
		default:
			out = append(out, Reference{Kind: ReferencePlain, Title: Stringify(t)})
		}
	}
	return out
}

func bareReference(s string) Reference {
	if strings.HasPrefix(s, "http") {
		return Reference{Kind: ReferenceLinked, Title: s, URL: s}
	}
	return Reference{Kind: ReferencePlain, Title: s}
}

func recordReference(r Record) Reference {
	title := r.Text("title")
	if title == "" {
		title = DefaultReferenceTitle
	}
	if url := r.Text("url"); url != "" {
		return Reference{Kind: ReferenceLinked, Title: title, URL: url}
	}
	return Reference{Kind: ReferencePlain, Title: title}
}

// asList converts any slice value into []any.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Stringify renders a scalar cell value. nil becomes the empty string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
