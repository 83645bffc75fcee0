package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Report field keys understood by the document engine.
const (
	FieldExecutiveSummary = "executive_summary"
	FieldSignalDashboard  = "signal_dashboard"
	FieldClinicalOutcomes = "clinical_outcomes"
	FieldCharts           = "charts"
	FieldFeasibility      = "feasibility"
	FieldRecommendation   = "recommendation"
	FieldConclusion       = "conclusion"
	FieldLimitations      = "limitations"
	FieldReferences       = "references"
	FieldRawAgentOutput   = "raw_agent_output"
	FieldMode             = "mode"
)

// Report represents one analysis result to be rendered as a document.
// No key is mandatory and values may have any shape.
type Report map[string]any

// Get returns the value stored under key and whether it was present.
func (r Report) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	return v, ok
}

// Clone returns a shallow copy of the report.
func (r Report) Clone() Report {
	out := make(Report, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// SeriesPoint is a single labeled value of a chart series. Value keeps the
// decoded representation; coercion to a number happens at render time.
type SeriesPoint struct {
	Label string
	Value any
}

// Series is an ordered label -> value mapping.
type Series []SeriesPoint

// Labels returns the labels in series order.
func (s Series) Labels() []string {
	labels := make([]string, 0, len(s))
	for _, p := range s {
		labels = append(labels, p.Label)
	}
	return labels
}

// SeriesFromMap builds a series from an unordered map. Labels are sorted so
// that the result does not depend on map iteration order.
func SeriesFromMap[V any](m map[string]V) Series {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	s := make(Series, 0, len(labels))
	for _, l := range labels {
		s = append(s, SeriesPoint{Label: l, Value: m[l]})
	}
	return s
}

// MarshalJSON encodes the series as a JSON object preserving point order.
func (s Series) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode series value %q: %w", p.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order of the input.
func (s *Series) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("series must be an object, got %v", tok)
	}

	out := Series{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected series key %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode series value %q: %w", label, err)
		}
		out = append(out, SeriesPoint{Label: label, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}
