package normalize

import "github.com/Samayeeta/indicure-ey/pkg/models/domain"

// Series returns the named chart series from report["charts"]. A missing
// series (or a charts value that is not a mapping) falls back to the builtin
// default for that name; a present but empty series is returned as is.
func (n *Normalizer) Series(report domain.Report, name string) domain.Series {
	charts, _ := report.Get(domain.FieldCharts)

	var raw any
	var found bool
	switch t := charts.(type) {
	case map[string]domain.Series:
		raw, found = t[name]
	case map[string]any:
		raw, found = t[name]
	}

	if found {
		if s, ok := toSeries(raw); ok {
			return s
		}
	}

	if def, ok := n.defaults.Series[name]; ok {
		return def()
	}
	return domain.Series{}
}

func toSeries(v any) (domain.Series, bool) {
	switch t := v.(type) {
	case domain.Series:
		return t, true
	case map[string]any:
		return domain.SeriesFromMap(t), true
	case map[string]float64:
		return domain.SeriesFromMap(t), true
	case map[string]int:
		return domain.SeriesFromMap(t), true
	default:
		return nil, false
	}
}
