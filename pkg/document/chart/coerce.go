package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

var ErrNonNumeric = errors.New("non-numeric chart value")

// Coerce converts a series into parallel label and value slices. Any value
// that is not a finite number fails the whole series.
func Coerce(series domain.Series) ([]string, []float64, error) {
	labels := make([]string, 0, len(series))
	values := make([]float64, 0, len(series))
	for _, p := range series {
		v, err := toFloat(p.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q: %v", ErrNonNumeric, p.Label, err)
		}
		labels = append(labels, p.Label)
		values = append(values, v)
	}
	return labels, values, nil
}

// FromSeries builds a Spec from a coerced series.
func FromSeries(title, yLabel string, series domain.Series) (Spec, error) {
	labels, values, err := Coerce(series)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Title: title, YLabel: yLabel, Labels: labels, Values: values}, nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, err
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q", t)
		}
		f = n
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not finite", f)
	}
	return f, nil
}
