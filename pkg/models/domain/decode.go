package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the report encoding from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeReport reads a report in the given format. Chart series keep the
// order in which their labels appear in the input.
func DecodeReport(r io.Reader, format Format) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON, "":
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

func decodeJSON(data []byte) (Report, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	report := make(Report, len(raw))
	for key, msg := range raw {
		if key == FieldCharts {
			var charts map[string]Series
			if err := json.Unmarshal(msg, &charts); err == nil {
				report[key] = charts
				continue
			}
		}

		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse report field %q: %w", key, err)
		}
		report[key] = v
	}
	return report, nil
}

func decodeYAML(data []byte) (Report, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	report := Report{}
	if len(doc.Content) == 0 {
		return report, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("report must be a mapping, got %s", root.Tag)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		node := root.Content[i+1]

		if key == FieldCharts && node.Kind == yaml.MappingNode {
			charts, err := yamlCharts(node)
			if err != nil {
				return nil, err
			}
			report[key] = charts
			continue
		}

		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse report field %q: %w", key, err)
		}
		report[key] = v
	}
	return report, nil
}

func yamlCharts(node *yaml.Node) (map[string]Series, error) {
	charts := make(map[string]Series, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		body := node.Content[i+1]
		if body.Kind != yaml.MappingNode {
			continue
		}

		s := Series{}
		for j := 0; j+1 < len(body.Content); j += 2 {
			var v any
			if err := body.Content[j+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("failed to parse chart %q value %q: %w", name, body.Content[j].Value, err)
			}
			s = append(s, SeriesPoint{Label: body.Content[j].Value, Value: v})
		}
		charts[name] = s
	}
	return charts, nil
}
