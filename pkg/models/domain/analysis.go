package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Normalized is the parsed form of a free-text repurposing query.
type Normalized struct {
	Drug              string `json:"drug" yaml:"drug"`
	CurrentUse        string `json:"current_use" yaml:"current_use"`
	RepurposingTarget string `json:"repurposing_target" yaml:"repurposing_target"`
	Geography         string `json:"geography" yaml:"geography"`
}

type Endpoint struct {
	Metric       string `json:"metric" yaml:"metric"`
	Result       string `json:"result" yaml:"result"`
	Significance string `json:"significance" yaml:"significance"`
}

type ClinicalEvidence struct {
	KeyFindings []string   `json:"key_findings" yaml:"key_findings"`
	Endpoints   []Endpoint `json:"endpoints" yaml:"endpoints"`
	Safety      string     `json:"safety" yaml:"safety"`
}

type UnmetNeed struct {
	IndiaBurden  []string `json:"india_burden" yaml:"india_burden"`
	GuidelineGap []string `json:"guideline_gap" yaml:"guideline_gap"`
	Implication  string   `json:"implication" yaml:"implication"`
}

type PatentLandscape struct {
	Status            string `json:"status" yaml:"status"`
	HFpEFClaimDensity string `json:"hfpef_claim_density" yaml:"hfpef_claim_density"`
	FTORisk           string `json:"fto_risk" yaml:"fto_risk"`
	Feasibility       string `json:"feasibility" yaml:"feasibility"`
}

type MarketInsights struct {
	MarketTrend         string `json:"market_trend" yaml:"market_trend"`
	PatientGap          string `json:"patient_gap" yaml:"patient_gap"`
	CommercialRationale string `json:"commercial_rationale" yaml:"commercial_rationale"`
}

type Mechanism struct {
	Mechanism       []string `json:"mechanism" yaml:"mechanism"`
	Differentiation string   `json:"differentiation" yaml:"differentiation"`
}

// AgentOutputs holds the raw result of every worker agent.
type AgentOutputs struct {
	Clinical ClinicalEvidence `json:"Clinical Trials Agent" yaml:"Clinical Trials Agent"`
	Web      UnmetNeed        `json:"Web Intelligence Agent" yaml:"Web Intelligence Agent"`
	Patent   PatentLandscape  `json:"Patent Landscape Agent" yaml:"Patent Landscape Agent"`
	Market   MarketInsights   `json:"IQVIA Insights Agent" yaml:"IQVIA Insights Agent"`
	Internal Mechanism        `json:"Internal Knowledge Agent" yaml:"Internal Knowledge Agent"`
}

type Evidence struct {
	Clinical  ClinicalEvidence `json:"clinical"`
	Mechanism Mechanism        `json:"mechanism"`
}

type RiskFeasibility struct {
	PatentRisk     string         `json:"patent_risk"`
	PatentNotes    string         `json:"patent_notes"`
	RegulatoryPath string         `json:"regulatory_path"`
	CostProfile    string         `json:"cost_profile"`
	MarketNotes    MarketInsights `json:"market_notes"`
}

type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Analysis is the aggregated result of one orchestration run.
type Analysis struct {
	Normalized       Normalized
	Agents           AgentOutputs
	ExecutiveSummary string
	Evidence         Evidence
	UnmetNeed        UnmetNeed
	RiskFeasibility  RiskFeasibility
	Recommendation   string
	References       []Citation
}

type TraceStatus string

const (
	TraceStatusQueued    TraceStatus = "queued"
	TraceStatusRunning   TraceStatus = "running"
	TraceStatusCompleted TraceStatus = "completed"
)

type TraceItem struct {
	Agent  string
	Status TraceStatus
	Note   string
}

// Report converts the analysis into the document engine's input. Sections
// the analysis does not produce are left to the engine defaults. With
// appendix set the raw agent output is attached as YAML.
func (a Analysis) Report(mode string, appendix bool) (Report, error) {
	refs := make([]any, 0, len(a.References))
	for _, r := range a.References {
		refs = append(refs, map[string]any{"title": r.Title, "url": r.URL})
	}

	report := Report{
		FieldExecutiveSummary: a.ExecutiveSummary,
		FieldRecommendation:   a.Recommendation,
		FieldReferences:       refs,
		FieldMode:             mode,
	}
	if !appendix {
		return report, nil
	}

	raw, err := yaml.Marshal(a.Agents)
	if err != nil {
		return nil, fmt.Errorf("failed to encode agent output: %w", err)
	}
	report[FieldRawAgentOutput] = string(raw)
	return report, nil
}
