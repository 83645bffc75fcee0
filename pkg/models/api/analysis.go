package api

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	ModeGeneral  = "General"
	ModeClinical = "Clinical"
	ModePatent   = "Patent"
	ModeMarket   = "Market"

	OutputFormatSummary = "Summary + Risks + Recommendation"
	GeographyIndia      = "India"

	MinQueryLength = 10
)

var ErrInvalidRequest = errors.New("invalid request")

var modes = map[string]bool{
	ModeGeneral:  true,
	ModeClinical: true,
	ModePatent:   true,
	ModeMarket:   true,
}

type AnalyzeRequest struct {
	Query        string `json:"query"`
	Mode         string `json:"mode"`
	OutputFormat string `json:"output_format"`
	Geography    string `json:"geography"`
}

// Validate fills omitted fields with their defaults and checks the rest.
// Failures wrap ErrInvalidRequest.
func (r *AnalyzeRequest) Validate() error {
	if r.Mode == "" {
		r.Mode = ModeGeneral
	}
	if r.OutputFormat == "" {
		r.OutputFormat = OutputFormatSummary
	}
	if r.Geography == "" {
		r.Geography = GeographyIndia
	}

	if n := utf8.RuneCountInString(r.Query); n < MinQueryLength {
		return fmt.Errorf("%w: query must have at least %d characters, got %d", ErrInvalidRequest, MinQueryLength, n)
	}
	if !modes[r.Mode] {
		return fmt.Errorf("%w: unsupported mode %q", ErrInvalidRequest, r.Mode)
	}
	if r.OutputFormat != OutputFormatSummary {
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalidRequest, r.OutputFormat)
	}
	if r.Geography != GeographyIndia {
		return fmt.Errorf("%w: unsupported geography %q", ErrInvalidRequest, r.Geography)
	}
	return nil
}

type AgentTraceItem struct {
	Agent  string `json:"agent"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

type Normalized struct {
	Drug              string `json:"drug"`
	CurrentUse        string `json:"current_use"`
	RepurposingTarget string `json:"repurposing_target"`
	Geography         string `json:"geography"`
}

type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Endpoint struct {
	Metric       string `json:"metric"`
	Result       string `json:"result"`
	Significance string `json:"significance"`
}

type ClinicalEvidence struct {
	KeyFindings []string   `json:"key_findings"`
	Endpoints   []Endpoint `json:"endpoints"`
	Safety      string     `json:"safety"`
}

type Mechanism struct {
	Mechanism       []string `json:"mechanism"`
	Differentiation string   `json:"differentiation"`
}

type Evidence struct {
	Clinical  ClinicalEvidence `json:"clinical"`
	Mechanism Mechanism        `json:"mechanism"`
}

type UnmetNeed struct {
	IndiaBurden  []string `json:"india_burden"`
	GuidelineGap []string `json:"guideline_gap"`
	Implication  string   `json:"implication"`
}

type MarketInsights struct {
	MarketTrend         string `json:"market_trend"`
	PatientGap          string `json:"patient_gap"`
	CommercialRationale string `json:"commercial_rationale"`
}

type RiskFeasibility struct {
	PatentRisk     string         `json:"patent_risk"`
	PatentNotes    string         `json:"patent_notes"`
	RegulatoryPath string         `json:"regulatory_path"`
	CostProfile    string         `json:"cost_profile"`
	MarketNotes    MarketInsights `json:"market_notes"`
}

type AnalyzeResponse struct {
	Normalized       Normalized       `json:"normalized"`
	Trace            []AgentTraceItem `json:"trace"`
	ExecutiveSummary string           `json:"executive_summary"`
	Evidence         Evidence         `json:"evidence"`
	UnmetNeed        UnmetNeed        `json:"unmet_need"`
	RiskFeasibility  RiskFeasibility  `json:"risk_feasibility"`
	Recommendation   string           `json:"recommendation"`
	References       []Reference      `json:"references"`
}

type HealthStatus struct {
	Status string `json:"status"`
}
