package agents

import (
	"context"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

// Sources are the worker agents the orchestrator delegates to.
type Sources interface {
	ClinicalTrials(ctx context.Context, drug, indication string) (domain.ClinicalEvidence, error)
	WebIntelligence(ctx context.Context, geography, indication string) (domain.UnmetNeed, error)
	PatentLandscape(ctx context.Context, drug, indication string) (domain.PatentLandscape, error)
	MarketInsights(ctx context.Context, geography, indication string) (domain.MarketInsights, error)
	InternalKnowledge(ctx context.Context, drug, indication string) (domain.Mechanism, error)
}

// CuratedSources answers every worker call with the curated Ranolazine /
// HFpEF evidence set.
type CuratedSources struct{}

func NewCuratedSources() CuratedSources {
	return CuratedSources{}
}

func (CuratedSources) ClinicalTrials(_ context.Context, _, _ string) (domain.ClinicalEvidence, error) {
	return domain.ClinicalEvidence{
		KeyFindings: []string{
			"Improved diastolic performance (↑ LVEDV, ↓ E/E′).",
			"No significant adverse hemodynamic changes (BP/HR/QT).",
			"Likely symptom/quality-of-life benefit in HFpEF context.",
		},
		Endpoints: []domain.Endpoint{
			{Metric: "LVEDV", Result: "↑ (mean diff ~33.34 ml)", Significance: "p < 0.001"},
			{Metric: "E/E′", Result: "↓ (mean diff ~0.45)", Significance: "p = 0.05"},
			{Metric: "Peak O₂", Result: "trend ↑", Significance: "p = 0.09 (NS)"},
			{Metric: "Exercise duration", Result: "trend ↑", Significance: "p = 0.18 (NS)"},
			{Metric: "BP/HR", Result: "no difference", Significance: "p > 0.05"},
			{Metric: "QT interval", Result: "no difference", Significance: "p = 0.27"},
		},
		Safety: "Favorable safety profile; adverse effects mild and comparable to placebo.",
	}, nil
}

func (CuratedSources) WebIntelligence(_ context.Context, _, _ string) (domain.UnmetNeed, error) {
	return domain.UnmetNeed{
		IndiaBurden: []string{
			"HFpEF accounts for ~15–30% of HF cases in India.",
			"High burden with ~40% mortality at ~3 years in reported cohorts.",
			"Underdiagnosed and increasing prevalence.",
		},
		GuidelineGap: []string{
			"Only SGLT2 inhibitors have proven benefit in HFpEF.",
			"No single curative/disease-modifying drug established.",
			"Ionic dysfunction (Na⁺/Ca²⁺ handling) central to HFpEF pathophysiology.",
		},
		Implication: "Clear therapeutic gap supports mechanism-driven repurposing candidates.",
	}, nil
}

func (CuratedSources) PatentLandscape(_ context.Context, _, _ string) (domain.PatentLandscape, error) {
	return domain.PatentLandscape{
		Status:            "Off-patent / near-expiry positioning (prototype assumption for demo).",
		HFpEFClaimDensity: "HFpEF-specific claims appear limited in high-level scan (prototype).",
		FTORisk:           "Low (prototype).",
		Feasibility:       "Repurposing feasible via indication extension + evidence-backed labeling strategy.",
	}, nil
}

func (CuratedSources) MarketInsights(_ context.Context, _, _ string) (domain.MarketInsights, error) {
	return domain.MarketInsights{
		MarketTrend:         "Growing HF burden in India driven by aging, diabetes, and lifestyle risk factors.",
		PatientGap:          "Large underdiagnosed population suggests significant screening and treatment opportunity.",
		CommercialRationale: "Affordable repurposed therapy could fit unmet need and resource constraints.",
	}, nil
}

func (CuratedSources) InternalKnowledge(_ context.Context, _, _ string) (domain.Mechanism, error) {
	return domain.Mechanism{
		Mechanism: []string{
			"Inhibits late sodium current (INaL) → reduces intracellular Na⁺.",
			"Reduces Ca²⁺ overload → improves diastolic relaxation and filling.",
			"Addresses ionic dysfunction central to HFpEF pathophysiology.",
			"Evidence supports improvements in diastolic indices without BP/HR compromise.",
		},
		Differentiation: "Mechanistically distinct from SGLT2 inhibitors / ARNIs; complements existing therapy.",
	}, nil
}
