package adapters

import (
	"github.com/Samayeeta/indicure-ey/pkg/models/api"
	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

func MapTraceItemDomainToApi(t domain.TraceItem) api.AgentTraceItem {
	return api.AgentTraceItem{
		Agent:  t.Agent,
		Status: string(t.Status),
		Note:   t.Note,
	}
}

func MapNormalizedDomainToApi(n domain.Normalized) api.Normalized {
	return api.Normalized{
		Drug:              n.Drug,
		CurrentUse:        n.CurrentUse,
		RepurposingTarget: n.RepurposingTarget,
		Geography:         n.Geography,
	}
}

func MapClinicalEvidenceDomainToApi(c domain.ClinicalEvidence) api.ClinicalEvidence {
	res := api.ClinicalEvidence{
		KeyFindings: append([]string{}, c.KeyFindings...),
		Endpoints:   make([]api.Endpoint, 0, len(c.Endpoints)),
		Safety:      c.Safety,
	}
	for _, e := range c.Endpoints {
		res.Endpoints = append(res.Endpoints, api.Endpoint{
			Metric:       e.Metric,
			Result:       e.Result,
			Significance: e.Significance,
		})
	}
	return res
}

func MapMechanismDomainToApi(m domain.Mechanism) api.Mechanism {
	return api.Mechanism{
		Mechanism:       append([]string{}, m.Mechanism...),
		Differentiation: m.Differentiation,
	}
}

func MapUnmetNeedDomainToApi(u domain.UnmetNeed) api.UnmetNeed {
	return api.UnmetNeed{
		IndiaBurden:  append([]string{}, u.IndiaBurden...),
		GuidelineGap: append([]string{}, u.GuidelineGap...),
		Implication:  u.Implication,
	}
}

func MapRiskFeasibilityDomainToApi(r domain.RiskFeasibility) api.RiskFeasibility {
	return api.RiskFeasibility{
		PatentRisk:     r.PatentRisk,
		PatentNotes:    r.PatentNotes,
		RegulatoryPath: r.RegulatoryPath,
		CostProfile:    r.CostProfile,
		MarketNotes: api.MarketInsights{
			MarketTrend:         r.MarketNotes.MarketTrend,
			PatientGap:          r.MarketNotes.PatientGap,
			CommercialRationale: r.MarketNotes.CommercialRationale,
		},
	}
}

func MapAnalysisDomainToApi(a domain.Analysis, trace []domain.TraceItem) api.AnalyzeResponse {
	res := api.AnalyzeResponse{
		Normalized:       MapNormalizedDomainToApi(a.Normalized),
		Trace:            make([]api.AgentTraceItem, 0, len(trace)),
		ExecutiveSummary: a.ExecutiveSummary,
		Evidence: api.Evidence{
			Clinical:  MapClinicalEvidenceDomainToApi(a.Evidence.Clinical),
			Mechanism: MapMechanismDomainToApi(a.Evidence.Mechanism),
		},
		UnmetNeed:       MapUnmetNeedDomainToApi(a.UnmetNeed),
		RiskFeasibility: MapRiskFeasibilityDomainToApi(a.RiskFeasibility),
		Recommendation:  a.Recommendation,
		References:      make([]api.Reference, 0, len(a.References)),
	}
	for _, t := range trace {
		res.Trace = append(res.Trace, MapTraceItemDomainToApi(t))
	}
	for _, r := range a.References {
		res.References = append(res.References, api.Reference{Title: r.Title, URL: r.URL})
	}
	return res
}
