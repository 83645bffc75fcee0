package normalize

import "github.com/Samayeeta/indicure-ey/pkg/models/domain"

const (
	DefaultMode             = "General"
	DefaultExecutiveSummary = "No executive summary available."
	DefaultRecommendation   = "Proceed with targeted Phase II/III Indian clinical trials evaluating Ranolazine as adjunct therapy for HFpEF, focusing on diastolic endpoints and hospitalization reduction."
	DefaultConclusion       = "Overall, the current evidence suggests a positive clinical signal for diastolic-function improvement " +
		"with a favorable tolerability profile in the summarized datasets. The primary value-creation step is " +
		"a well-designed India-focused clinical program with clearly defined HFpEF phenotyping, diastolic endpoints, " +
		"and pragmatic outcomes (including hospitalization and functional status)."
	DefaultReferenceTitle = "Reference"
	// LVEDVSeries is the chart series wired into the document.
	LVEDVSeries = "lvedv_change_ml"
)

func defaultDashboard() []Record {
	return []Record{
		{"metric": "Clinical Signal", "rating": "Positive", "rationale": "Reported diastolic-function improvements with tolerated hemodynamics in referenced endpoints."},
		{"metric": "Safety", "rating": "Favorable", "rationale": "No major BP/HR changes reported; QT signal not elevated in the summarized evidence set."},
		{"metric": "Patent Risk", "rating": "Low", "rationale": "Repurposing typically reduces FTO risk versus de novo development; monitor any formulation/use claims."},
		{"metric": "India Unmet Need", "rating": "High", "rationale": "HFpEF remains underdiagnosed and undertreated; accessible options and evidence generation are needed."},
	}
}

func defaultOutcomes() []Record {
	return []Record{
		{"parameter": "LVEDV", "result": "↑ Significant improvement", "p_value": "< 0.001"},
		{"parameter": "E/E′", "result": "↓ Improved diastolic function", "p_value": "0.05"},
		{"parameter": "Blood Pressure / HR", "result": "No meaningful change", "p_value": "> 0.05"},
		{"parameter": "QT Interval", "result": "No prolongation signal", "p_value": "0.27"},
	}
}

func defaultFeasibility() []string {
	return []string{
		"Off-patent or reduced exclusivity risk profile relative to novel entities (confirm claim scope).",
		"Oral administration supports outpatient adoption and affordability assumptions.",
		"Regulatory pathway may be supplemental indication (jurisdiction-specific validation required).",
	}
}

func defaultLimitations() []string {
	return []string{
		"Evidence summarized here may include heterogeneous study designs and endpoints; external validation required.",
		"Signal strength depends on patient phenotyping and comparators; India-specific epidemiology may differ.",
		"Patent/FTO requires a dedicated legal search for jurisdictional claims and formulation/use patents.",
	}
}

func defaultLVEDV() domain.Series {
	return domain.Series{
		{Label: "Placebo", Value: 0.0},
		{Label: "Ranolazine", Value: 33.34},
	}
}

// Defaults are the documented fallbacks, keyed by report field.
type Defaults struct {
	Scalars map[string]string
	Strings map[string]func() []string
	Records map[string]func() []Record
	Series  map[string]func() domain.Series
}

// BuiltinDefaults returns the fallbacks used when a report field is absent,
// empty, or malformed.
func BuiltinDefaults() Defaults {
	return Defaults{
		Scalars: map[string]string{
			domain.FieldExecutiveSummary: DefaultExecutiveSummary,
			domain.FieldRecommendation:   DefaultRecommendation,
			domain.FieldConclusion:       DefaultConclusion,
			domain.FieldMode:             DefaultMode,
		},
		Strings: map[string]func() []string{
			domain.FieldFeasibility: defaultFeasibility,
			domain.FieldLimitations: defaultLimitations,
		},
		Records: map[string]func() []Record{
			domain.FieldSignalDashboard:  defaultDashboard,
			domain.FieldClinicalOutcomes: defaultOutcomes,
		},
		Series: map[string]func() domain.Series{
			LVEDVSeries: defaultLVEDV,
		},
	}
}
