package agents

import (
	"strings"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

const (
	DefaultDrug       = "Ranolazine"
	DefaultCurrentUse = "Chronic stable angina / ischaemic heart disease"
	DefaultTarget     = "HFpEF"
	DefaultGeography  = "India"
)

// NormalizeQuery extracts the drug, current use, target indication and
// geography from a free-text query.
//
// Only the Ranolazine / HFpEF / India case is supported, so every query
// resolves to it. The keyword checks mark where other candidates would be
// recognised.
func NormalizeQuery(query string) domain.Normalized {
	q := strings.ToLower(query)

	drug := DefaultDrug
	if strings.Contains(q, "ranolazine") {
		drug = "Ranolazine"
	}

	target := DefaultTarget
	if containsAny(q, "hfpef", "preserved ejection", "diastolic") {
		target = "HFpEF"
	}

	geography := DefaultGeography
	if containsAny(q, "india", "indian") {
		geography = "India"
	}

	return domain.Normalized{
		Drug:              drug,
		CurrentUse:        DefaultCurrentUse,
		RepurposingTarget: target,
		Geography:         geography,
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
