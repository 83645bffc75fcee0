// Package agents runs the worker agents behind an analysis and aggregates
// their output.
package agents

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

const (
	ExecutiveSummary = "Ranolazine, approved for chronic angina, demonstrates strong mechanistic and clinical potential " +
		"for repurposing in HFpEF: a major, undertreated cardiac condition in India. " +
		"Clinical evidence shows statistically significant improvement in diastolic indices without " +
		"hemodynamic compromise. Given the therapy gap in Indian HFpEF guidance and Ranolazine’s favorable " +
		"safety and cost profile, it is a viable mechanism-driven repurposing candidate."

	Recommendation = "Proceed with targeted Phase II/III Indian clinical trials evaluating Ranolazine as an adjunct therapy " +
		"for HFpEF, prioritizing diastolic function endpoints (E/E′, LVEDV), symptoms/quality of life, and " +
		"hospitalization reduction; stratify patients by phenotype and comorbidities."

	RegulatoryPath = "Supplemental indication pathway (conceptual; depends on regulator and evidence)."
	CostProfile    = "Favorable (repurposed small molecule)."
)

var References = []domain.Citation{
	{Title: "HFpEF Guidelines (JAPI 2022)", URL: "https://heartfailure.org.in/assets/Uploads/guidelines/HFPEF_Guidelines_JAPI_2022.pdf"},
	{Title: "HFpEF India Review (2025)", URL: "https://journals.lww.com/jicc/fulltext/2025/04000/heart_failure_with_preserved_ejection_fraction_in.2.aspx"},
	{Title: "Clinical evidence summary (HFpEF/Ranolazine meta-analysis)", URL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC9947928/"},
	{Title: "Ranolazine mechanism overview (AJC abstract)", URL: "https://www.ajconline.org/article/S0002-9149(23)01060-3/abstract"},
	{Title: "RALI-DHF proof-of-concept (JACC HF 2013)", URL: "https://www.sciencedirect.com/science/article/pii/S2213177913000383"},
}

type Orchestrator struct {
	sources Sources
}

func NewOrchestrator(sources Sources) *Orchestrator {
	return &Orchestrator{sources: sources}
}

// Run normalizes the query, runs the five workers concurrently and
// aggregates their results. The first worker error cancels the others.
func (o *Orchestrator) Run(ctx context.Context, query, geography string) (*domain.Analysis, error) {
	logger := zerolog.Ctx(ctx)
	norm := NormalizeQuery(query)
	drug, indication := norm.Drug, norm.RepurposingTarget

	logger.Debug().
		Str("drug", drug).
		Str("indication", indication).
		Str("geography", geography).
		Msg("Running analysis")

	var out domain.AgentOutputs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Clinical, err = o.sources.ClinicalTrials(gctx, drug, indication)
		return wrap("clinical trials", err)
	})
	g.Go(func() (err error) {
		out.Web, err = o.sources.WebIntelligence(gctx, geography, indication)
		return wrap("web intelligence", err)
	})
	g.Go(func() (err error) {
		out.Patent, err = o.sources.PatentLandscape(gctx, drug, indication)
		return wrap("patent landscape", err)
	})
	g.Go(func() (err error) {
		out.Market, err = o.sources.MarketInsights(gctx, geography, indication)
		return wrap("market insights", err)
	})
	g.Go(func() (err error) {
		out.Internal, err = o.sources.InternalKnowledge(gctx, drug, indication)
		return wrap("internal knowledge", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	refs := make([]domain.Citation, len(References))
	copy(refs, References)

	return &domain.Analysis{
		Normalized:       norm,
		Agents:           out,
		ExecutiveSummary: ExecutiveSummary,
		Evidence: domain.Evidence{
			Clinical:  out.Clinical,
			Mechanism: out.Internal,
		},
		UnmetNeed: out.Web,
		RiskFeasibility: domain.RiskFeasibility{
			PatentRisk:     out.Patent.FTORisk,
			PatentNotes:    out.Patent.Status,
			RegulatoryPath: RegulatoryPath,
			CostProfile:    CostProfile,
			MarketNotes:    out.Market,
		},
		Recommendation: Recommendation,
		References:     refs,
	}, nil
}

func wrap(agent string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to run %s agent: %w", agent, err)
	}
	return nil
}

// Trace lists the agents that contributed to an analysis, in execution
// order.
func Trace() []domain.TraceItem {
	return []domain.TraceItem{
		{Agent: "Master Orchestration Agent", Status: domain.TraceStatusCompleted, Note: "Parsed query, identified drug/indication/geography."},
		{Agent: "Clinical Trials Agent", Status: domain.TraceStatusCompleted, Note: "Extracted endpoints and safety signals."},
		{Agent: "Web Intelligence Agent", Status: domain.TraceStatusCompleted, Note: "Captured India-specific unmet need and guidance gap."},
		{Agent: "Patent Landscape Agent", Status: domain.TraceStatusCompleted, Note: "Assessed patent/FTO feasibility (prototype)."},
		{Agent: "IQVIA Insights Agent", Status: domain.TraceStatusCompleted, Note: "Summarized market rationale (prototype)."},
		{Agent: "Internal Knowledge Agent", Status: domain.TraceStatusCompleted, Note: "Produced mechanistic rationale and differentiation."},
		{Agent: "Report Generator Agent", Status: domain.TraceStatusCompleted, Note: "Assembled dashboard fields and export-ready report."},
	}
}
