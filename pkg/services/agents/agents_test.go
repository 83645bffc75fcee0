package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

type mockSources struct {
	mock.Mock
}

func (m *mockSources) ClinicalTrials(ctx context.Context, drug, indication string) (domain.ClinicalEvidence, error) {
	args := m.Called(ctx, drug, indication)
	return args.Get(0).(domain.ClinicalEvidence), args.Error(1)
}

func (m *mockSources) WebIntelligence(ctx context.Context, geography, indication string) (domain.UnmetNeed, error) {
	args := m.Called(ctx, geography, indication)
	return args.Get(0).(domain.UnmetNeed), args.Error(1)
}

func (m *mockSources) PatentLandscape(ctx context.Context, drug, indication string) (domain.PatentLandscape, error) {
	args := m.Called(ctx, drug, indication)
	return args.Get(0).(domain.PatentLandscape), args.Error(1)
}

func (m *mockSources) MarketInsights(ctx context.Context, geography, indication string) (domain.MarketInsights, error) {
	args := m.Called(ctx, geography, indication)
	return args.Get(0).(domain.MarketInsights), args.Error(1)
}

func (m *mockSources) InternalKnowledge(ctx context.Context, drug, indication string) (domain.Mechanism, error) {
	args := m.Called(ctx, drug, indication)
	return args.Get(0).(domain.Mechanism), args.Error(1)
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "explicit", query: "Assess repurposing potential of Ranolazine for HFpEF in India"},
		{name: "synonyms", query: "ranolazine for preserved ejection fraction, indian patients"},
		{name: "unrelated", query: "Something entirely different about metformin"},
		{name: "empty", query: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeQuery(tt.query)
			assert.Equal(t, domain.Normalized{
				Drug:              "Ranolazine",
				CurrentUse:        "Chronic stable angina / ischaemic heart disease",
				RepurposingTarget: "HFpEF",
				Geography:         "India",
			}, got)
		})
	}
}

func TestOrchestrator_Run(t *testing.T) {
	o := NewOrchestrator(NewCuratedSources())

	a, err := o.Run(context.Background(), "Assess repurposing potential of Ranolazine for HFpEF", "India")
	require.NoError(t, err)

	assert.Equal(t, "Ranolazine", a.Normalized.Drug)
	assert.Equal(t, ExecutiveSummary, a.ExecutiveSummary)
	assert.Equal(t, Recommendation, a.Recommendation)
	assert.Len(t, a.References, 5)

	assert.Len(t, a.Agents.Clinical.Endpoints, 6)
	assert.Equal(t, a.Agents.Clinical, a.Evidence.Clinical)
	assert.Equal(t, a.Agents.Internal, a.Evidence.Mechanism)
	assert.Equal(t, a.Agents.Web, a.UnmetNeed)

	assert.Equal(t, "Low (prototype).", a.RiskFeasibility.PatentRisk)
	assert.Equal(t, a.Agents.Patent.Status, a.RiskFeasibility.PatentNotes)
	assert.Equal(t, RegulatoryPath, a.RiskFeasibility.RegulatoryPath)
	assert.Equal(t, CostProfile, a.RiskFeasibility.CostProfile)
	assert.Equal(t, a.Agents.Market, a.RiskFeasibility.MarketNotes)

	a.References[0].Title = "changed"
	assert.Equal(t, "HFpEF Guidelines (JAPI 2022)", References[0].Title)
}

func TestOrchestrator_RunPassesArguments(t *testing.T) {
	curated := NewCuratedSources()
	ctx := context.Background()
	clinical, _ := curated.ClinicalTrials(ctx, "", "")
	web, _ := curated.WebIntelligence(ctx, "", "")
	patent, _ := curated.PatentLandscape(ctx, "", "")
	market, _ := curated.MarketInsights(ctx, "", "")
	internal, _ := curated.InternalKnowledge(ctx, "", "")

	m := new(mockSources)
	m.On("ClinicalTrials", mock.Anything, "Ranolazine", "HFpEF").Return(clinical, nil)
	m.On("WebIntelligence", mock.Anything, "India", "HFpEF").Return(web, nil)
	m.On("PatentLandscape", mock.Anything, "Ranolazine", "HFpEF").Return(patent, nil)
	m.On("MarketInsights", mock.Anything, "India", "HFpEF").Return(market, nil)
	m.On("InternalKnowledge", mock.Anything, "Ranolazine", "HFpEF").Return(internal, nil)

	_, err := NewOrchestrator(m).Run(ctx, "ranolazine in diastolic failure", "India")
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestOrchestrator_RunWorkerError(t *testing.T) {
	boom := errors.New("patent index unavailable")

	m := new(mockSources)
	m.On("ClinicalTrials", mock.Anything, mock.Anything, mock.Anything).Return(domain.ClinicalEvidence{}, nil).Maybe()
	m.On("WebIntelligence", mock.Anything, mock.Anything, mock.Anything).Return(domain.UnmetNeed{}, nil).Maybe()
	m.On("PatentLandscape", mock.Anything, mock.Anything, mock.Anything).Return(domain.PatentLandscape{}, boom)
	m.On("MarketInsights", mock.Anything, mock.Anything, mock.Anything).Return(domain.MarketInsights{}, nil).Maybe()
	m.On("InternalKnowledge", mock.Anything, mock.Anything, mock.Anything).Return(domain.Mechanism{}, nil).Maybe()

	a, err := NewOrchestrator(m).Run(context.Background(), "Ranolazine for HFpEF", "India")
	assert.Nil(t, a)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "patent landscape")
}

func TestTrace(t *testing.T) {
	trace := Trace()
	require.Len(t, trace, 7)
	assert.Equal(t, "Master Orchestration Agent", trace[0].Agent)
	assert.Equal(t, "Report Generator Agent", trace[6].Agent)
	for _, item := range trace {
		assert.Equal(t, domain.TraceStatusCompleted, item.Status)
		assert.NotEmpty(t, item.Note)
	}
}

func TestAnalysis_Report(t *testing.T) {
	a, err := NewOrchestrator(NewCuratedSources()).Run(context.Background(), "Ranolazine for HFpEF", "India")
	require.NoError(t, err)

	t.Run("without appendix", func(t *testing.T) {
		r, err := a.Report("Clinical", false)
		require.NoError(t, err)

		assert.Equal(t, "Clinical", r[domain.FieldMode])
		assert.Equal(t, ExecutiveSummary, r[domain.FieldExecutiveSummary])
		assert.Equal(t, Recommendation, r[domain.FieldRecommendation])
		refs, ok := r[domain.FieldReferences].([]any)
		require.True(t, ok)
		require.Len(t, refs, 5)
		assert.Equal(t, map[string]any{"title": References[4].Title, "url": References[4].URL}, refs[4])
		assert.NotContains(t, r, domain.FieldRawAgentOutput)
	})

	t.Run("with appendix", func(t *testing.T) {
		r, err := a.Report("Patent", true)
		require.NoError(t, err)

		raw, ok := r[domain.FieldRawAgentOutput].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(raw, "Clinical Trials Agent:"))

		var decoded domain.AgentOutputs
		require.NoError(t, yaml.Unmarshal([]byte(raw), &decoded))
		assert.Equal(t, a.Agents, decoded)
	})
}
