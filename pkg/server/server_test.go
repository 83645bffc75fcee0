package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samayeeta/indicure-ey/pkg/document"
	"github.com/Samayeeta/indicure-ey/pkg/models/api"
	"github.com/Samayeeta/indicure-ey/pkg/services/agents"
	"github.com/Samayeeta/indicure-ey/pkg/services/export"
	"github.com/Samayeeta/indicure-ey/pkg/store/blob"
	"github.com/Samayeeta/indicure-ey/pkg/store/duckdb"
	"github.com/Samayeeta/indicure-ey/pkg/store/duckdb/exports"
)

func newTestServer(t *testing.T) *httptest.Server {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	audit, err := exports.NewStore(db)
	require.NoError(t, err)

	orchestrator := agents.NewOrchestrator(agents.NewCuratedSources())
	ctrl := export.NewController(
		orchestrator,
		document.DefaultComposer(),
		blob.NewFileStore(afero.NewMemMapFs(), "/exports"),
		audit,
	)

	router := ConfigureRouter(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		CORSOrigins:     []string{"http://localhost:5173"},
		Dependencies: Dependencies{
			Analyzer: orchestrator,
			Exports:  ctrl,
		},
	})
	testServer := httptest.NewServer(router)
	t.Cleanup(func() {
		testServer.Close()
		db.Close()
	})
	return testServer
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestWebAPI_JSONEndpoints(t *testing.T) {
	testServer := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "Health",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"ok"}`, string(body))
			},
		},
		{
			name:           "Analyze",
			method:         http.MethodPost,
			path:           "/analyze",
			body:           api.AnalyzeRequest{Query: "Assess repurposing potential of Ranolazine for HFpEF"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				resp, err := unmarshalResponse[api.AnalyzeResponse]()(body)
				require.NoError(t, err)
				r := resp.(api.AnalyzeResponse)
				assert.Equal(t, "Ranolazine", r.Normalized.Drug)
				assert.Equal(t, "HFpEF", r.Normalized.RepurposingTarget)
				require.Len(t, r.Trace, 7)
				assert.Equal(t, "completed", r.Trace[0].Status)
				assert.Len(t, r.Evidence.Clinical.Endpoints, 6)
				assert.Equal(t, "Low (prototype).", r.RiskFeasibility.PatentRisk)
				assert.Len(t, r.References, 5)
				assert.Equal(t, agents.Recommendation, r.Recommendation)
			},
		},
		{
			name:           "Analyze_ShortQuery",
			method:         http.MethodPost,
			path:           "/analyze",
			body:           api.AnalyzeRequest{Query: "too short"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Analyze_UnknownMode",
			method:         http.MethodPost,
			path:           "/analyze",
			body:           api.AnalyzeRequest{Query: "Ranolazine for HFpEF", Mode: "Regulatory"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Analyze_UnsupportedGeography",
			method:         http.MethodPost,
			path:           "/analyze",
			body:           api.AnalyzeRequest{Query: "Ranolazine for HFpEF", Geography: "Brazil"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Analyze_MalformedBody",
			method:         http.MethodPost,
			path:           "/analyze",
			body:           "{not json",
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resp *http.Response
			var err error
			switch b := tc.body.(type) {
			case nil:
				resp, err = http.Get(testServer.URL + tc.path)
				require.NoError(t, err)
			case string:
				resp, err = http.Post(testServer.URL+tc.path, "application/json", strings.NewReader(b))
				require.NoError(t, err)
			default:
				resp = postJSON(t, testServer.URL+tc.path, b)
			}
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")
			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}
}

func TestWebAPI_DocumentEndpoints(t *testing.T) {
	testServer := newTestServer(t)

	t.Run("ExportPDF", func(t *testing.T) {
		resp := postJSON(t, testServer.URL+"/export/pdf", api.AnalyzeRequest{Query: "Ranolazine for HFpEF in India", Mode: "Market"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="indicure_ranolazine_report.pdf"`, resp.Header.Get("Content-Disposition"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	})

	t.Run("ReportPDF", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/report/pdf?mode=Clinical&geo=India&appendix=true")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="IndiCure_Ranolazine_HFpEF_India_Clinical.pdf"`, resp.Header.Get("Content-Disposition"))
	})

	t.Run("ReportPDF_Defaults", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/report/pdf")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="IndiCure_Ranolazine_HFpEF_India_General.pdf"`, resp.Header.Get("Content-Disposition"))
	})

	t.Run("ReportPDF_InvalidAppendix", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/report/pdf?appendix=maybe")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Render", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/render", "application/json",
			strings.NewReader(`{"executive_summary":"Short.","charts":{"lvedv_change_ml":{"A":1,"B":2}}}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="report.pdf"`, resp.Header.Get("Content-Disposition"))
	})

	t.Run("Render_YAML", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/render", "application/yaml",
			strings.NewReader("executive_summary: Short.\nmode: Patent\n"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Render_NonNumericChart", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/render", "application/json",
			strings.NewReader(`{"charts":{"lvedv_change_ml":{"Placebo":"n/a"}}}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Render_MalformedBody", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/render", "application/json", strings.NewReader(`[1,2`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("ListExports", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/exports?limit=2")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		list, err := unmarshalResponse[api.ExportList]()(body)
		require.NoError(t, err)
		records := list.(api.ExportList).Exports
		require.Len(t, records, 2)
		for _, r := range records {
			assert.NotEmpty(t, r.ID)
			assert.Len(t, r.SHA256, 64)
			assert.True(t, strings.HasPrefix(r.Location, "file:///exports/"))
		}
	})

	t.Run("ListExports_InvalidLimit", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/exports?limit=-3")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestWebAPI_CORS(t *testing.T) {
	testServer := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, testServer.URL+"/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.example")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Empty(t, resp2.Header.Get("Access-Control-Allow-Origin"))
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
