package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Samayeeta/indicure-ey/pkg/adapters"
	"github.com/Samayeeta/indicure-ey/pkg/document/chart"
	"github.com/Samayeeta/indicure-ey/pkg/models/api"
	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
	"github.com/Samayeeta/indicure-ey/pkg/services/agents"
	"github.com/Samayeeta/indicure-ey/pkg/services/export"
)

// DefaultReportQuery is the canned query behind GET /api/report/pdf.
const DefaultReportQuery = "Assess repurposing potential of Ranolazine for HFpEF"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._+-]`)

type Handler struct {
	analyzer export.Analyzer
	exports  export.Controller
}

func NewHandler(analyzer export.Analyzer, exports export.Controller) *Handler {
	return &Handler{
		analyzer: analyzer,
		exports:  exports,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.HealthStatus{Status: "ok"})
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	analysis, err := h.analyzer.Run(ctx, req.Query, req.Geography)
	if err != nil {
		writeError(w, r, err, "failed to run analysis")
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapAnalysisDomainToApi(*analysis, agents.Trace()))
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	out, err := h.exports.Export(r.Context(), export.Request{
		Query:     req.Query,
		Mode:      req.Mode,
		Geography: req.Geography,
		Filename:  export.DefaultFilename,
	})
	if err != nil {
		writeError(w, r, err, "failed to export report")
		return
	}
	writePDF(w, r, out)
}

// ReportPDF renders the canned report for the mode and geography given in
// the query string.
func (h *Handler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := valueOr(q.Get("mode"), api.ModeGeneral)
	geo := valueOr(q.Get("geo"), api.GeographyIndia)

	var appendix bool
	if raw := q.Get("appendix"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid appendix value %q", raw), http.StatusUnprocessableEntity)
			return
		}
		appendix = v
	}

	out, err := h.exports.Export(r.Context(), export.Request{
		Query:     DefaultReportQuery,
		Mode:      mode,
		Geography: geo,
		Appendix:  appendix,
		Filename:  sanitizeFilename(fmt.Sprintf("IndiCure_Ranolazine_HFpEF_%s_%s.pdf", geo, mode)),
	})
	if err != nil {
		writeError(w, r, err, "failed to export report")
		return
	}
	writePDF(w, r, out)
}

// Render builds a document from a report posted as JSON, or YAML when the
// content type says so.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	format := domain.FormatJSON
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		switch mt {
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = domain.FormatYAML
		}
	}

	report, err := domain.DecodeReport(r.Body, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	out, err := h.exports.Render(r.Context(), report, r.URL.Query().Get("filename"))
	if err != nil {
		writeError(w, r, err, "failed to render report")
		return
	}
	writePDF(w, r, out)
}

func (h *Handler) ListExports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusUnprocessableEntity)
			return
		}
		limit = v
	}

	records, err := h.exports.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, err, "failed to list exports")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapExportListDomainToApi(records))
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (api.AnalyzeRequest, bool) {
	var req api.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusUnprocessableEntity)
		return req, false
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return req, false
	}
	return req, true
}

// writeError answers 422 for input the document engine rejected and 500 for
// everything else.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := http.StatusInternalServerError
	if errors.Is(err, api.ErrInvalidRequest) || errors.Is(err, chart.ErrNonNumeric) {
		status = http.StatusUnprocessableEntity
	}

	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Int("status", status).
		Msg(msg)

	if status == http.StatusUnprocessableEntity {
		http.Error(w, err.Error(), status)
		return
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writePDF(w http.ResponseWriter, r *http.Request, out *export.Export) {
	name := sanitizeFilename(out.Record.Filename)
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.Header().Set("X-Export-Id", out.Record.ID)
	if _, err := w.Write(out.Data); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("export_id", out.Record.ID).
			Msg("failed to write document")
	}
}

func sanitizeFilename(name string) string {
	return unsafeFilename.ReplaceAllString(name, "_")
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
