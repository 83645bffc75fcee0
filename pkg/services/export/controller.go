// Package export turns analyses into PDF documents, copies them to the
// configured destination and records them in the audit log.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Samayeeta/indicure-ey/pkg/adapters"
	"github.com/Samayeeta/indicure-ey/pkg/document/normalize"
	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
	"github.com/Samayeeta/indicure-ey/pkg/store/blob"
	"github.com/Samayeeta/indicure-ey/pkg/store/duckdb/exports"
)

const (
	ContentType     = "application/pdf"
	DefaultFilename = "indicure_ranolazine_report.pdf"
	RenderFilename  = "report.pdf"
)

type Analyzer interface {
	Run(ctx context.Context, query, geography string) (*domain.Analysis, error)
}

type Renderer interface {
	Build(report domain.Report) ([]byte, error)
}

type Request struct {
	Query     string
	Mode      string
	Geography string
	Appendix  bool
	Filename  string
}

type Export struct {
	Record domain.ExportRecord
	Data   []byte
}

type Controller interface {
	// Export runs a fresh analysis and renders it.
	Export(ctx context.Context, req Request) (*Export, error)
	// Render renders a caller-supplied report.
	Render(ctx context.Context, report domain.Report, filename string) (*Export, error)
	List(ctx context.Context, limit int) ([]domain.ExportRecord, error)
}

type DefaultController struct {
	analyzer Analyzer
	renderer Renderer
	blobs    blob.Store
	audit    exports.Store

	now   func() time.Time
	newID func() string
}

// NewController wires the export pipeline. blobs and audit are optional;
// without them documents are only returned to the caller.
func NewController(analyzer Analyzer, renderer Renderer, blobs blob.Store, audit exports.Store) *DefaultController {
	return &DefaultController{
		analyzer: analyzer,
		renderer: renderer,
		blobs:    blobs,
		audit:    audit,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
}

func (ctrl *DefaultController) Export(ctx context.Context, req Request) (*Export, error) {
	analysis, err := ctrl.analyzer.Run(ctx, req.Query, req.Geography)
	if err != nil {
		return nil, fmt.Errorf("failed to run analysis: %w", err)
	}

	report, err := analysis.Report(req.Mode, req.Appendix)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	filename := req.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	return ctrl.publish(ctx, report, filename, req.Mode, req.Geography)
}

func (ctrl *DefaultController) Render(ctx context.Context, report domain.Report, filename string) (*Export, error) {
	if filename == "" {
		filename = RenderFilename
	}
	return ctrl.publish(ctx, report, filename, normalize.Default().Mode(report), "")
}

func (ctrl *DefaultController) List(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	if ctrl.audit == nil {
		return []domain.ExportRecord{}, nil
	}

	records, err := ctrl.audit.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}

	res := make([]domain.ExportRecord, 0, len(records))
	for _, r := range records {
		res = append(res, adapters.MapStoreExportToDomain(r))
	}
	return res, nil
}

// publish renders the report and hands the finished document to storage and
// the audit log. Only rendering errors fail the export.
func (ctrl *DefaultController) publish(
	ctx context.Context,
	report domain.Report,
	filename, mode, geography string,
) (*Export, error) {
	data, err := ctrl.renderer.Build(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	sum := sha256.Sum256(data)
	record := domain.ExportRecord{
		ID:        ctrl.newID(),
		Filename:  filename,
		Mode:      mode,
		Geography: geography,
		Size:      int64(len(data)),
		SHA256:    hex.EncodeToString(sum[:]),
		CreatedAt: ctrl.now(),
	}

	logger := zerolog.Ctx(ctx).With().
		Str("export_id", record.ID).
		Str("filename", filename).
		Int64("size_bytes", record.Size).
		Logger()

	if ctrl.blobs != nil {
		key := fmt.Sprintf("%s/%s-%s", record.CreatedAt.Format("2006/01/02"), record.ID, filename)
		location, err := ctrl.blobs.Put(ctx, key, data, ContentType)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to store export")
		} else {
			record.Location = location
		}
	}

	if ctrl.audit != nil {
		if err := ctrl.audit.Record(ctx, adapters.MapDomainExportToStore(record)); err != nil {
			logger.Error().Err(err).Msg("Failed to record export")
		}
	}

	logger.Info().Str("location", record.Location).Msg("Export completed")
	return &Export{Record: record, Data: data}, nil
}
