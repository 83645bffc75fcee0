package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Samayeeta/indicure-ey/pkg/document"
	"github.com/Samayeeta/indicure-ey/pkg/services/agents"
	"github.com/Samayeeta/indicure-ey/pkg/services/config"
	"github.com/Samayeeta/indicure-ey/pkg/store/blob"
	"github.com/Samayeeta/indicure-ey/pkg/store/duckdb"
	"github.com/Samayeeta/indicure-ey/pkg/store/duckdb/exports"
)

// Service bundles a controller with the resources it owns.
type Service struct {
	Analyzer   Analyzer
	Controller *DefaultController
	db         *sql.DB
}

func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewService wires the curated agents, the default composer, the configured
// destination and the audit database. An empty AuditDBPath disables the
// audit log.
func NewService(ctx context.Context, cfg *config.Config, blobs blob.Registry) (*Service, error) {
	logger := zerolog.Ctx(ctx)

	var store blob.Store
	if cfg.ExportDestination != "" {
		registry, err := config.NewDestinationRegistry(cfg.DestinationsPath)
		if err != nil {
			return nil, err
		}
		dest, err := registry.GetDestination(ctx, cfg.ExportDestination)
		if err != nil {
			return nil, err
		}
		if store, err = blobs.Create(ctx, dest); err != nil {
			return nil, fmt.Errorf("failed to create export destination %s: %w", dest, err)
		}
		logger.Info().Str("destination", dest.String()).Msg("Export destination configured")
	}

	svc := &Service{}
	var audit exports.Store
	if cfg.AuditDBPath != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.AuditDBPath})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		if audit, err = exports.NewStore(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create export store: %w", err)
		}
		svc.db = db
	}

	orchestrator := agents.NewOrchestrator(agents.NewCuratedSources())
	svc.Analyzer = orchestrator
	svc.Controller = NewController(orchestrator, document.DefaultComposer(), store, audit)
	return svc, nil
}
