package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Samayeeta/indicure-ey/pkg/models/api"
	exportsvc "github.com/Samayeeta/indicure-ey/pkg/services/export"
)

const defaultQuery = "Assess repurposing potential of Ranolazine for HFpEF"

type ExportCmd struct {
	query    string
	mode     string
	geo      string
	appendix bool
	output   string
	fs       afero.Fs
	exports  exportsvc.Controller
}

func NewExportCmd(fs afero.Fs, exports exportsvc.Controller) *cobra.Command {
	ec := &ExportCmd{fs: fs, exports: exports}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run an analysis and export it as PDF",
		RunE:  ec.run,
	}

	cmd.Flags().StringVarP(&ec.query, "query", "q", defaultQuery, "Repurposing question")
	cmd.Flags().StringVarP(&ec.mode, "mode", "m", api.ModeGeneral, "Analysis mode (General, Clinical, Patent, Market)")
	cmd.Flags().StringVar(&ec.geo, "geo", api.GeographyIndia, "Target geography")
	cmd.Flags().BoolVar(&ec.appendix, "appendix", false, "Attach the raw agent output")
	cmd.Flags().StringVarP(&ec.output, "output", "o", exportsvc.DefaultFilename, "Path of the PDF to write")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	req := api.AnalyzeRequest{Query: ec.query, Mode: ec.mode, Geography: ec.geo}
	if err := req.Validate(); err != nil {
		return err
	}

	out, err := ec.exports.Export(ctx, exportsvc.Request{
		Query:     req.Query,
		Mode:      req.Mode,
		Geography: req.Geography,
		Appendix:  ec.appendix,
		Filename:  filepath.Base(ec.output),
	})
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	return writeDocument(cmd, ec.fs, ec.output, out)
}
