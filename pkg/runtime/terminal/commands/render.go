package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
	exportsvc "github.com/Samayeeta/indicure-ey/pkg/services/export"
)

const commandTimeout = 60 * time.Second

type RenderCmd struct {
	input   string
	output  string
	fs      afero.Fs
	exports exportsvc.Controller
}

func NewRenderCmd(fs afero.Fs, exports exportsvc.Controller) *cobra.Command {
	rc := &RenderCmd{fs: fs, exports: exports}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report file (JSON or YAML) to PDF",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "Path to the report (.json, .yaml)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "report.pdf", "Path of the PDF to write")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	report, err := readReport(rc.fs, rc.input)
	if err != nil {
		return err
	}

	out, err := rc.exports.Render(ctx, report, filepath.Base(rc.output))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", rc.input, err)
	}
	return writeDocument(cmd, rc.fs, rc.output, out)
}

func readReport(fs afero.Fs, path string) (domain.Report, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	return domain.DecodeReport(f, domain.FormatFromPath(path))
}

func writeDocument(cmd *cobra.Command, fs afero.Fs, path string, out *exportsvc.Export) error {
	if err := afero.WriteFile(fs, path, out.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmd.Printf("Wrote %s (%d bytes, sha256 %s)\n", path, out.Record.Size, out.Record.SHA256)
	if out.Record.Location != "" {
		cmd.Printf("Stored at %s\n", out.Record.Location)
	}
	return nil
}
