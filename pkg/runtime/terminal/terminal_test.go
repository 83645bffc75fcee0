package terminal

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samayeeta/indicure-ey/pkg/document"
	"github.com/Samayeeta/indicure-ey/pkg/models/api"
	"github.com/Samayeeta/indicure-ey/pkg/services/agents"
	exportsvc "github.com/Samayeeta/indicure-ey/pkg/services/export"
)

type fixture struct {
	fs  afero.Fs
	out *bytes.Buffer
	cli *CLI
}

func setupFixture(t *testing.T) *fixture {
	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	composer := document.DefaultComposer()
	ctrl := exportsvc.NewController(agents.NewOrchestrator(agents.NewCuratedSources()), composer, nil, nil)

	return &fixture{
		fs:  fs,
		out: out,
		cli: NewCLI(Options{Exports: ctrl, Composer: composer, Fs: fs, Output: out}),
	}
}

func (f *fixture) run(args ...string) error {
	return f.cli.ExecuteContext(context.Background(), args...)
}

func TestCLI_Styles(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, f.run("styles"))

	out := f.out.String()
	assert.Contains(t, out, "h1")
	assert.Contains(t, out, "Helvetica-Bold 16/20pt")
	assert.Contains(t, out, "char-wrap")
}

func TestCLI_Render(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, "/in/report.yaml", []byte("executive_summary: From YAML.\nmode: Clinical\n"), 0o644))

	require.NoError(t, f.run("render", "--input", "/in/report.yaml", "--output", "/out/report.pdf"))

	data, err := afero.ReadFile(f.fs, "/out/report.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, f.out.String(), "Wrote /out/report.pdf")
}

func TestCLI_RenderErrors(t *testing.T) {
	t.Run("missing input flag", func(t *testing.T) {
		f := setupFixture(t)
		assert.Error(t, f.run("render"))
	})

	t.Run("missing file", func(t *testing.T) {
		f := setupFixture(t)
		assert.ErrorContains(t, f.run("render", "-i", "/nope.json"), "failed to open report")
	})

	t.Run("non-numeric chart", func(t *testing.T) {
		f := setupFixture(t)
		require.NoError(t, afero.WriteFile(f.fs, "/bad.json", []byte(`{"charts":{"lvedv_change_ml":{"A":"x"}}}`), 0o644))
		assert.Error(t, f.run("render", "-i", "/bad.json", "-o", "/bad.pdf"))

		exists, err := afero.Exists(f.fs, "/bad.pdf")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestCLI_Export(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, f.run("export", "--mode", "Patent", "--appendix", "-o", "/exports/out.pdf"))

	data, err := afero.ReadFile(f.fs, "/exports/out.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestCLI_ExportInvalidRequest(t *testing.T) {
	f := setupFixture(t)
	err := f.run("export", "--mode", "Regulatory")
	assert.ErrorIs(t, err, api.ErrInvalidRequest)
}

func TestCLI_Outline(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, "/r.json", []byte(`{"raw_agent_output":"line 1\nline 2"}`), 0o644))

	require.NoError(t, f.run("outline", "-i", "/r.json"))

	out := f.out.String()
	assert.Contains(t, out, document.Title)
	assert.Contains(t, out, "Forced pages: 2")
	assert.Contains(t, out, "=== Executive Summary ===")
	assert.Contains(t, out, "=== Appendix: Raw Agent Output ===")
	assert.Contains(t, out, "4 rows: Metric, Rating, Rationale")
	assert.Contains(t, out, "lvedv_change_ml (PNG, 468x234 pt)")
}
