package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samayeeta/indicure-ey/pkg/services/config"
	"github.com/Samayeeta/indicure-ey/pkg/store/blob"
)

func TestNewService(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "exports")
	ini := filepath.Join(dir, "destinations.ini")
	require.NoError(t, os.WriteFile(ini, []byte(fmt.Sprintf("[local]\ntype = file\ndir = %s\n", outDir)), 0o600))

	svc, err := NewService(ctx, &config.Config{
		AuditDBPath:       ":memory:",
		DestinationsPath:  ini,
		ExportDestination: "local",
		ShutdownTimeout:   time.Second,
	}, blob.DefaultRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	out, err := svc.Controller.Export(ctx, Request{Query: "Ranolazine for HFpEF", Mode: "General", Geography: "India"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Record.Location, "file://"))

	stored, err := os.ReadFile(strings.TrimPrefix(out.Record.Location, "file://"))
	require.NoError(t, err)
	assert.Equal(t, out.Data, stored)

	records, err := svc.Controller.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, out.Record.ID, records[0].ID)
}

func TestNewService_WithoutStores(t *testing.T) {
	svc, err := NewService(context.Background(), &config.Config{}, blob.DefaultRegistry())
	require.NoError(t, err)
	assert.NoError(t, svc.Close())

	records, err := svc.Controller.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewService_UnknownDestination(t *testing.T) {
	ini := filepath.Join(t.TempDir(), "destinations.ini")
	require.NoError(t, os.WriteFile(ini, []byte("[local]\ntype = file\ndir = /tmp\n"), 0o600))

	_, err := NewService(context.Background(), &config.Config{
		DestinationsPath:  ini,
		ExportDestination: "archive",
	}, blob.DefaultRegistry())
	assert.ErrorIs(t, err, config.ErrUnknownDestination)
}
