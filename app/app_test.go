package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/kpaths/config"
	"github.com/AnkushinDaniil/kpaths/entity"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "kpaths")
	return cfg
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestRun_WritesBothFiles(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, New(cfg).Run(context.Background()))

	lattice, err := entity.NewLattice(cfg.A)
	require.NoError(t, err)

	var zoom entity.ZoomPath
	readJSON(t, filepath.Join(cfg.OutputDir, ZoomFile), &zoom)
	assert.Len(t, zoom.QX, 162)
	assert.Len(t, zoom.QY, 162)
	assert.Len(t, zoom.KX, 162)
	assert.Len(t, zoom.KY, 162)
	assert.Equal(t, entity.NewPoint(lattice.K), zoom.K)
	assert.NotEmpty(t, zoom.RangeDescription)

	var loop entity.ClosedLoop
	readJSON(t, filepath.Join(cfg.OutputDir, LoopFile), &loop)
	assert.Len(t, loop.KX, 600)
	assert.Len(t, loop.KY, 600)
	assert.Equal(t, entity.NewPoint(lattice.Gamma), loop.Gamma)
	assert.Equal(t, entity.NewPoint(lattice.K), loop.K)
	assert.Equal(t, entity.NewPoint(lattice.M0), loop.M0)
	assert.Equal(t, []entity.Segment{
		{Name: "Γ→K", Start: 0, End: 200},
		{Name: "K→M0", Start: 200, End: 400},
		{Name: "M0→Γ", Start: 400, End: 600},
	}, loop.Segments)
	assert.NoError(t, loop.CheckPartition())
}

func TestRun_Schema(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, New(cfg).Run(context.Background()))

	var zoom map[string]json.RawMessage
	readJSON(t, filepath.Join(cfg.OutputDir, ZoomFile), &zoom)
	assert.ElementsMatch(t, []string{"qx", "qy", "kx", "ky", "K", "range_description"}, keys(zoom))

	var loop map[string]json.RawMessage
	readJSON(t, filepath.Join(cfg.OutputDir, LoopFile), &loop)
	assert.ElementsMatch(t, []string{"kx", "ky", "Gamma", "K", "M0", "segments", "description"}, keys(loop))

	var k map[string]float64
	require.NoError(t, json.Unmarshal(loop["K"], &k))
	assert.Contains(t, k, "kx")
	assert.Contains(t, k, "ky")
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestRun_ExistingDirectory(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))

	require.NoError(t, New(cfg).Run(context.Background()))
	require.NoError(t, New(cfg).Run(context.Background()))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{ZoomFile, LoopFile}, names)
}

func TestRun_Mode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mode = "zoom"
	require.NoError(t, New(cfg).Run(context.Background()))

	assert.FileExists(t, filepath.Join(cfg.OutputDir, ZoomFile))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, LoopFile))

	cfg = testConfig(t)
	cfg.Mode = "loop"
	require.NoError(t, New(cfg).Run(context.Background()))

	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, ZoomFile))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, LoopFile))
}

func TestRun_InvalidLattice(t *testing.T) {
	cfg := testConfig(t)
	cfg.A = 0

	err := New(cfg).Run(context.Background())
	require.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestRun_OutOfRangeParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"oversampled zoom segment", func(c *config.Config) { c.NKDensity = 1e16 }},
		{"oversampled loop", func(c *config.Config) { c.NPoints = entity.MaxPoints + 1 }},
		{"reciprocal lattice overflows", func(c *config.Config) { c.A = 1e-310 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)

			var err error
			require.NotPanics(t, func() { err = New(cfg).Run(context.Background()) })
			require.ErrorIs(t, err, entity.ErrInvalidInput)
			assert.NoDirExists(t, cfg.OutputDir)
		})
	}
}

func TestRun_OutputIsFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.OutputDir, []byte("x"), 0o644))

	err := New(cfg).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_Canceled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(cfg).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, ZoomFile))
}

func TestWriteJSON_NoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, writeJSON(path, map[string]int{"a": 1}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteJSON_MissingDir(t *testing.T) {
	err := writeJSON(filepath.Join(t.TempDir(), "missing", "out.json"), 1)
	assert.Error(t, err)
}
