package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-service/internal/linkage/model"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "WORKERS", "FREQ_CACHE_DIR", "FREQ_CHUNK_SIZE", "DELIMITER", "PPROF"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, 8082, cfg.Port)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, ".freq_cache", cfg.FreqCacheDir)
	assert.Equal(t, 500000, cfg.FreqChunkSize)
	assert.Equal(t, '|', cfg.Delimiter)
	assert.False(t, cfg.Pprof)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKERS", "3")
	t.Setenv("DELIMITER", `\t`)
	t.Setenv("FREQ_CHUNK_SIZE", "-4")
	t.Setenv("PPROF", "true")
	cfg := Load()
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, '\t', cfg.Delimiter)
	assert.Equal(t, 500000, cfg.FreqChunkSize)
	assert.True(t, cfg.Pprof)
}

var testCfg = Config{Delimiter: '|', Workers: 2, FreqCacheDir: ".freq_cache", FreqChunkSize: 1000}

func TestParseJobPairs(t *testing.T) {
	job, err := ParseJob([]byte(`
input: base.csv
delimiter: ";"
pairs:
  - {left: 0, right: 3, type: n, label: nome}
  - {left: 2, right: 5, type: D, label: nasc}
`), testCfg)
	require.NoError(t, err)
	assert.Equal(t, "base.csv", job.Input)
	assert.Equal(t, "base_resultado", job.Output)
	assert.Equal(t, ';', job.Delimiter)
	assert.Equal(t, model.TotalColumn, job.SortBy)
	assert.Equal(t, 2, job.Workers)
	assert.Nil(t, job.Patient)
	assert.Equal(t, []model.FieldPair{
		{Left: 0, Right: 3, Type: model.Name, Label: "nome"},
		{Left: 2, Right: 5, Type: model.Date, Label: "nasc"},
	}, job.Pairs)
}

func TestParseJobEmptySortKeepsOrder(t *testing.T) {
	job, err := ParseJob([]byte("input: a.csv\nsort_by: \"\"\npairs: [{left: 0, right: 1, type: T}]\n"), testCfg)
	require.NoError(t, err)
	assert.Equal(t, "", job.SortBy)
}

func TestParseJobPatient(t *testing.T) {
	job, err := ParseJob([]byte("input: a.csv\npatient:\n  columns: [0, 1, 2, 3, 4, 5]\n"), testCfg)
	require.NoError(t, err)
	require.NotNil(t, job.Patient)
	assert.Equal(t, [6]int{0, 1, 2, 3, 4, 5}, job.Patient.Columns)
	assert.Equal(t, ".freq_cache", job.Patient.CacheDir)
	assert.Equal(t, 1000, job.Patient.ChunkSize)
}

func TestParseJobErrors(t *testing.T) {
	cases := map[string]string{
		"no input":      "pairs: [{left: 0, right: 1, type: T}]",
		"unknown type":  "input: a.csv\npairs: [{left: 0, right: 1, type: Z}]",
		"negative":      "input: a.csv\npairs: [{left: -1, right: 1, type: T}]",
		"no pairs":      "input: a.csv",
		"short patient": "input: a.csv\npatient: {columns: [0, 1]}",
		"both":          "input: a.csv\npairs: [{left: 0, right: 1, type: T}]\npatient: {columns: [0, 1, 2, 3, 4, 5]}",
	}
	for name, doc := range cases {
		_, err := ParseJob([]byte(doc), testCfg)
		assert.Error(t, err, name)
	}

	_, err := ParseJob([]byte("input: a.csv\npairs: [{left: 0, right: 1, type: Z}]"), testCfg)
	assert.ErrorIs(t, err, model.ErrUnknownType)
}

func TestLoadJobResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: in/base.csv\noutput: out/res.xlsx\npairs: [{left: 0, right: 1, type: C}]\n"), 0o644))

	job, err := LoadJob(path, testCfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "in", "base.csv"), job.Input)
	assert.Equal(t, filepath.Join(dir, "out", "res.xlsx"), job.Output)
}
