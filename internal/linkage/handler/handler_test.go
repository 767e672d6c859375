package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-service/internal/config"
	"linkage-service/internal/fileio"
)

const body = "nome1|nome2|nasc1|nasc2\n" +
	"Carlos Lima|Ana Souza|19800101|19991231\n" +
	"Ana Silva|Ana Silva|20200101|20200101\n"

func testConfig(t *testing.T) config.Config {
	return config.Config{
		MaxUploadMB:   8,
		Workers:       1,
		Delimiter:     '|',
		FreqCacheDir:  filepath.Join(t.TempDir(), "cache"),
		FreqChunkSize: 100,
	}
}

func newRequest(t *testing.T, fields map[string]string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "base.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(body))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/score", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestScoreCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	req := newRequest(t, map[string]string{
		"pairs": `[{"left":0,"right":1,"type":"N","label":"nome"},{"left":2,"right":3,"type":"d","label":"nasc"}]`,
	})
	Score(testConfig(t), zerolog.Nop())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "base_resultado.csv")
	assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))

	tbl, err := fileio.ReadTable(rec.Body, "out.csv", fileio.ReadOptions{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Len(t, tbl.Header, 4+7+5+1)
	// sorted by "nota final", highest first
	assert.Equal(t, "Ana Silva", tbl.Rows[0][0])
	assert.Equal(t, "nota final", tbl.Header[len(tbl.Header)-1])
}

func TestScoreXLSXKeepsOrder(t *testing.T) {
	rec := httptest.NewRecorder()
	req := newRequest(t, map[string]string{
		"pairs":   `[{"left":0,"right":1,"type":"T"}]`,
		"sort_by": "",
		"format":  "xlsx",
	})
	Score(testConfig(t), zerolog.Nop())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tbl, err := fileio.ReadTable(rec.Body, "out.xlsx", fileio.ReadOptions{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Carlos Lima", tbl.Rows[0][0])
}

func TestScorePatient(t *testing.T) {
	cfg := testConfig(t)
	rec := httptest.NewRecorder()
	req := newRequest(t, map[string]string{"patient": "0,0,2,1,1,3"})
	Score(cfg, zerolog.Nop())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.FileExists(t, filepath.Join(cfg.FreqCacheDir, "01_Frequencia_primeiro_nome_paciente.csv"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "nome1|nome2|nasc1|nasc2|prim frag igual"))
}

func TestScoreBadRequests(t *testing.T) {
	cases := map[string]map[string]string{
		"no pairs":     {},
		"bad json":     {"pairs": "[{"},
		"unknown type": {"pairs": `[{"left":0,"right":1,"type":"Q"}]`},
		"bad column":   {"pairs": `[{"left":0,"right":9,"type":"T"}]`},
		"bad sort":     {"pairs": `[{"left":0,"right":1,"type":"T"}]`, "sort_by": "nope"},
		"bad format":   {"pairs": `[{"left":0,"right":1,"type":"T"}]`, "format": "pdf"},
		"bad patient":  {"patient": "0,1,2"},
	}
	for name, fields := range cases {
		rec := httptest.NewRecorder()
		Score(testConfig(t), zerolog.Nop())(rec, newRequest(t, fields))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), name)
		assert.NotEmpty(t, resp["error"], name)
	}
}

func TestScoreMissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("pairs", "[]"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/score", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	Score(testConfig(t), zerolog.Nop())(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
