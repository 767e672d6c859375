package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"linkage-service/internal/config"
	"linkage-service/internal/fileio"
	"linkage-service/internal/linkage/freq"
	"linkage-service/internal/linkage/model"
	"linkage-service/internal/linkage/service"
)

type pairReq struct {
	Left  int    `json:"left"`
	Right int    `json:"right"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Score returns the POST /score handler. The multipart form carries the
// table in "file" and either "pairs" (JSON list of {left,right,type,label})
// or "patient" (six comma separated column indices). The scored table comes
// back as an attachment.
func Score(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
			log = logger.With().Str("req_id", reqID).Logger()
		}
		defer r.Body.Close()

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			badRequest(w, "bad multipart form: "+err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			badRequest(w, "missing file: "+err.Error())
			return
		}
		defer file.Close()

		delim := cfg.Delimiter
		if d := r.FormValue("delimiter"); d != "" {
			delim = []rune(d)[0]
		}
		tbl, err := fileio.ReadTable(file, header.Filename, fileio.ReadOptions{Delimiter: delim})
		if err != nil {
			badRequest(w, "failed to read file: "+err.Error())
			return
		}

		pairs, patient, err := parsePairs(r, cfg)
		if err != nil {
			badRequest(w, err.Error())
			return
		}

		sortBy := model.TotalColumn
		if _, ok := r.MultipartForm.Value["sort_by"]; ok {
			sortBy = r.FormValue("sort_by")
		}
		format := strings.ToLower(r.FormValue("format"))
		if format == "" {
			format = "csv"
		}
		if format != "csv" && format != "xlsx" {
			badRequest(w, "format must be csv or xlsx")
			return
		}

		p := service.New(pairs, service.Options{
			SortBy:    sortBy,
			Ascending: toBool(r.FormValue("ascending"), false),
			Workers:   atoi(r.FormValue("workers"), cfg.Workers),
			Logger:    log,
		})
		out, err := p.Run(r.Context(), tbl, service.Frequencies(tbl, pairs, patient, freq.TableSource{Table: tbl}, log))
		switch {
		case errors.Is(err, service.ErrSortColumn), errors.Is(err, model.ErrColumnIndex), errors.Is(err, model.ErrUnknownType):
			badRequest(w, err.Error())
			return
		case err != nil:
			log.Error().Err(err).Msg("score")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "scoring failed"})
			return
		}

		name := strings.TrimSuffix(header.Filename, pathExt(header.Filename)) + "_resultado." + format
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Run-ID", p.RunID())
		if format == "xlsx" {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			err = fileio.WriteXLSX(w, out)
		} else {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			err = fileio.WriteCSV(w, out, delim)
		}
		if err != nil {
			log.Error().Err(err).Msg("write response")
			return
		}
		p.Finish()

		log.Info().
			Str("file", header.Filename).
			Str("rows", humanize.Comma(int64(tbl.Len()))).
			Int("pairs", len(pairs)).
			Dur("elapsed", time.Since(start)).
			Msg("score done")
	}
}

// parsePairs reads either "pairs" or "patient" from the form.
func parsePairs(r *http.Request, cfg config.Config) ([]model.FieldPair, *config.PatientJob, error) {
	if raw := strings.TrimSpace(r.FormValue("patient")); raw != "" {
		parts := strings.Split(raw, ",")
		if len(parts) != 6 {
			return nil, nil, fmt.Errorf("patient: want 6 column indices, got %d", len(parts))
		}
		pj := &config.PatientJob{CacheDir: cfg.FreqCacheDir, ChunkSize: cfg.FreqChunkSize}
		for i, s := range parts {
			n := atoi(strings.TrimSpace(s), -1)
			if n < 0 {
				return nil, nil, fmt.Errorf("patient: bad column index %q", s)
			}
			pj.Columns[i] = n
		}
		return service.PatientPairs(pj.Columns), pj, nil
	}

	var reqs []pairReq
	if err := json.Unmarshal([]byte(r.FormValue("pairs")), &reqs); err != nil {
		return nil, nil, fmt.Errorf("pairs: %w", err)
	}
	if len(reqs) == 0 {
		return nil, nil, errors.New("pairs: at least one pair is required")
	}
	pairs := make([]model.FieldPair, 0, len(reqs))
	for i, pr := range reqs {
		t, err := model.ParseTypeCode(pr.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("pair %d: %w", i, err)
		}
		pairs = append(pairs, model.FieldPair{Left: pr.Left, Right: pr.Right, Type: t, Label: pr.Label})
	}
	return pairs, nil, nil
}
