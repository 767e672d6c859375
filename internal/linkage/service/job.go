package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"linkage-service/internal/config"
	"linkage-service/internal/fileio"
	"linkage-service/internal/linkage/freq"
	"linkage-service/internal/linkage/model"
)

// PatientPairs expands the six columns (Nome1, Mae1, Nasc1, Nome2, Mae2,
// Nasc2) of the fixed run into subject name, mother name and birth date.
func PatientPairs(cols [6]int) []model.FieldPair {
	return []model.FieldPair{
		{Left: cols[0], Right: cols[3], Type: model.Name, Role: model.RoleSubject},
		{Left: cols[1], Right: cols[4], Type: model.Name, Label: "mae", Role: model.RoleMother},
		{Left: cols[2], Right: cols[5], Type: model.Date, Role: model.RoleBirth},
	}
}

// RunJob reads job.Input, scores it and writes job.Output. It returns the
// path actually written.
func RunJob(ctx context.Context, job config.Job, progress ProgressFunc, logger zerolog.Logger) (string, error) {
	tbl, err := fileio.ReadFile(job.Input, fileio.ReadOptions{Delimiter: job.Delimiter})
	if err != nil {
		return "", err
	}

	pairs := job.Pairs
	if job.Patient != nil {
		pairs = PatientPairs(job.Patient.Columns)
	}
	p := New(pairs, Options{
		SortBy:    job.SortBy,
		Ascending: job.Ascending,
		Workers:   job.Workers,
		Progress:  progress,
		Logger:    logger,
	})
	log := p.log.With().Str("input", filepath.Base(job.Input)).Logger()

	var src freq.Source = freq.TableSource{Table: tbl}
	if strings.EqualFold(filepath.Ext(job.Input), ".csv") {
		src = fileio.CSVSource{Path: job.Input, Delimiter: job.Delimiter}
	}
	out, err := p.Run(ctx, tbl, Frequencies(tbl, pairs, job.Patient, src, log))
	if err != nil {
		return "", err
	}

	path, err := fileio.WriteFile(job.Output, out, job.Delimiter)
	if err != nil {
		return "", err
	}
	p.Finish()
	log.Info().Str("output", path).Msg("job done")
	return path, nil
}

// Frequencies picks how Run gets its frequency context: ad hoc maps from
// tbl, or for a patient run the six-file cache built from src.
func Frequencies(tbl *model.Table, pairs []model.FieldPair, patient *config.PatientJob, src freq.Source, log zerolog.Logger) func() (freq.Set, error) {
	return func() (freq.Set, error) {
		if patient == nil {
			return freq.FromTable(tbl, pairs), nil
		}
		maps, hit, err := freq.BuildOrLoad(patient.CacheDir, patient.ChunkSize, src, patient.Columns, log)
		if err != nil {
			return nil, err
		}
		log.Debug().Bool("cache_hit", hit).Msg("frequencies ready")
		return freq.FromRoles(pairs, maps), nil
	}
}
