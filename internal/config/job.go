package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"linkage-service/internal/linkage/model"
)

// Job is one batch scoring run read from a YAML file.
type Job struct {
	Input     string
	Output    string
	Delimiter rune
	SortBy    string // "" keeps input order
	Ascending bool
	Workers   int
	Pairs     []model.FieldPair
	Patient   *PatientJob
}

// PatientJob is the fixed subject/mother/birth-date run with cached
// frequencies. Columns are Nome1, Mae1, Nasc1, Nome2, Mae2, Nasc2.
type PatientJob struct {
	Columns   [6]int
	CacheDir  string
	ChunkSize int
}

type jobFile struct {
	Input     string     `yaml:"input"`
	Output    string     `yaml:"output"`
	Delimiter string     `yaml:"delimiter"`
	SortBy    *string    `yaml:"sort_by"`
	Ascending bool       `yaml:"ascending"`
	Workers   int        `yaml:"workers"`
	Pairs     []pairFile `yaml:"pairs"`
	Patient   *struct {
		Columns   []int  `yaml:"columns"`
		CacheDir  string `yaml:"cache_dir"`
		ChunkSize int    `yaml:"chunk_size"`
	} `yaml:"patient"`
}

type pairFile struct {
	Left  int    `yaml:"left"`
	Right int    `yaml:"right"`
	Type  string `yaml:"type"`
	Label string `yaml:"label"`
}

// LoadJob reads a job file. Missing settings fall back to cfg; relative
// paths are resolved against the job file's directory.
func LoadJob(path string, cfg Config) (Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Job{}, err
	}
	job, err := ParseJob(b, cfg)
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	job.Input = resolve(base, job.Input)
	job.Output = resolve(base, job.Output)
	if job.Patient != nil {
		job.Patient.CacheDir = resolve(base, job.Patient.CacheDir)
	}
	return job, nil
}

// ParseJob decodes and validates a job document.
func ParseJob(b []byte, cfg Config) (Job, error) {
	var f jobFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Job{}, err
	}
	if strings.TrimSpace(f.Input) == "" {
		return Job{}, errors.New("input is required")
	}

	job := Job{
		Input:     f.Input,
		Output:    f.Output,
		Delimiter: cfg.Delimiter,
		SortBy:    model.TotalColumn,
		Ascending: f.Ascending,
		Workers:   cfg.Workers,
	}
	if job.Output == "" {
		job.Output = strings.TrimSuffix(f.Input, filepath.Ext(f.Input)) + "_resultado"
	}
	if f.Delimiter != "" {
		job.Delimiter = delimiter(f.Delimiter)
	}
	if f.SortBy != nil {
		job.SortBy = *f.SortBy
	}
	if f.Workers != 0 {
		job.Workers = f.Workers
	}

	for i, p := range f.Pairs {
		t, err := model.ParseTypeCode(p.Type)
		if err != nil {
			return Job{}, fmt.Errorf("pair %d: %w", i, err)
		}
		if p.Left < 0 || p.Right < 0 {
			return Job{}, fmt.Errorf("pair %d: %w", i, model.ErrColumnIndex)
		}
		job.Pairs = append(job.Pairs, model.FieldPair{Left: p.Left, Right: p.Right, Type: t, Label: p.Label})
	}

	if f.Patient != nil {
		if len(f.Patient.Columns) != 6 {
			return Job{}, fmt.Errorf("patient.columns: want 6 indices, got %d", len(f.Patient.Columns))
		}
		pj := &PatientJob{CacheDir: f.Patient.CacheDir, ChunkSize: f.Patient.ChunkSize}
		copy(pj.Columns[:], f.Patient.Columns)
		if pj.CacheDir == "" {
			pj.CacheDir = cfg.FreqCacheDir
		}
		if pj.ChunkSize <= 0 {
			pj.ChunkSize = cfg.FreqChunkSize
		}
		job.Patient = pj
	}

	switch {
	case job.Patient != nil && len(job.Pairs) > 0:
		return Job{}, errors.New("pairs and patient are mutually exclusive")
	case job.Patient == nil && len(job.Pairs) == 0:
		return Job{}, errors.New("no pairs configured")
	}
	return job, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
