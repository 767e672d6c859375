package freq

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"linkage-service/internal/linkage/model"
	"linkage-service/internal/linkage/textnorm"
)

// FileNames are the cache files in RoleMaps order: subject first/middle/last,
// then mother first/middle/last.
var FileNames = [6]string{
	"01_Frequencia_primeiro_nome_paciente.csv",
	"02_Frequencia_nome_do_meio_paciente.csv",
	"03_Frequencia_ultimo_nome_paciente.csv",
	"04_Frequencia_primeiro_nome_mae.csv",
	"05_Frequencia_nome_do_meio_mae.csv",
	"06_Frequencia_ultimo_nome_mae.csv",
}

const cacheSep = ';'

// buildMu serializes BuildOrLoad so that concurrent runs sharing a cache
// dir never count or read a half-written set.
var buildMu sync.Mutex

// RoleMaps are the six persisted maps of the subject/mother run.
type RoleMaps [6]model.FreqMap

// Triple returns the first/middle/last maps of a role.
func (m RoleMaps) Triple(r model.Role) *model.NameFreq {
	base := 0
	switch r {
	case model.RoleSubject:
	case model.RoleMother:
		base = 3
	default:
		return nil
	}
	return &model.NameFreq{First: m[base], Middle: m[base+1], Last: m[base+2]}
}

// Source streams selected columns of a table in chunks of at most size rows,
// header excluded.
type Source interface {
	EachChunk(size int, cols []int, fn func(rows [][]string) error) error
}

// Cached reports whether all six files exist in dir.
func Cached(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// BuildOrLoad returns the six maps for a subject/mother run. When every
// cache file is present in dir they are loaded as is, whatever the input.
// Otherwise the name columns of src are counted chunk by chunk, written to
// dir and read back through Load. cols are (Nome1, Mae1, Nasc1, Nome2,
// Mae2, Nasc2); only the four name columns are read.
func BuildOrLoad(dir string, chunkSize int, src Source, cols [6]int, logger zerolog.Logger) (RoleMaps, bool, error) {
	buildMu.Lock()
	defer buildMu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return RoleMaps{}, false, fmt.Errorf("freq cache dir: %w", err)
	}
	if Cached(dir) {
		maps, err := Load(dir)
		if err == nil {
			logger.Info().Str("dir", dir).Msg("frequency cache hit")
		}
		return maps, true, err
	}

	subject, mother := NewNameFreq(), NewNameFreq()
	var rows uint64
	err := src.EachChunk(chunkSize, []int{cols[0], cols[1], cols[3], cols[4]}, func(chunk [][]string) error {
		for _, r := range chunk {
			AddName(subject, textnorm.Normalize(cell(r, 0)))
			AddName(mother, textnorm.Normalize(cell(r, 1)))
			AddName(subject, textnorm.Normalize(cell(r, 2)))
			AddName(mother, textnorm.Normalize(cell(r, 3)))
		}
		rows += uint64(len(chunk))
		logger.Debug().Str("rows", humanize.Comma(int64(rows))).Msg("frequency chunk counted")
		return nil
	})
	if err != nil {
		return RoleMaps{}, false, fmt.Errorf("freq build: %w", err)
	}

	built := RoleMaps{subject.First, subject.Middle, subject.Last, mother.First, mother.Middle, mother.Last}
	for i, m := range built {
		if err := writeMap(filepath.Join(dir, FileNames[i]), m); err != nil {
			return RoleMaps{}, false, err
		}
	}
	logger.Info().Str("dir", dir).Str("rows", humanize.Comma(int64(rows))).Msg("frequency cache written")

	maps, err := Load(dir)
	return maps, false, err
}

func cell(r []string, i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

// Load reads the six files from dir. Keys are lower-cased.
func Load(dir string) (RoleMaps, error) {
	var maps RoleMaps
	for i, name := range FileNames {
		m, err := readMap(filepath.Join(dir, name))
		if err != nil {
			return RoleMaps{}, err
		}
		maps[i] = m
	}
	return maps, nil
}

func readMap(path string) (model.FreqMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("freq load: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = cacheSep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	m := model.FreqMap{}
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("freq load %s: %w", filepath.Base(path), err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("freq load %s:%d: expected token;count", filepath.Base(path), line)
		}
		n, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("freq load %s:%d: %w", filepath.Base(path), line, err)
		}
		m[strings.ToLower(rec[0])] = n
	}
	return m, nil
}

// writeMap stores m as token;count lines, most frequent first. The file is
// written under a temporary name and renamed into place.
func writeMap(path string, m model.FreqMap) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("freq save: %w", err)
	}
	tmp := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("freq save: %w", err)
	}

	cw := csv.NewWriter(f)
	cw.Comma = cacheSep
	for _, k := range keys {
		if err := cw.Write([]string{k, strconv.Itoa(m[k])}); err != nil {
			return fail(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("freq save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("freq save: %w", err)
	}
	return nil
}
