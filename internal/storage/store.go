// Package storage keeps an on-disk history of render runs.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/climaspiral/internal/analysis"
	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/series"
	"github.com/san-kum/climaspiral/internal/spiral"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
	configFile   = "config.yaml"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrAmbiguousID = errors.New("run id prefix is ambiguous")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunRecord describes one completed render.
type RunRecord struct {
	ID             string           `json:"id"`
	Timestamp      time.Time        `json:"timestamp"`
	SeriesPath     string           `json:"series_path"`
	Samples        int              `json:"samples"`
	FirstMonth     string           `json:"first_month"`
	LastMonth      string           `json:"last_month"`
	Frames         int              `json:"frames"`
	Bytes          int64            `json:"bytes"`
	Output         string           `json:"output"`
	ElapsedSeconds float64          `json:"elapsed_seconds"`
	Summary        analysis.Summary `json:"summary"`
}

// NewRecord fills the series fields of a record.
func NewRecord(seriesPath string, s *series.Series) RunRecord {
	return RunRecord{
		SeriesPath: seriesPath,
		Samples:    s.Len(),
		FirstMonth: s.First().Time.Format("2006-01"),
		LastMonth:  s.Last().Time.Format("2006-01"),
		Summary:    analysis.Summarize(s),
	}
}

// Save writes the record, the config snapshot and the spiral points under a
// new run directory and returns the run id.
func (s *Store) Save(rec RunRecord, cfg *config.Config, samples *series.Series, points []spiral.Point) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	runDir := filepath.Join(s.baseDir, rec.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}

	if cfg != nil {
		if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
			return "", err
		}
	}

	if err := writePoints(filepath.Join(runDir, pointsFile), samples, points); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func writePoints(path string, samples *series.Series, points []spiral.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "anomaly", "x", "y"}); err != nil {
		return err
	}
	for i, p := range points {
		month := ""
		if samples != nil && i < samples.Len() {
			month = samples.At(i).Time.Format("2006-01")
		}
		row := []string{
			month,
			strconv.FormatFloat(p.Value, 'f', -1, 64),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all runs, newest first. Unreadable runs are skipped.
func (s *Store) List() ([]RunRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunRecord{}, nil
		}
		return nil, err
	}

	runs := make([]RunRecord, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.readRecord(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *rec)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Resolve expands a unique id prefix to a full run id.
func (s *Store) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrRunNotFound
	}
	if _, err := os.Stat(filepath.Join(s.baseDir, prefix, metadataFile)); err == nil {
		return prefix, nil
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
		}
		return "", err
	}
	var match string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
		}
		match = entry.Name()
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	return match, nil
}

func (s *Store) Load(runID string) (*RunRecord, error) {
	id, err := s.Resolve(runID)
	if err != nil {
		return nil, err
	}
	return s.readRecord(id)
}

func (s *Store) readRecord(id string) (*RunRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	return &rec, nil
}

// LoadConfig returns the config snapshot saved with a run.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	id, err := s.Resolve(runID)
	if err != nil {
		return nil, err
	}
	return config.Load(filepath.Join(s.baseDir, id, configFile))
}

// LoadPoints reads the spiral points saved with a run.
func (s *Store) LoadPoints(runID string) ([]spiral.Point, error) {
	id, err := s.Resolve(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, id, pointsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []spiral.Point{}, nil
	}

	points := make([]spiral.Point, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", pointsFile, i+2, err)
			}
			vals[j] = v
		}
		points = append(points, spiral.Point{Value: vals[0], X: vals[1], Y: vals[2]})
	}
	return points, nil
}
