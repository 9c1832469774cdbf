package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/fieldgrad/internal/config"
	"github.com/san-kum/fieldgrad/internal/grid"
	"github.com/san-kum/fieldgrad/internal/pipeline"
)

// Grid names inside a run directory.
const (
	FieldGrid      = "field"
	DerivativeGrid = "derivative"
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

type RunMetadata struct {
	ID        string                 `json:"id"`
	Source    string                 `json:"source"`
	Timestamp time.Time              `json:"timestamp"`
	Rows      int                    `json:"rows"`
	Stats     grid.BuildStats        `json:"stats"`
	Grids     map[string]grid.Layout `json:"grids"`
	Sections  []float64              `json:"sections"`
	Rebin     int                    `json:"rebin,omitempty"`
}

// PlotRebin is the display downsampling recorded with the run. Runs saved
// without one use config.DefaultRebin.
func (m *RunMetadata) PlotRebin() int {
	if m.Rebin < 1 {
		return config.DefaultRebin
	}
	return m.Rebin
}

// Save writes metadata.json, field.csv and derivative.csv under a new run
// directory and returns the run id. A failed save removes the directory.
func (s *Store) Save(res *pipeline.Result) (runID string, err error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%d", runName(res.Source), now.UnixNano())
	runDir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:        id,
		Source:    res.Source,
		Timestamp: now,
		Rows:      res.Rows,
		Stats:     res.Stats,
		Grids: map[string]grid.Layout{
			FieldGrid:      res.Field.Layout(),
			DerivativeGrid: res.Derivative.Layout(),
		},
		Sections: res.Radii,
		Rebin:    res.Rebin,
	}

	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeGrid(filepath.Join(runDir, FieldGrid+".csv"), res.Field); err != nil {
		return "", err
	}
	if err := writeGrid(filepath.Join(runDir, DerivativeGrid+".csv"), res.Derivative); err != nil {
		return "", err
	}

	return id, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runName(source string) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		return "run"
	}
	return name
}

// writeGrid stores one Z row per line: the Z bin center then every R value.
func writeGrid(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	l := g.Layout()
	header := []string{"z"}
	for _, r := range l.R.Centers() {
		header = append(header, "r="+formatFloat(r))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	zc, _ := g.Dims()
	for i := 0; i < zc; i++ {
		row := []string{formatFloat(l.Z.Center(i))}
		for _, v := range g.Row(i) {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadGrid rebuilds a stored grid with the layout it was saved with.
func (s *Store) LoadGrid(runID, name string) (*grid.Grid, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	layout, ok := meta.Grids[name]
	if !ok {
		return nil, fmt.Errorf("storage: run %s has no %q grid", runID, name)
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, name+".csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records)-1 != layout.Z.Count {
		return nil, fmt.Errorf("storage: %s/%s has %d rows, layout wants %d",
			runID, name, len(records)-1, layout.Z.Count)
	}

	m := mat.NewDense(layout.Z.Count, layout.R.Count, nil)
	for i, record := range records[1:] {
		if len(record) != layout.R.Count+1 {
			return nil, fmt.Errorf("storage: %s/%s line %d has %d fields, want %d",
				runID, name, i+2, len(record), layout.R.Count+1)
		}
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s/%s line %d: %w", runID, name, i+2, err)
			}
			m.Set(i, j, v)
		}
	}

	return grid.FromDense(layout, m)
}
