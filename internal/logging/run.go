package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"evolve/internal/ga"
)

// RunLogger writes per-generation statistics to a CSV file and a JSONL file,
// and mirrors a summary line to the console. All of its I/O happens at the
// generation boundary, outside the engine's evaluation path.
type RunLogger struct {
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool
}

// NewRunLogger creates a run logger and ensures the output directories exist
func NewRunLogger(csvPath, jsonPath string) (*RunLogger, error) {
	l := &RunLogger{
		csvPath:  csvPath,
		jsonPath: jsonPath,
	}

	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// Init opens the log files and writes the CSV header
func (l *RunLogger) Init() error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	header := []string{
		"generation", "evaluations",
		"fitness_min", "fitness_max", "fitness_mean", "fitness_std",
		"size_mean", "size_max",
	}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close flushes and closes all log files
func (l *RunLogger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// LogGeneration records one generation's statistics
func (l *RunLogger) LogGeneration(stats ga.Statistics) {
	if !l.initialized {
		return
	}

	fit := stats.Fitness()
	row := []string{
		strconv.Itoa(stats.Generation),
		strconv.Itoa(stats.Evaluations),
		fmt.Sprintf("%.4f", fit.Min),
		fmt.Sprintf("%.4f", fit.Max),
		fmt.Sprintf("%.4f", fit.Mean),
		fmt.Sprintf("%.4f", fit.Std),
		"", "",
	}
	if size, ok := stats.Chapters[ga.ChapterSize]; ok {
		row[6] = fmt.Sprintf("%.2f", size.Mean)
		row[7] = fmt.Sprintf("%.0f", size.Max)
	}
	l.csvWriter.Write(row)
	l.csvWriter.Flush()

	jsonLine, _ := json.Marshal(stats)
	l.jsonFile.WriteString(string(jsonLine) + "\n")

	if size, ok := stats.Chapters[ga.ChapterSize]; ok {
		fmt.Printf("Gen %4d | Evals: %4d | Min: %10.4f | Max: %10.4f | Mean: %10.4f | Std: %8.4f | Size: %.1f\n",
			stats.Generation, stats.Evaluations, fit.Min, fit.Max, fit.Mean, fit.Std, size.Mean)
	} else {
		fmt.Printf("Gen %4d | Evals: %4d | Min: %10.4f | Max: %10.4f | Mean: %10.4f | Std: %8.4f\n",
			stats.Generation, stats.Evaluations, fit.Min, fit.Max, fit.Mean, fit.Std)
	}
}

// Champion is the saved best-ever artifact. Genome holds a representation
// chosen by the driver: raw genes for vector genomes, the prefix token
// sequence for trees.
type Champion struct {
	Generation int         `json:"generation"`
	Fitness    float64     `json:"fitness"`
	Genome     interface{} `json:"genome"`
	Rendered   string      `json:"rendered,omitempty"`
}

// SaveChampion writes the champion artifact as indented JSON
func SaveChampion(path string, champ Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(champ, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}
