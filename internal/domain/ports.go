package domain

import "time"

// ConfigLoader loads dataset configuration.
type ConfigLoader interface {
	Load(path string) (QualityConfig, error)
}

// RecordSource reads a batch of records from a file.
type RecordSource interface {
	Load(path string) (Batch, error)
}

// DatasetScanner finds configured datasets under a directory tree.
type DatasetScanner interface {
	Scan(root string, excludeDirs ...string) ([]string, error)
}

// ReportHistory persists a summary of each report next to the dataset.
type ReportHistory interface {
	Save(dir string, entry ReportEntry) error
	Load(dir string) ([]ReportEntry, error)
}

// GitInfo resolves the repository revision a dataset was read at.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// MetricsRecorder observes completed reports and pipeline failures.
type MetricsRecorder interface {
	ObserveReport(report *QualityReport, elapsed time.Duration)
	ObserveFailure(stage string)
}

// BaselineStore persists reference distributions for drift detection.
type BaselineStore interface {
	Load(dir string) (*Baseline, error)
	Save(dir string, b *Baseline) error
}

// ReportEntry is one line of report history.
type ReportEntry struct {
	ID         string             `json:"id"`
	Timestamp  string             `json:"timestamp"`
	Dataset    string             `json:"dataset,omitempty"`
	CommitHash string             `json:"commit_hash,omitempty"`
	Overall    float64            `json:"overall"`
	Grade      string             `json:"grade"`
	Records    int                `json:"records"`
	Dimensions map[string]float64 `json:"dimensions,omitempty"`
}

// EntryFor summarizes a report for history.
func EntryFor(r *QualityReport) ReportEntry {
	dims := make(map[string]float64, len(r.Dimensions))
	for _, d := range r.Dimensions {
		dims[string(d.Dimension)] = d.Percentage
	}
	return ReportEntry{
		ID:         r.ID,
		Timestamp:  r.GeneratedAt.Format(time.RFC3339),
		Dataset:    r.Dataset,
		CommitHash: r.CommitHash,
		Overall:    r.OverallScore,
		Grade:      r.Grade,
		Records:    r.RecordCount,
		Dimensions: dims,
	}
}

// Baseline holds the reference numeric samples per field.
type Baseline struct {
	Dataset   string               `json:"dataset,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	Fields    map[string][]float64 `json:"fields"`
}
