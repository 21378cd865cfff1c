// Package records reads datasets from disk into ordered records. The
// format is chosen by extension: .json holds an array of objects (or one
// object), .jsonl and .ndjson hold one object per line, and .csv holds a
// header row followed by values whose types are inferred.
package records

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abdidvp/dqscore/internal/domain"
)

// ErrUnsupportedFormat is returned for an extension no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported record format")

// FileSource implements domain.RecordSource.
type FileSource struct{}

func New() *FileSource { return &FileSource{} }

// Load reads every record in path.
func (s *FileSource) Load(path string) (domain.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".jsonl", ".ndjson":
		return ReadJSONLines(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
}

// ReadJSON decodes a JSON array of objects, or a single object.
func ReadJSON(r io.Reader) (domain.Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var rec domain.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		return domain.Batch{rec}, nil
	}

	var batch domain.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return batch, nil
}

// ReadJSONLines decodes one object per non-blank line.
func ReadJSONLines(r io.Reader) (domain.Batch, error) {
	var batch domain.Batch
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		batch = append(batch, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return batch, nil
}

// ReadCSV reads a header row and one record per following row, fields in
// header order. Empty cells become null.
func ReadCSV(r io.Reader) (domain.Batch, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var batch domain.Batch
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		fields := make([]domain.Field, len(header))
		for i, name := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fields[i] = domain.Field{Name: name, Value: Infer(cell)}
		}
		batch = append(batch, domain.NewRecord(fields...))
	}
	return batch, nil
}

// Infer types a CSV cell: empty is null, then integer, float and boolean
// are tried in that order before falling back to string. Numbers with a
// leading zero ("007") stay strings.
func Infer(cell string) domain.Value {
	s := strings.TrimSpace(cell)
	if s == "" {
		return domain.Null()
	}
	if !hasLeadingZero(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return domain.Int(i)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "xXnN") {
			return domain.Float(f)
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return domain.Bool(true)
	case "false":
		return domain.Bool(false)
	}
	return domain.String(cell)
}

func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}
