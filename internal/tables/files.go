package tables

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// FileSource reads the two tables from local CSV or Parquet exports
type FileSource struct {
	centresPath string
	commodsPath string
}

// NewFileSource creates a source for the given table files
func NewFileSource(centresPath, commodsPath string) *FileSource {
	return &FileSource{
		centresPath: centresPath,
		commodsPath: commodsPath,
	}
}

// Tables loads both files
func (f *FileSource) Tables(_ context.Context) (*Table, *Table, error) {
	if f.centresPath == "" || f.commodsPath == "" {
		return nil, nil, fmt.Errorf("both a centres file and a commods file are required")
	}

	centres, err := LoadFile(f.centresPath)
	if err != nil {
		return nil, nil, err
	}
	commods, err := LoadFile(f.commodsPath)
	if err != nil {
		return nil, nil, err
	}
	return centres, commods, nil
}

// LoadFile loads a table from a file (CSV or Parquet)
func LoadFile(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return loadCSV(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet)", ext)
	}
}

func loadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	values, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}

	slog.Debug("Read CSV table", "path", path, "rows", len(values))
	t, err := NewTable(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func loadParquet(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	columns := pf.Schema().Columns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col[len(col)-1]
	}
	values := [][]string{header}

	slog.Debug("Parquet file opened", "path", path, "num_rows", pf.NumRows(), "columns", header)

	reader := parquet.NewReader(file)
	defer reader.Close()

	rows := make([]parquet.Row, 128)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			record := make([]string, len(header))
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(record) {
					record[c] = formatValue(v)
				}
			}
			values = append(values, record)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return NewTable(values)
}

func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	default:
		return string(v.ByteArray())
	}
}
