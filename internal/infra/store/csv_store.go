package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mmrzaf/novagen/internal/domain"
)

// ErrNotFound is returned by Load when the path does not resolve to a file.
var ErrNotFound = fmt.Errorf("file not found: %w", fs.ErrNotExist)

// CSVStore reads and writes tables as CSV with a header row and no index column.
// Columns listed in types are parsed with that type and round-trip exactly.
// Other columns are inferred per cell (int, then float, then string), so their
// text is not preserved: "007" loads as int64(7) and saves back as "7".
type CSVStore struct {
	types map[string]domain.ColumnType
}

func NewCSVStore(types map[string]domain.ColumnType) *CSVStore {
	if types == nil {
		types = map[string]domain.ColumnType{}
	}
	return &CSVStore{types: types}
}

func (s *CSVStore) Load(path string) (*domain.Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return domain.NewTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := domain.NewTable(header)
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make(domain.Row, len(header))
		for i, col := range header {
			val, err := s.parseCell(col, rec[i])
			if err != nil {
				return nil, fmt.Errorf("line %d, column '%s': %w", line, col, err)
			}
			row[col] = val
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func (s *CSVStore) parseCell(col, raw string) (interface{}, error) {
	if raw == "" {
		return nil, nil
	}

	switch s.types[col] {
	case domain.ColumnTypeString:
		return raw, nil
	case domain.ColumnTypeInt:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f != math.Trunc(f) {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return int64(f), nil
	case domain.ColumnTypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		return f, nil
	default:
		return inferCell(raw), nil
	}
}

func inferCell(raw string) interface{} {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// Save writes table to path, creating missing parent directories.
func (s *CSVStore) Save(table *domain.Table, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		f.Close()
		return err
	}

	rec := make([]string, len(table.Columns))
	for i := range table.Rows {
		for j, v := range table.Values(i) {
			rec[j] = formatCell(v)
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
