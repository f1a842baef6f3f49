package domain

import (
	"encoding/json"
	"time"
)

// Row maps a column name to a scalar cell value (string, int64 or float64).
type Row map[string]interface{}

// Table is an ordered row-set. Columns holds the header in display order.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}

func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: make([]Row, 0)}
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Values returns the row as a slice ordered by t.Columns; missing cells are nil.
func (t *Table) Values(i int) []interface{} {
	row := t.Rows[i]
	vals := make([]interface{}, len(t.Columns))
	for j, c := range t.Columns {
		vals[j] = row[c]
	}
	return vals
}

type ColumnType string

const (
	ColumnTypeInt    ColumnType = "int"
	ColumnTypeFloat  ColumnType = "float"
	ColumnTypeString ColumnType = "string"
)

type GeneratorSpec struct {
	Type   string                 `json:"type" yaml:"type"`
	Params map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`
}

// Shape is the post-processing applied to a numeric draw, in order:
// abs, lower clamp, upper clamp, then rounding or truncation per the column type.
type Shape struct {
	Abs   bool     `json:"abs,omitempty" yaml:"abs,omitempty"`
	Min   *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max   *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Round int      `json:"round,omitempty" yaml:"round,omitempty"`
}

// ColumnRule is the generation rule for one schema column.
type ColumnRule struct {
	Name      string        `json:"name" yaml:"name"`
	Type      ColumnType    `json:"type" yaml:"type"`
	Generator GeneratorSpec `json:"generator" yaml:"generator"`
	Shape     Shape         `json:"shape,omitempty" yaml:"shape,omitempty"`
}

type Run struct {
	ID          string          `json:"id" yaml:"id"`
	Seed        int64           `json:"seed" yaml:"seed"`
	Rows        int             `json:"rows" yaml:"rows"`
	ConfigHash  string          `json:"config_hash" yaml:"config_hash"`
	TableHash   string          `json:"table_hash,omitempty" yaml:"table_hash,omitempty"`
	OutputPath  string          `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Status      RunStatus       `json:"status" yaml:"status"`
	StartedAt   time.Time       `json:"started_at" yaml:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Stats       json.RawMessage `json:"stats,omitempty" yaml:"-"`
	Error       string          `json:"error,omitempty" yaml:"error,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type RunStats struct {
	RowsGenerated   int      `json:"rows_generated"`
	MissingColumns  []string `json:"missing_columns"`
	DurationSeconds float64  `json:"duration_seconds"`
}

type TargetConfig struct {
	Kind   string `json:"kind" yaml:"kind"`
	DSN    string `json:"dsn" yaml:"dsn"`
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
}

const (
	TableModeCreateIfMissing    = "create_if_missing"
	TableModeTruncateThenInsert = "truncate_then_insert"
	TableModeAppendOnly         = "append_only"
)
