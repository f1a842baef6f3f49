package exec

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/generators"
	"github.com/mmrzaf/novagen/internal/registry"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Target is a database sink a generated table can be exported to.
type Target interface {
	Connect() error
	Close() error
	CreateTableIfNotExists(tableName string, rules []domain.ColumnRule) error
	TruncateTable(tableName string) error
	InsertBatch(tableName string, columns []string, rows [][]interface{}) error
}

const batchSize = 1000

type Executor struct {
	genRegistry *registry.GeneratorRegistry
	rules       []domain.ColumnRule
	onRow       func()
}

// NewExecutor builds a row generator for rules, emitted in slice order.
func NewExecutor(genRegistry *registry.GeneratorRegistry, rules []domain.ColumnRule) *Executor {
	return &Executor{genRegistry: genRegistry, rules: rules}
}

// OnRow registers a callback invoked after every generated row.
func (e *Executor) OnRow(fn func()) {
	e.onRow = fn
}

func (e *Executor) Columns() []string {
	cols := make([]string, len(e.rules))
	for i, r := range e.rules {
		cols[i] = r.Name
	}
	return cols
}

// Generate draws n rows from rng. Columns are drawn in rule order, one value
// each, so a given rng state always yields the same table.
func (e *Executor) Generate(ctx context.Context, n int, rng *rand.Rand) (*domain.Table, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: row count must be >= 0, got %d", ErrInvalidArgument, n)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}

	gens := make([]generators.Generator, len(e.rules))
	for i, rule := range e.rules {
		gen, err := e.genRegistry.Get(rule.Generator.Type)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", rule.Name, err)
		}
		gens[i] = gen
	}

	table := domain.NewTable(e.Columns())
	table.Rows = make([]domain.Row, 0, n)

	for rowIdx := 0; rowIdx < n; rowIdx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := make(domain.Row, len(e.rules))
		gctx := generators.GeneratorContext{RowIndex: int64(rowIdx)}
		for i, rule := range e.rules {
			raw, err := gens[i].Generate(rng, rule.Generator, gctx)
			if err != nil {
				return nil, fmt.Errorf("column '%s', row %d: %w", rule.Name, rowIdx, err)
			}
			val, err := generators.ApplyShape(raw, rule.Shape, rule.Type)
			if err != nil {
				return nil, fmt.Errorf("column '%s', row %d: %w", rule.Name, rowIdx, err)
			}
			row[rule.Name] = val
		}
		table.Rows = append(table.Rows, row)

		if e.onRow != nil {
			e.onRow()
		}
	}

	return table, nil
}

// Export writes table into tableName on target according to mode.
func (e *Executor) Export(ctx context.Context, table *domain.Table, target Target, tableName, mode string) (int, error) {
	if err := target.Connect(); err != nil {
		return 0, fmt.Errorf("failed to connect to target: %w", err)
	}
	defer target.Close()

	if mode == "" {
		mode = domain.TableModeCreateIfMissing
	}

	switch mode {
	case domain.TableModeCreateIfMissing:
		if err := target.CreateTableIfNotExists(tableName, e.rulesFor(table.Columns)); err != nil {
			return 0, fmt.Errorf("failed to create table '%s': %w", tableName, err)
		}
	case domain.TableModeTruncateThenInsert:
		if err := target.CreateTableIfNotExists(tableName, e.rulesFor(table.Columns)); err != nil {
			return 0, fmt.Errorf("failed to create table '%s': %w", tableName, err)
		}
		if err := target.TruncateTable(tableName); err != nil {
			return 0, fmt.Errorf("failed to truncate table '%s': %w", tableName, err)
		}
	case domain.TableModeAppendOnly:
	default:
		return 0, fmt.Errorf("%w: unknown table mode: %s", ErrInvalidArgument, mode)
	}

	written := 0
	batch := make([][]interface{}, 0, batchSize)
	for i := range table.Rows {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		batch = append(batch, table.Values(i))

		if len(batch) >= batchSize {
			if err := target.InsertBatch(tableName, table.Columns, batch); err != nil {
				return written, fmt.Errorf("failed to insert batch into '%s': %w", tableName, err)
			}
			written += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := target.InsertBatch(tableName, table.Columns, batch); err != nil {
			return written, fmt.Errorf("failed to insert final batch into '%s': %w", tableName, err)
		}
		written += len(batch)
	}

	return written, nil
}

// rulesFor returns a rule per column; columns without a rule are typed as strings.
func (e *Executor) rulesFor(columns []string) []domain.ColumnRule {
	byName := make(map[string]domain.ColumnRule, len(e.rules))
	for _, r := range e.rules {
		byName[r.Name] = r
	}
	out := make([]domain.ColumnRule, len(columns))
	for i, c := range columns {
		if r, ok := byName[c]; ok {
			out[i] = r
			continue
		}
		out[i] = domain.ColumnRule{Name: c, Type: domain.ColumnTypeString}
	}
	return out
}
