package exec

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/registry"
	"github.com/mmrzaf/novagen/internal/schema"
	"github.com/mmrzaf/novagen/internal/seed"
	"github.com/mmrzaf/novagen/internal/validation"
)

func newExecutor() *Executor {
	return NewExecutor(registry.DefaultGeneratorRegistry(), schema.Rules())
}

func TestGenerate_ShapeAndColumns(t *testing.T) {
	e := newExecutor()
	for _, n := range []int{0, 1, 5, 250} {
		table, err := e.Generate(context.Background(), n, seed.NewRand(seed.DefaultSeed))
		if err != nil {
			t.Fatal(err)
		}
		if table.Len() != n {
			t.Fatalf("expected %d rows, got %d", n, table.Len())
		}
		if !reflect.DeepEqual(table.Columns, schema.Columns()) {
			t.Fatalf("unexpected columns: %v", table.Columns)
		}
		for i, row := range table.Rows {
			if len(row) != len(schema.Columns()) {
				t.Fatalf("row %d: expected %d cells, got %d", i, len(schema.Columns()), len(row))
			}
			for _, c := range schema.Columns() {
				if _, ok := row[c]; !ok {
					t.Fatalf("row %d: missing %s", i, c)
				}
			}
		}
		if missing := validation.MissingColumns(table); len(missing) != 0 {
			t.Fatalf("generated table failed validation: %v", missing)
		}
	}
}

func TestGenerate_NegativeRowsIsInvalidArgument(t *testing.T) {
	table, err := newExecutor().Generate(context.Background(), -1, seed.NewRand(1))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if table != nil {
		t.Fatal("expected no partial table")
	}
}

func TestGenerate_PartnerIDs(t *testing.T) {
	table, err := newExecutor().Generate(context.Background(), 120, seed.NewRand(9))
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for i, row := range table.Rows {
		id := row[schema.PartnerIDColumn].(string)
		if want := fmt.Sprintf("P%04d", i+1); id != want {
			t.Fatalf("row %d: expected %s, got %s", i, want, id)
		}
		if seen[id] {
			t.Fatalf("duplicate partner id %s", id)
		}
		seen[id] = true
	}
}

func TestGenerate_ValueRanges(t *testing.T) {
	table, err := newExecutor().Generate(context.Background(), 2000, seed.NewRand(seed.DefaultSeed))
	if err != nil {
		t.Fatal(err)
	}

	inRange := func(row domain.Row, col string, lo, hi float64) {
		v, ok := row[col].(float64)
		if !ok {
			t.Fatalf("%s: expected float64, got %T", col, row[col])
		}
		if v < lo || v > hi {
			t.Fatalf("%s out of [%v, %v]: %v", col, lo, hi, v)
		}
	}
	counts := []string{
		"trips_per_week", "active_days_per_month", "transactions_last_3_months",
		"late_payment_count", "promotions_received_last_6_months", "days_since_joining",
	}
	cities := map[string]bool{"Delhi": true, "Mumbai": true, "Bengaluru": true, "Chennai": true, "Kolkata": true}
	vehicles := map[string]bool{"Bike": true, "Car": true, "Auto": true}

	for _, row := range table.Rows {
		inRange(row, "cancellation_rate", 0, 1)
		inRange(row, "avg_rating", 1, 5)
		inRange(row, "peak_hour_percentage", 0, 1)
		inRange(row, schema.TargetColumn, 0, 100)
		inRange(row, "avg_trip_distance_km", 0.5, 1e9)
		inRange(row, "monthly_earnings", 0, 1e12)
		inRange(row, "repairs_cost_last_6_months", 0, 1e12)

		for _, c := range counts {
			v, ok := row[c].(int64)
			if !ok {
				t.Fatalf("%s: expected int64, got %T", c, row[c])
			}
			if v < 0 {
				t.Fatalf("%s negative: %d", c, v)
			}
		}
		if d := row["active_days_per_month"].(int64); d < 5 || d >= 30 {
			t.Fatalf("active_days_per_month out of [5, 30): %d", d)
		}
		if !cities[row["city"].(string)] {
			t.Fatalf("unexpected city %v", row["city"])
		}
		if !vehicles[row["vehicle_type"].(string)] {
			t.Fatalf("unexpected vehicle_type %v", row["vehicle_type"])
		}
	}
}

func TestGenerate_SameSeedIdenticalTables(t *testing.T) {
	e := newExecutor()
	ctl := seed.New(seed.DefaultSeed)

	a, err := e.Generate(context.Background(), 5, ctl.Rand())
	if err != nil {
		t.Fatal(err)
	}
	ctl.Reset(seed.DefaultSeed)
	b, err := e.Generate(context.Background(), 5, ctl.Rand())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected identical tables for the same seed")
	}

	c, err := e.Generate(context.Background(), 5, seed.NewRand(43))
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a.Rows, c.Rows) {
		t.Fatal("expected different tables for different seeds")
	}
}

func TestGenerate_OnRowCallback(t *testing.T) {
	e := newExecutor()
	calls := 0
	e.OnRow(func() { calls++ })
	if _, err := e.Generate(context.Background(), 7, seed.NewRand(1)); err != nil {
		t.Fatal(err)
	}
	if calls != 7 {
		t.Fatalf("expected 7 callbacks, got %d", calls)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newExecutor().Generate(ctx, 3, seed.NewRand(1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type fakeTarget struct {
	created   []string
	truncated []string
	batches   []int
	rows      [][]interface{}
	closed    bool
}

func (f *fakeTarget) Connect() error { return nil }
func (f *fakeTarget) Close() error   { f.closed = true; return nil }
func (f *fakeTarget) CreateTableIfNotExists(tableName string, rules []domain.ColumnRule) error {
	f.created = append(f.created, tableName)
	return nil
}
func (f *fakeTarget) TruncateTable(tableName string) error {
	f.truncated = append(f.truncated, tableName)
	return nil
}
func (f *fakeTarget) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	f.batches = append(f.batches, len(rows))
	f.rows = append(f.rows, rows...)
	return nil
}

func TestExport_BatchesAndModes(t *testing.T) {
	e := newExecutor()
	table, err := e.Generate(context.Background(), 2500, seed.NewRand(seed.DefaultSeed))
	if err != nil {
		t.Fatal(err)
	}

	tgt := &fakeTarget{}
	n, err := e.Export(context.Background(), table, tgt, "partners", domain.TableModeTruncateThenInsert)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2500 {
		t.Fatalf("expected 2500 rows written, got %d", n)
	}
	if !reflect.DeepEqual(tgt.batches, []int{1000, 1000, 500}) {
		t.Fatalf("unexpected batches: %v", tgt.batches)
	}
	if len(tgt.created) != 1 || len(tgt.truncated) != 1 || !tgt.closed {
		t.Fatalf("unexpected target calls: %+v", tgt)
	}
	if tgt.rows[0][0] != "P0001" {
		t.Fatalf("expected first value P0001, got %v", tgt.rows[0][0])
	}

	if _, err := e.Export(context.Background(), table, &fakeTarget{}, "partners", "upsert"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid mode error, got %v", err)
	}
}
