package validation

import (
	"reflect"
	"testing"

	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/registry"
	"github.com/mmrzaf/novagen/internal/schema"
)

func without(cols []string, drop ...string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		skip := false
		for _, d := range drop {
			if c == d {
				skip = true
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

func TestMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    []string
	}{
		{"full schema", schema.Columns(), []string{}},
		{"target not required", schema.RequiredColumns(), []string{}},
		{"extras ignored", append(schema.Columns(), "extra"), []string{}},
		{"missing city", without(schema.Columns(), "city"), []string{"city"}},
		{
			"registry order kept",
			without(schema.Columns(), "vehicle_type", "partner_id", "avg_rating"),
			[]string{"partner_id", "avg_rating", "vehicle_type"},
		},
		{"empty table", nil, schema.RequiredColumns()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingColumns(domain.NewTable(tt.columns))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMissingColumns_ReversedOrderStillValid(t *testing.T) {
	cols := schema.RequiredColumns()
	for i, j := 0, len(cols)-1; i < j; i, j = i+1, j-1 {
		cols[i], cols[j] = cols[j], cols[i]
	}
	if got := MissingColumns(domain.NewTable(cols)); len(got) != 0 {
		t.Fatalf("column order must not matter, got %v", got)
	}
}

func TestValidateRules_DefaultSchema(t *testing.T) {
	v := NewValidator(registry.DefaultGeneratorRegistry())
	if err := v.ValidateRules(schema.Rules()); err != nil {
		t.Fatalf("expected default rules valid, got %v", err)
	}
}

func TestValidateRules_Rejects(t *testing.T) {
	v := NewValidator(registry.DefaultGeneratorRegistry())

	dropped := schema.Rules()[:len(schema.Rules())-1]
	if err := v.ValidateRules(dropped); err == nil {
		t.Fatal("expected error for missing target rule")
	}

	unknownGen := schema.Rules()
	unknownGen[1].Generator.Type = "lognormal"
	if err := v.ValidateRules(unknownGen); err == nil {
		t.Fatal("expected error for unknown generator")
	}

	dup := append(schema.Rules(), schema.Rules()[0])
	if err := v.ValidateRules(dup); err == nil {
		t.Fatal("expected duplicate column error")
	}

	lo, hi := 5.0, 1.0
	badShape := schema.Rules()
	badShape[3].Shape = domain.Shape{Min: &lo, Max: &hi}
	if err := v.ValidateRules(badShape); err == nil {
		t.Fatal("expected inverted clamp error")
	}
}
