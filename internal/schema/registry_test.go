package schema

import "testing"

func TestRequiredColumns_OrderAndTarget(t *testing.T) {
	cols := RequiredColumns()
	if len(cols) != 15 {
		t.Fatalf("expected 15 required columns, got %d", len(cols))
	}
	if cols[0] != "partner_id" || cols[len(cols)-1] != "promotions_received_last_6_months" {
		t.Fatalf("unexpected order: %v", cols)
	}
	for _, c := range cols {
		if c == TargetColumn {
			t.Fatal("target column must not be a required feature")
		}
	}

	all := Columns()
	if all[len(all)-1] != TargetColumn || len(all) != 16 {
		t.Fatalf("expected target last in Columns(), got %v", all)
	}
}

func TestRequiredColumns_ReturnsCopy(t *testing.T) {
	cols := RequiredColumns()
	cols[0] = "mutated"
	if RequiredColumns()[0] != "partner_id" {
		t.Fatal("registry must not be mutable through the returned slice")
	}
}

func TestRules_CoverEveryColumnInOrder(t *testing.T) {
	rules := Rules()
	cols := Columns()
	if len(rules) != len(cols) {
		t.Fatalf("expected %d rules, got %d", len(cols), len(rules))
	}
	for i, r := range rules {
		if r.Name != cols[i] {
			t.Fatalf("rule %d: expected %s, got %s", i, cols[i], r.Name)
		}
	}
}
