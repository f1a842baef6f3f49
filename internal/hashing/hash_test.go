package hashing

import (
	"testing"

	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/schema"
)

func sampleTable(score float64) *domain.Table {
	t := domain.NewTable([]string{"partner_id", "Nova_Score"})
	t.Rows = append(t.Rows, domain.Row{"partner_id": "P0001", "Nova_Score": score})
	return t
}

func TestHashTable_StableAndSensitive(t *testing.T) {
	h1, err := HashTable(sampleTable(65.5))
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashTable(sampleTable(65.5))
	if err != nil {
		t.Fatal(err)
	}
	h3, err := HashTable(sampleTable(65.51))
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatal("expected equal tables to hash equally")
	}
	if h1 == h3 {
		t.Fatal("expected a changed cell to change the hash")
	}
}

func TestHashRunConfig_IncludesRowsSeedAndRules(t *testing.T) {
	rules := schema.Rules()

	h1, err := HashRunConfig(rules, 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashRunConfig(rules, 11, 42)
	if err != nil {
		t.Fatal(err)
	}
	h3, err := HashRunConfig(rules, 10, 43)
	if err != nil {
		t.Fatal(err)
	}
	changed := schema.Rules()
	changed[1].Generator.Params["mean"] = 31000.0
	h4, err := HashRunConfig(changed, 10, 42)
	if err != nil {
		t.Fatal(err)
	}

	if h1 == h2 {
		t.Fatal("expected rows to affect hash")
	}
	if h1 == h3 {
		t.Fatal("expected seed to affect hash")
	}
	if h1 == h4 {
		t.Fatal("expected rule params to affect hash")
	}
}
