package postgres

import (
	"testing"

	"github.com/mmrzaf/novagen/internal/domain"
)

func TestMapColumnType(t *testing.T) {
	cases := map[domain.ColumnType]string{
		domain.ColumnTypeInt:    "BIGINT",
		domain.ColumnTypeFloat:  "DOUBLE PRECISION",
		domain.ColumnTypeString: "TEXT",
	}
	for in, want := range cases {
		if got := MapColumnType(in); got != want {
			t.Fatalf("%s: expected %s, got %s", in, want, got)
		}
	}
}

func TestBuildInsert(t *testing.T) {
	stmt, args := buildInsert(`"public"."partners"`, []string{"partner_id", "Nova_Score"}, [][]interface{}{
		{"P0001", 61.5},
		{"P0002", 70.25},
	})
	want := `INSERT INTO "public"."partners" ("partner_id", "Nova_Score") VALUES ($1, $2), ($3, $4)`
	if stmt != want {
		t.Fatalf("got %s\nwant %s", stmt, want)
	}
	if len(args) != 4 || args[0] != "P0001" || args[3] != 70.25 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestNewPostgresTarget_DefaultSchema(t *testing.T) {
	tg := NewPostgresTarget("postgres://localhost/db", "")
	if tg.schema != "public" {
		t.Fatalf("expected public schema, got %q", tg.schema)
	}
	if got := tg.qualified("partners"); got != `"public"."partners"` {
		t.Fatalf("unexpected qualified name: %s", got)
	}
}
