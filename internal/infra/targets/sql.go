package targets

import (
	"strings"

	"github.com/mmrzaf/novagen/internal/domain"
)

// QuoteIdent double-quotes an identifier. Both sqlite and postgres accept
// this form, and Nova_Score needs it on postgres to keep its case.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteAll quotes every name and joins them with ", ".
func QuoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// ColumnDefs renders the column list of a CREATE TABLE statement.
func ColumnDefs(rules []domain.ColumnRule, mapType func(domain.ColumnType) string) string {
	defs := make([]string, len(rules))
	for i, r := range rules {
		defs[i] = QuoteIdent(r.Name) + " " + mapType(r.Type)
	}
	return strings.Join(defs, ", ")
}
