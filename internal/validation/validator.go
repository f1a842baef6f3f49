package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/registry"
	"github.com/mmrzaf/novagen/internal/schema"
)

// MissingColumns reports required schema columns absent from table, in
// registry declaration order. An empty result means the table is valid.
// Only presence is checked: types, ranges, nulls and the target column are not.
func MissingColumns(table *domain.Table) []string {
	present := make(map[string]struct{}, len(table.Columns))
	for _, c := range table.Columns {
		present[c] = struct{}{}
	}

	missing := make([]string, 0)
	for _, c := range schema.RequiredColumns() {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

type Validator struct {
	genRegistry *registry.GeneratorRegistry
}

func NewValidator(genRegistry *registry.GeneratorRegistry) *Validator {
	return &Validator{genRegistry: genRegistry}
}

// identifier validation: allow simple SQL identifiers only (prevents injection via table/column names).
var (
	identRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reservedWords = map[string]struct{}{
		"add": {}, "all": {}, "alter": {}, "and": {}, "any": {}, "as": {},
		"asc": {}, "between": {}, "by": {}, "case": {}, "check": {},
		"column": {}, "constraint": {}, "create": {}, "cross": {}, "current_date": {},
		"current_time": {}, "current_timestamp": {}, "database": {}, "default": {}, "delete": {},
		"desc": {}, "distinct": {}, "do": {}, "drop": {}, "else": {},
		"end": {}, "except": {}, "exists": {}, "false": {}, "for": {},
		"foreign": {}, "from": {}, "full": {}, "grant": {}, "group": {},
		"having": {}, "in": {}, "index": {}, "inner": {}, "insert": {},
		"intersect": {}, "into": {}, "is": {}, "join": {}, "key": {},
		"left": {}, "like": {}, "limit": {}, "natural": {}, "not": {},
		"null": {}, "offset": {}, "on": {}, "or": {}, "order": {},
		"outer": {}, "primary": {}, "references": {}, "returning": {}, "revoke": {},
		"right": {}, "schema": {}, "select": {}, "set": {}, "table": {},
		"then": {}, "to": {}, "true": {}, "truncate": {}, "union": {},
		"unique": {}, "update": {}, "user": {}, "using": {}, "values": {},
		"view": {}, "when": {}, "where": {}, "with": {},
	}
)

func IsValidIdentifier(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !identRe.MatchString(s) {
		return false
	}
	if _, ok := reservedWords[strings.ToLower(s)]; ok {
		return false
	}
	return true
}

func IsValidMode(mode string) bool {
	switch mode {
	case domain.TableModeCreateIfMissing, domain.TableModeTruncateThenInsert, domain.TableModeAppendOnly:
		return true
	default:
		return false
	}
}

// ValidateRules checks a rule set against the schema registry: one rule per
// schema column, safe identifiers, and generator params the registry accepts.
func (v *Validator) ValidateRules(rules []domain.ColumnRule) error {
	if len(rules) == 0 {
		return errors.New("rule set is empty")
	}

	names := make(map[string]bool)
	for _, rule := range rules {
		if err := v.validateRule(&rule, names); err != nil {
			return fmt.Errorf("column '%s': %w", rule.Name, err)
		}
	}

	for _, c := range schema.Columns() {
		if !names[c] {
			return fmt.Errorf("no generation rule for schema column '%s'", c)
		}
	}
	return nil
}

func (v *Validator) validateRule(rule *domain.ColumnRule, names map[string]bool) error {
	if rule.Name == "" {
		return errors.New("column name is required")
	}
	if !IsValidIdentifier(rule.Name) {
		return fmt.Errorf("invalid column identifier: %s", rule.Name)
	}
	if names[rule.Name] {
		return fmt.Errorf("duplicate column name: %s", rule.Name)
	}
	names[rule.Name] = true

	if !isValidColumnType(rule.Type) {
		return fmt.Errorf("invalid column type: %s", rule.Type)
	}

	if rule.Generator.Type == "" {
		return errors.New("generator type is required")
	}
	gen, err := v.genRegistry.Get(rule.Generator.Type)
	if err != nil {
		return err
	}
	if err := gen.Validate(rule.Generator); err != nil {
		return fmt.Errorf("generator validation failed: %w", err)
	}

	s := rule.Shape
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return fmt.Errorf("shape min (%v) exceeds max (%v)", *s.Min, *s.Max)
	}
	if s.Round < 0 {
		return fmt.Errorf("shape round must be >= 0, got %d", s.Round)
	}
	return nil
}

func isValidColumnType(t domain.ColumnType) bool {
	switch t {
	case domain.ColumnTypeInt, domain.ColumnTypeFloat, domain.ColumnTypeString:
		return true
	default:
		return false
	}
}
