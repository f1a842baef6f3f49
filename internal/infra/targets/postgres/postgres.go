package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/infra/targets"
)

// PostgresTarget writes partner tables into a postgres schema.
type PostgresTarget struct {
	dsn    string
	schema string
	db     *sql.DB
}

func NewPostgresTarget(dsn, schema string) *PostgresTarget {
	if schema == "" {
		schema = "public"
	}
	return &PostgresTarget{
		dsn:    dsn,
		schema: schema,
	}
}

func (t *PostgresTarget) Connect() error {
	db, err := sql.Open("postgres", t.dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}
	t.db = db
	return nil
}

func (t *PostgresTarget) Close() error {
	if t.db == nil {
		return nil
	}
	err := t.db.Close()
	t.db = nil
	return err
}

func (t *PostgresTarget) qualified(tableName string) string {
	return targets.QuoteIdent(t.schema) + "." + targets.QuoteIdent(tableName)
}

func (t *PostgresTarget) CreateTableIfNotExists(tableName string, rules []domain.ColumnRule) error {
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		t.qualified(tableName), targets.ColumnDefs(rules, MapColumnType))
	_, err := t.db.Exec(stmt)
	return err
}

func MapColumnType(colType domain.ColumnType) string {
	switch colType {
	case domain.ColumnTypeInt:
		return "BIGINT"
	case domain.ColumnTypeFloat:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

func (t *PostgresTarget) TruncateTable(tableName string) error {
	_, err := t.db.Exec("TRUNCATE TABLE " + t.qualified(tableName))
	return err
}

// InsertBatch sends the whole batch as one multi-row INSERT.
func (t *PostgresTarget) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, args := buildInsert(t.qualified(tableName), columns, rows)
	_, err := t.db.Exec(stmt, args...)
	return err
}

func buildInsert(qualified string, columns []string, rows [][]interface{}) (string, []interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", qualified, targets.QuoteAll(columns))

	args := make([]interface{}, 0, len(rows)*len(columns))
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := range columns {
			if j > 0 {
				b.WriteString(", ")
			}
			args = append(args, row[j])
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteByte(')')
	}
	return b.String(), args
}
