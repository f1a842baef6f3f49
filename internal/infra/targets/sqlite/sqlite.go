package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/infra/targets"
)

// SQLiteTarget writes partner tables into a local sqlite database file.
type SQLiteTarget struct {
	path string
	db   *sql.DB
}

func NewSQLiteTarget(path string) *SQLiteTarget {
	return &SQLiteTarget{path: path}
}

func (t *SQLiteTarget) Connect() error {
	if !strings.HasPrefix(t.path, "file:") && t.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
			return fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", t.path)
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

func (t *SQLiteTarget) Close() error {
	if t.db == nil {
		return nil
	}
	err := t.db.Close()
	t.db = nil
	return err
}

func (t *SQLiteTarget) CreateTableIfNotExists(tableName string, rules []domain.ColumnRule) error {
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		targets.QuoteIdent(tableName), targets.ColumnDefs(rules, MapColumnType))
	_, err := t.db.Exec(stmt)
	return err
}

// MapColumnType maps a rule type to its sqlite storage class.
func MapColumnType(colType domain.ColumnType) string {
	switch colType {
	case domain.ColumnTypeInt:
		return "INTEGER"
	case domain.ColumnTypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// TruncateTable empties the table; sqlite has no TRUNCATE.
func (t *SQLiteTarget) TruncateTable(tableName string) error {
	_, err := t.db.Exec("DELETE FROM " + targets.QuoteIdent(tableName))
	return err
}

// InsertBatch inserts rows in one transaction with a prepared statement.
func (t *SQLiteTarget) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := t.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		targets.QuoteIdent(tableName), targets.QuoteAll(columns), marks))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}
