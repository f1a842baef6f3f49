package runs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/novagen/internal/domain"
)

// timeLayout has a fixed-width fraction so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type SQLiteRepository struct {
	dbPath string
	db     *sql.DB
}

func NewSQLiteRepository(dbPath string) *SQLiteRepository {
	return &SQLiteRepository{dbPath: dbPath}
}

func (r *SQLiteRepository) Init() error {
	if dir := filepath.Dir(r.dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create runs db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", r.dbPath)
	if err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		row_count INTEGER NOT NULL,
		config_hash TEXT NOT NULL,
		table_hash TEXT,
		output_path TEXT,
		status TEXT NOT NULL,
		started_at TEXT NOT NULL,
		completed_at TEXT,
		stats TEXT,
		error TEXT
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *SQLiteRepository) Create(run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = formatTime(*run.CompletedAt)
	}

	query := `
		INSERT INTO runs (
			id, seed, row_count, config_hash, table_hash, output_path,
			status, started_at, completed_at, stats, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID, run.Seed, run.Rows, run.ConfigHash, run.TableHash, run.OutputPath,
		run.Status, formatTime(run.StartedAt), completedAt,
		nullableJSON(run.Stats), run.Error,
	)
	return err
}

func (r *SQLiteRepository) Update(run *domain.Run) error {
	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = formatTime(*run.CompletedAt)
	}

	query := `
		UPDATE runs SET
			table_hash = ?, output_path = ?, status = ?, completed_at = ?, stats = ?, error = ?
		WHERE id = ?
	`

	res, err := r.db.Exec(query, run.TableHash, run.OutputPath, run.Status, completedAt,
		nullableJSON(run.Stats), run.Error, run.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", run.ID)
	}
	return nil
}

const selectRun = `
	SELECT id, seed, row_count, config_hash, table_hash, output_path,
	       status, started_at, completed_at, stats, error
	FROM runs`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s rowScanner) (*domain.Run, error) {
	var run domain.Run
	var startedAtStr string
	var tableHash, outputPath, completedAtStr, statsStr, errorStr sql.NullString

	err := s.Scan(
		&run.ID, &run.Seed, &run.Rows, &run.ConfigHash, &tableHash, &outputPath,
		&run.Status, &startedAtStr, &completedAtStr, &statsStr, &errorStr,
	)
	if err != nil {
		return nil, err
	}

	run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAtStr)
	if completedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339Nano, completedAtStr.String)
		run.CompletedAt = &t
	}
	run.TableHash = tableHash.String
	run.OutputPath = outputPath.String
	if statsStr.Valid && statsStr.String != "" {
		run.Stats = json.RawMessage(statsStr.String)
	}
	run.Error = errorStr.String

	return &run, nil
}

func (r *SQLiteRepository) Get(id string) (*domain.Run, error) {
	run, err := scanRun(r.db.QueryRow(selectRun+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return run, err
}

func (r *SQLiteRepository) List(limit int, status string) ([]*domain.Run, error) {
	query := selectRun

	args := make([]interface{}, 0)
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}

	query += " ORDER BY started_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*domain.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
