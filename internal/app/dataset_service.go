package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmrzaf/novagen/internal/config"
	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/exec"
	"github.com/mmrzaf/novagen/internal/hashing"
	"github.com/mmrzaf/novagen/internal/infra/repos/runs"
	"github.com/mmrzaf/novagen/internal/infra/store"
	"github.com/mmrzaf/novagen/internal/infra/targets"
	"github.com/mmrzaf/novagen/internal/logging"
	"github.com/mmrzaf/novagen/internal/registry"
	"github.com/mmrzaf/novagen/internal/schema"
	"github.com/mmrzaf/novagen/internal/seed"
	"github.com/mmrzaf/novagen/internal/validation"
)

type DatasetService struct {
	cfg         *config.Config
	store       *store.CSVStore
	runRepo     runs.Repository
	genRegistry *registry.GeneratorRegistry
	validator   *validation.Validator
	logger      *logging.Logger
}

// NewDatasetService wires the generator, file store and run history.
// runRepo may be nil, in which case runs are not recorded.
func NewDatasetService(
	cfg *config.Config,
	st *store.CSVStore,
	runRepo runs.Repository,
	genRegistry *registry.GeneratorRegistry,
	logger *logging.Logger,
) *DatasetService {
	return &DatasetService{
		cfg:         cfg,
		store:       st,
		runRepo:     runRepo,
		genRegistry: genRegistry,
		validator:   validation.NewValidator(genRegistry),
		logger:      logger.WithComponent("dataset_service"),
	}
}

// CheckSchema validates the built-in rule set against the registry.
func (s *DatasetService) CheckSchema() error {
	return s.validator.ValidateRules(schema.Rules())
}

func (s *DatasetService) executor(onRow func()) *exec.Executor {
	e := exec.NewExecutor(s.genRegistry, schema.Rules())
	if onRow != nil {
		e.OnRow(onRow)
	}
	return e
}

// Sample reseeds with the configured seed and returns n rows, so repeated
// calls return the same table.
func (s *DatasetService) Sample(ctx context.Context, n int) (*domain.Table, error) {
	ctl := seed.New(s.cfg.Seed)
	s.logger.Debugw("sample.seeded", map[string]any{"seed": ctl.Seed(), "rows": n})
	return s.executor(nil).Generate(ctx, n, ctl.Rand())
}

type GenerateRequest struct {
	Rows       int
	Seed       *int64
	OutputPath string
	OnRow      func()
}

type GenerateResult struct {
	Run     *domain.Run
	Table   *domain.Table
	Missing []string
}

// Generate produces a seeded table, checks it against the schema, saves it
// when OutputPath is set and records the run.
func (s *DatasetService) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if req.Rows < 0 {
		return nil, fmt.Errorf("%w: rows must be >= 0, got %d", exec.ErrInvalidArgument, req.Rows)
	}

	seedVal := s.cfg.Seed
	if req.Seed != nil {
		seedVal = *req.Seed
	}
	rules := schema.Rules()

	configHash, err := hashing.HashRunConfig(rules, req.Rows, seedVal)
	if err != nil {
		return nil, fmt.Errorf("failed to hash run config: %w", err)
	}

	run := &domain.Run{
		Seed:       seedVal,
		Rows:       req.Rows,
		ConfigHash: configHash,
		OutputPath: req.OutputPath,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	if s.runRepo != nil {
		if err := s.runRepo.Create(run); err != nil {
			return nil, fmt.Errorf("failed to create run: %w", err)
		}
	}

	ctl := seed.New(seedVal)
	s.logger.Infow("generate.started", map[string]any{"run_id": run.ID, "rows": req.Rows, "seed": ctl.Seed()})

	table, err := s.executor(req.OnRow).Generate(ctx, req.Rows, ctl.Rand())
	if err != nil {
		s.failRun(run, err)
		return nil, err
	}
	s.logger.Debugw("generate.rows_drawn", map[string]any{"run_id": run.ID, "rows": table.Len()})

	missing := validation.MissingColumns(table)
	if len(missing) > 0 {
		s.logger.Warnw("generate.schema_mismatch", map[string]any{"run_id": run.ID, "missing": missing})
	}

	if req.OutputPath != "" {
		if err := s.store.Save(table, req.OutputPath); err != nil {
			err = fmt.Errorf("failed to save dataset: %w", err)
			s.failRun(run, err)
			return nil, err
		}
		s.logger.Debugw("generate.saved", map[string]any{"run_id": run.ID, "path": req.OutputPath})
	}

	tableHash, err := hashing.HashTable(table)
	if err != nil {
		s.failRun(run, err)
		return nil, err
	}

	now := time.Now().UTC()
	stats, _ := json.Marshal(domain.RunStats{
		RowsGenerated:   table.Len(),
		MissingColumns:  missing,
		DurationSeconds: now.Sub(run.StartedAt).Seconds(),
	})
	run.TableHash = tableHash
	run.Stats = stats
	run.Status = domain.RunStatusSuccess
	run.CompletedAt = &now
	if s.runRepo != nil {
		if err := s.runRepo.Update(run); err != nil {
			s.logger.Errorw("run.update_failed", map[string]any{"run_id": run.ID, "error": err.Error()})
		}
	}

	s.logger.Infow("generate.completed", map[string]any{
		"run_id":     run.ID,
		"rows":       table.Len(),
		"table_hash": tableHash,
		"output":     req.OutputPath,
	})

	return &GenerateResult{Run: run, Table: table, Missing: missing}, nil
}

func (s *DatasetService) failRun(run *domain.Run, cause error) {
	s.logger.Errorw("generate.failed", map[string]any{"run_id": run.ID, "error": cause.Error()})
	if s.runRepo == nil {
		return
	}
	now := time.Now().UTC()
	run.Status = domain.RunStatusFailed
	run.Error = cause.Error()
	run.CompletedAt = &now
	if err := s.runRepo.Update(run); err != nil {
		s.logger.Errorw("run.update_failed", map[string]any{"run_id": run.ID, "error": err.Error()})
	}
}

// ValidateFile loads a dataset and reports missing required columns.
func (s *DatasetService) ValidateFile(path string) ([]string, error) {
	table, err := s.store.Load(path)
	if err != nil {
		return nil, err
	}
	missing := validation.MissingColumns(table)
	s.logger.Infow("validate.completed", map[string]any{"path": path, "rows": table.Len(), "missing": missing})
	return missing, nil
}

type ExportRequest struct {
	// SourcePath is a CSV dataset to export; when empty Rows are generated.
	SourcePath string
	Rows       int
	Seed       *int64
	Target     domain.TargetConfig
	Table      string
	Mode       string
}

func (s *DatasetService) Export(ctx context.Context, req *ExportRequest) (int, error) {
	if !validation.IsValidIdentifier(req.Table) {
		return 0, fmt.Errorf("%w: invalid table identifier: %s", exec.ErrInvalidArgument, req.Table)
	}
	mode := req.Mode
	if mode == "" {
		mode = s.cfg.DefaultMode
	}
	if !validation.IsValidMode(mode) {
		return 0, fmt.Errorf("%w: unknown table mode: %s", exec.ErrInvalidArgument, mode)
	}

	target, err := buildTarget(req.Target)
	if err != nil {
		return 0, err
	}

	var table *domain.Table
	if req.SourcePath != "" {
		table, err = s.store.Load(req.SourcePath)
		if err != nil {
			return 0, err
		}
	} else {
		res, err := s.Generate(ctx, &GenerateRequest{Rows: req.Rows, Seed: req.Seed})
		if err != nil {
			return 0, err
		}
		table = res.Table
	}

	for _, c := range table.Columns {
		if !validation.IsValidIdentifier(c) {
			return 0, fmt.Errorf("%w: invalid column identifier: %s", exec.ErrInvalidArgument, c)
		}
	}

	n, err := s.executor(nil).Export(ctx, table, target, req.Table, mode)
	safe := targets.RedactTarget(&req.Target)
	fields := map[string]any{
		"kind":  safe.Kind,
		"dsn":   safe.DSN,
		"table": req.Table,
		"mode":  mode,
		"rows":  n,
	}
	if err != nil {
		fields["error"] = err.Error()
		s.logger.Errorw("export.failed", fields)
		return n, err
	}
	s.logger.Infow("export.completed", fields)
	return n, nil
}
