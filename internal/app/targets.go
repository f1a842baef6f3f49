package app

import (
	"fmt"

	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/exec"
	"github.com/mmrzaf/novagen/internal/infra/targets/postgres"
	"github.com/mmrzaf/novagen/internal/infra/targets/sqlite"
	"github.com/mmrzaf/novagen/internal/validation"
)

func buildTarget(cfg domain.TargetConfig) (exec.Target, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: target dsn is required", exec.ErrInvalidArgument)
	}
	switch cfg.Kind {
	case "postgres":
		if cfg.Schema != "" && !validation.IsValidIdentifier(cfg.Schema) {
			return nil, fmt.Errorf("%w: invalid schema identifier: %s", exec.ErrInvalidArgument, cfg.Schema)
		}
		return postgres.NewPostgresTarget(cfg.DSN, cfg.Schema), nil
	case "sqlite":
		return sqlite.NewSQLiteTarget(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: unsupported target kind: %s", exec.ErrInvalidArgument, cfg.Kind)
	}
}
