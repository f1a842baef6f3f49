package generators

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mmrzaf/novagen/internal/domain"
)

// SequenceGenerator renders prefix + zero-padded (RowIndex+start). It consumes
// no randomness.
type SequenceGenerator struct{}

func (g *SequenceGenerator) Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error) {
	prefix, _ := spec.Params["prefix"].(string)

	width := int64(0)
	if raw, ok := spec.Params["width"]; ok {
		w, ok := toInt64(raw)
		if !ok {
			return nil, errors.New("'width' must be an integer")
		}
		width = w
	}

	start := int64(1)
	if raw, ok := spec.Params["start"]; ok {
		s, ok := toInt64(raw)
		if !ok {
			return nil, errors.New("'start' must be an integer")
		}
		start = s
	}

	return fmt.Sprintf("%s%0*d", prefix, int(width), ctx.RowIndex+start), nil
}

func (g *SequenceGenerator) Validate(spec domain.GeneratorSpec) error {
	if raw, ok := spec.Params["prefix"]; ok {
		if _, ok := raw.(string); !ok {
			return errors.New("'prefix' must be a string")
		}
	}
	if raw, ok := spec.Params["width"]; ok {
		w, ok := toInt64(raw)
		if !ok || w < 0 {
			return errors.New("'width' must be a non-negative integer")
		}
	}
	return nil
}
