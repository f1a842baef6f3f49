package generators

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mmrzaf/novagen/internal/domain"
)

// ExponentialGenerator is parameterised by its mean (scale), not its rate.
type ExponentialGenerator struct{}

func (g *ExponentialGenerator) Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error) {
	if rng == nil {
		return nil, errNoRand
	}
	mean, err := floatParam(spec.Params, "mean")
	if err != nil {
		return nil, err
	}

	d := distuv.Exponential{Rate: 1 / mean, Src: rng}
	return d.Rand(), nil
}

func (g *ExponentialGenerator) Validate(spec domain.GeneratorSpec) error {
	if err := requireParams(spec, "mean"); err != nil {
		return err
	}
	mean, err := floatParam(spec.Params, "mean")
	if err != nil {
		return err
	}
	if mean <= 0 {
		return errors.New("'mean' must be > 0")
	}
	return nil
}
