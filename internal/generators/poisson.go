package generators

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mmrzaf/novagen/internal/domain"
)

// PoissonGenerator returns integral counts as float64; the column shape casts them.
type PoissonGenerator struct{}

func (g *PoissonGenerator) Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error) {
	if rng == nil {
		return nil, errNoRand
	}
	lambda, err := floatParam(spec.Params, "lambda")
	if err != nil {
		return nil, err
	}

	d := distuv.Poisson{Lambda: lambda, Src: rng}
	return d.Rand(), nil
}

func (g *PoissonGenerator) Validate(spec domain.GeneratorSpec) error {
	if err := requireParams(spec, "lambda"); err != nil {
		return err
	}
	lambda, err := floatParam(spec.Params, "lambda")
	if err != nil {
		return err
	}
	if lambda <= 0 {
		return errors.New("'lambda' must be > 0")
	}
	return nil
}
