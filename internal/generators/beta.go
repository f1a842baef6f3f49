package generators

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mmrzaf/novagen/internal/domain"
)

type BetaGenerator struct{}

func (g *BetaGenerator) Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error) {
	if rng == nil {
		return nil, errNoRand
	}
	alpha, err := floatParam(spec.Params, "alpha")
	if err != nil {
		return nil, err
	}
	beta, err := floatParam(spec.Params, "beta")
	if err != nil {
		return nil, err
	}

	d := distuv.Beta{Alpha: alpha, Beta: beta, Src: rng}
	return d.Rand(), nil
}

func (g *BetaGenerator) Validate(spec domain.GeneratorSpec) error {
	if err := requireParams(spec, "alpha", "beta"); err != nil {
		return err
	}
	alpha, err := floatParam(spec.Params, "alpha")
	if err != nil {
		return err
	}
	beta, err := floatParam(spec.Params, "beta")
	if err != nil {
		return err
	}
	if alpha <= 0 || beta <= 0 {
		return errors.New("'alpha' and 'beta' must be > 0")
	}
	return nil
}
