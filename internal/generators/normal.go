package generators

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mmrzaf/novagen/internal/domain"
)

type NormalGenerator struct{}

func (g *NormalGenerator) Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error) {
	if rng == nil {
		return nil, errNoRand
	}
	mean, err := floatParam(spec.Params, "mean")
	if err != nil {
		return nil, err
	}
	std, err := floatParam(spec.Params, "std")
	if err != nil {
		return nil, err
	}

	d := distuv.Normal{Mu: mean, Sigma: std, Src: rng}
	return d.Rand(), nil
}

func (g *NormalGenerator) Validate(spec domain.GeneratorSpec) error {
	if err := requireParams(spec, "mean", "std"); err != nil {
		return err
	}
	std, err := floatParam(spec.Params, "std")
	if err != nil {
		return err
	}
	if std <= 0 {
		return errors.New("'std' must be > 0")
	}
	return nil
}
