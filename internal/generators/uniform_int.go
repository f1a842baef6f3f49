package generators

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mmrzaf/novagen/internal/domain"
)

// UniformIntGenerator draws from the half-open range [min, max).
type UniformIntGenerator struct{}

func (g *UniformIntGenerator) Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error) {
	if rng == nil {
		return nil, errNoRand
	}
	min, max, err := intBounds(spec.Params)
	if err != nil {
		return nil, err
	}

	return float64(min + rng.Int63n(max-min)), nil
}

func (g *UniformIntGenerator) Validate(spec domain.GeneratorSpec) error {
	if err := requireParams(spec, "min", "max"); err != nil {
		return err
	}
	_, _, err := intBounds(spec.Params)
	return err
}

func intBounds(params map[string]interface{}) (int64, int64, error) {
	minVal, ok := params["min"]
	if !ok {
		return 0, 0, fmt.Errorf("missing 'min' param")
	}
	maxVal, ok := params["max"]
	if !ok {
		return 0, 0, fmt.Errorf("missing 'max' param")
	}
	min, ok := toInt64(minVal)
	if !ok {
		return 0, 0, fmt.Errorf("'min' must be an integer")
	}
	max, ok := toInt64(maxVal)
	if !ok {
		return 0, 0, fmt.Errorf("'max' must be an integer")
	}

	if max <= min {
		return 0, 0, fmt.Errorf("max (%d) must be greater than min (%d)", max, min)
	}
	return min, max, nil
}
