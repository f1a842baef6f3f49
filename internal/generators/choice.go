package generators

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mmrzaf/novagen/internal/domain"
)

type ChoiceGenerator struct{}

func (g *ChoiceGenerator) Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error) {
	if rng == nil {
		return nil, errNoRand
	}
	values, err := choiceValues(spec.Params)
	if err != nil {
		return nil, err
	}

	weightsRaw, hasWeights := spec.Params["weights"]
	if !hasWeights {
		return values[rng.Intn(len(values))], nil
	}

	weights, err := choiceWeights(weightsRaw, len(values))
	if err != nil {
		return nil, err
	}

	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}

	r := rng.Float64() * totalWeight
	cumWeight := 0.0
	for i, w := range weights {
		cumWeight += w
		if r < cumWeight {
			return values[i], nil
		}
	}

	return values[len(values)-1], nil
}

func (g *ChoiceGenerator) Validate(spec domain.GeneratorSpec) error {
	if spec.Params == nil {
		return errors.New("choice requires 'values' param")
	}
	values, err := choiceValues(spec.Params)
	if err != nil {
		return err
	}
	if weightsRaw, hasWeights := spec.Params["weights"]; hasWeights {
		if _, err := choiceWeights(weightsRaw, len(values)); err != nil {
			return err
		}
	}
	return nil
}

func choiceValues(params map[string]interface{}) ([]interface{}, error) {
	valuesRaw, ok := params["values"]
	if !ok {
		return nil, errors.New("choice requires 'values' param")
	}

	var values []interface{}
	switch v := valuesRaw.(type) {
	case []interface{}:
		values = v
	case []string:
		values = make([]interface{}, len(v))
		for i, s := range v {
			values[i] = s
		}
	default:
		return nil, errors.New("'values' must be a list")
	}

	if len(values) == 0 {
		return nil, errors.New("'values' cannot be empty")
	}
	return values, nil
}

func choiceWeights(raw interface{}, n int) ([]float64, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New("'weights' must be a list")
	}
	if len(list) != n {
		return nil, errors.New("'weights' and 'values' must have the same length")
	}

	weights := make([]float64, n)
	total := 0.0
	for i, w := range list {
		f, ok := toFloat64(w)
		if !ok {
			return nil, fmt.Errorf("non-numeric weight: %v", w)
		}
		if f < 0 {
			return nil, fmt.Errorf("negative weight: %v", w)
		}
		weights[i] = f
		total += f
	}
	if total == 0 {
		return nil, errors.New("total weight is zero")
	}
	return weights, nil
}
