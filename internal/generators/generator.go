package generators

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mmrzaf/novagen/internal/domain"
)

// Generator draws one cell value per call. All randomness comes from rng so
// that a seeded source yields a reproducible sequence.
type Generator interface {
	Generate(rng *rand.Rand, spec domain.GeneratorSpec, ctx GeneratorContext) (interface{}, error)
	Validate(spec domain.GeneratorSpec) error
}

type GeneratorContext struct {
	RowIndex int64
}

func requireParams(spec domain.GeneratorSpec, names ...string) error {
	if spec.Params == nil {
		return fmt.Errorf("%s requires %s params", spec.Type, quoteList(names))
	}
	for _, n := range names {
		if _, ok := spec.Params[n]; !ok {
			return fmt.Errorf("%s requires %s params", spec.Type, quoteList(names))
		}
	}
	return nil
}

func floatParam(params map[string]interface{}, name string) (float64, error) {
	v, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("missing '%s' param", name)
	}
	f, ok := toFloat64(v)
	if !ok {
		return 0, fmt.Errorf("'%s' must be a number", name)
	}
	return f, nil
}

func quoteList(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " and "
		}
		out += "'" + n + "'"
	}
	return out
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		return int64(val), true
	default:
		return 0, false
	}
}

var errNoRand = errors.New("nil random source")
