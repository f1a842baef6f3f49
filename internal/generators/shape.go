package generators

import (
	"fmt"
	"math"

	"github.com/mmrzaf/novagen/internal/domain"
)

// ApplyShape post-processes a raw draw for a column of type typ.
// Non-numeric draws pass through untouched.
func ApplyShape(raw interface{}, shape domain.Shape, typ domain.ColumnType) (interface{}, error) {
	v, ok := toFloat64(raw)
	if !ok {
		if typ == domain.ColumnTypeString {
			return raw, nil
		}
		return nil, fmt.Errorf("cannot shape non-numeric value %v as %s", raw, typ)
	}

	if shape.Abs {
		v = math.Abs(v)
	}
	if shape.Min != nil && v < *shape.Min {
		v = *shape.Min
	}
	if shape.Max != nil && v > *shape.Max {
		v = *shape.Max
	}

	switch typ {
	case domain.ColumnTypeInt:
		return int64(v), nil
	case domain.ColumnTypeFloat:
		return roundTo(v, shape.Round), nil
	case domain.ColumnTypeString:
		return fmt.Sprint(raw), nil
	default:
		return nil, fmt.Errorf("unknown column type: %s", typ)
	}
}

func roundTo(v float64, places int) float64 {
	if places <= 0 {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
