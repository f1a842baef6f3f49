package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/mmrzaf/novagen/internal/domain"
)

// HashTable fingerprints a table: columns, then each row's cells in column order.
func HashTable(table *domain.Table) (string, error) {
	rows := make([][]interface{}, table.Len())
	for i := range table.Rows {
		rows[i] = table.Values(i)
	}

	data, err := json.Marshal(map[string]interface{}{
		"columns": table.Columns,
		"rows":    rows,
	})
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func canonicalizeRules(rules []domain.ColumnRule) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rules))
	for i, r := range rules {
		m := map[string]interface{}{
			"name": r.Name,
			"type": r.Type,
			"generator": map[string]interface{}{
				"type":   r.Generator.Type,
				"params": canonicalizeParams(r.Generator.Params),
			},
			"abs":   r.Shape.Abs,
			"round": r.Shape.Round,
		}
		if r.Shape.Min != nil {
			m["min"] = *r.Shape.Min
		}
		if r.Shape.Max != nil {
			m["max"] = *r.Shape.Max
		}
		out[i] = m
	}
	return out
}

func canonicalizeParams(params map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch val := params[k].(type) {
		case map[string]interface{}:
			result[k] = canonicalizeParams(val)
		default:
			result[k] = val
		}
	}
	return result
}
