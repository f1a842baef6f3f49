package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/mmrzaf/novagen/internal/domain"
)

type runConfigHashPayload struct {
	Rules []map[string]interface{} `json:"rules"`
	Rows  int                      `json:"rows"`
	Seed  int64                    `json:"seed"`
}

// HashRunConfig fingerprints everything that determines a generated table.
func HashRunConfig(rules []domain.ColumnRule, rows int, seed int64) (string, error) {
	p := runConfigHashPayload{
		Rules: canonicalizeRules(rules),
		Rows:  rows,
		Seed:  seed,
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
