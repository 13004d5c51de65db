package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// Digest returns the hex SHA-256 of the JSON encoding of ds. Equal datasets,
// row order included, have equal digests. It keys the result cache and
// correlates the events of a run.
func Digest(ds *domain.Dataset) (string, error) {
	data, err := json.Marshal(ds)
	if err != nil {
		return "", fmt.Errorf("failed to encode dataset: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
