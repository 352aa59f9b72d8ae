// Package queries holds the read side of the catalog: one query per
// subpackage, each reading through a read model or repository.
package queries

import "github.com/light-bringer/menucat-service/internal/app/catalog/domain"

// Listing limits shared by the fixed-shape queries.
const (
	DefaultListLimit int64 = 10
	MaxListLimit     int64 = 50
)

// NormalizeLimit applies the default to 0 and rejects values outside [1, max].
func NormalizeLimit(limit, def, max int64) (int64, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 1 || limit > max {
		return 0, domain.NewValidationError("limit", "out of range")
	}
	return limit, nil
}
