package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// ClassifyError maps a Spanner failure onto the catalog error taxonomy.
// Catalog errors returned from inside a transaction pass through unchanged.
// It is also installed as the committer's error mapper.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, committer.ErrVersionConflict):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrVersionConflict, err)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInconsistentState),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, domain.ErrVersionConflict):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewStoreUnavailableError(op, err)
	}

	switch spanner.ErrCode(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return domain.NewStoreUnavailableError(op, err)
	case codes.NotFound:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrNotFound, err)
	case codes.AlreadyExists:
		// A unique key lost a race with a concurrent writer.
		return fmt.Errorf("%s: %w: %w", op, domain.ErrVersionConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isRowNotFound(err error) bool {
	return spanner.ErrCode(err) == codes.NotFound
}
