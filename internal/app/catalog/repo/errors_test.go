package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unavailable", status.Error(codes.Unavailable, "backend down"), domain.ErrStoreUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), domain.ErrStoreUnavailable},
		{"resource exhausted", status.Error(codes.ResourceExhausted, "quota"), domain.ErrStoreUnavailable},
		{"aborted", status.Error(codes.Aborted, "contention"), domain.ErrStoreUnavailable},
		{"context deadline", context.DeadlineExceeded, domain.ErrStoreUnavailable},
		{"not found", status.Error(codes.NotFound, "row"), domain.ErrNotFound},
		{"duplicate reviewer", status.Error(codes.AlreadyExists, "idx_reviews_reviewer"), domain.ErrVersionConflict},
		{"version conflict", fmt.Errorf("%w: expected 2", committer.ErrVersionConflict), domain.ErrVersionConflict},
		{"validation passes through", domain.NewValidationError("price", "bad"), domain.ErrValidation},
		{"inconsistent passes through", &domain.InconsistentStateError{MenuItemID: "x"}, domain.ErrInconsistentState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyError("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "op")
		})
	}
}

func TestClassifyError_Nil(t *testing.T) {
	assert.NoError(t, ClassifyError("op", nil))
}

func TestClassifyError_UnknownKeepsCause(t *testing.T) {
	cause := status.Error(codes.PermissionDenied, "nope")
	err := ClassifyError("read", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, domain.IsRetryable(err))
	assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestClassifyError_UnavailableIsRetryable(t *testing.T) {
	err := ClassifyError("read", status.Error(codes.Unavailable, "down"))
	assert.True(t, domain.IsRetryable(err))
}
