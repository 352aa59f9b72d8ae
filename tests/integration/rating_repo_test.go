//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/repo"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
	"github.com/light-bringer/menucat-service/tests/testutil"
)

func newRatingRepo(t *testing.T) (*repo.RatingRepo, *repo.MenuItemRepo, func(), func() string) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)
	clk := testutil.NewMockClock()
	items := repo.NewMenuItemRepo(client)
	comm := committer.NewCommitter(client, committer.WithErrorMapper(repo.ClassifyError))
	ratings := repo.NewRatingRepo(comm, items, repo.NewOutboxRepo(), clk)

	create := func() string {
		return testutil.CreateTestMenuItem(t, client, clk.Now().Add(-time.Hour), nil)
	}
	return ratings, items, cleanup, create
}

func review(menuItemID string, rating float64) contracts.NewReview {
	return contracts.NewReview{ReviewID: uuid.New().String(), MenuItemID: menuItemID, Rating: rating}
}

func TestRatingRepo_RecomputesFromAllReviews(t *testing.T) {
	ratings, items, cleanup, create := newRatingRepo(t)
	defer cleanup()

	ctx := context.Background()
	id := create()

	summary, err := ratings.RecordReview(ctx, review(id, 4))
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{Average: 4, Count: 1}, summary)

	summary, err = ratings.RecordReview(ctx, review(id, 5))
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{Average: 4.5, Count: 2}, summary)

	summary, err = ratings.RecordReview(ctx, review(id, 5))
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{Average: 4.7, Count: 3}, summary)

	item, err := items.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, summary, item.Rating())
}

func TestRatingRepo_RepeatReviewerReplacesRating(t *testing.T) {
	ratings, items, cleanup, create := newRatingRepo(t)
	defer cleanup()

	ctx := context.Background()
	id := create()

	first := review(id, 5)
	first.ReviewerID = "u-7"
	summary, err := ratings.RecordReview(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{Average: 5, Count: 1}, summary)

	again := review(id, 1)
	again.ReviewerID = "u-7"
	again.Comment = "changed my mind"
	summary, err = ratings.RecordReview(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{Average: 1, Count: 1}, summary)

	other := review(id, 4)
	other.ReviewerID = "u-8"
	summary, err = ratings.RecordReview(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{Average: 2.5, Count: 2}, summary)

	item, err := items.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, summary, item.Rating())
}

func TestRatingRepo_CorruptReviewLeavesSummaryUntouched(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := testutil.NewMockClock()
	items := repo.NewMenuItemRepo(client)
	comm := committer.NewCommitter(client, committer.WithErrorMapper(repo.ClassifyError))
	ratings := repo.NewRatingRepo(comm, items, repo.NewOutboxRepo(), clk)

	id := testutil.CreateTestMenuItem(t, client, clk.Now().Add(-time.Hour), nil)
	_, err := ratings.RecordReview(ctx, review(id, 3))
	require.NoError(t, err)

	testutil.InsertRawReview(t, client, id, 9)

	_, err = ratings.RecordReview(ctx, review(id, 5))
	require.ErrorIs(t, err, domain.ErrInconsistentState)

	item, err := items.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{Average: 3, Count: 1}, item.Rating())
	testutil.AssertRowCount(t, client, "reviews", 2)
}

func TestRatingRepo_UnknownItem(t *testing.T) {
	ratings, _, cleanup, _ := newRatingRepo(t)
	defer cleanup()

	_, err := ratings.RecordReview(context.Background(), review("missing", 4))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Concurrent reviews must all be counted; no aggregation may overwrite a
// summary computed from a larger review set.
func TestRatingRepo_ConcurrentReviews(t *testing.T) {
	ratings, items, cleanup, create := newRatingRepo(t)
	defer cleanup()

	ctx := context.Background()
	id := create()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := ratings.RecordReview(ctx, review(id, float64(1+i%5))); err != nil {
				errs <- fmt.Errorf("review %d: %w", i, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	item, err := items.GetByID(ctx, id)
	require.NoError(t, err)
	// ratings 1,2,3,4,5,1,2,3 → 21/8 = 2.625
	assert.Equal(t, domain.RatingSummary{Average: 2.6, Count: n}, item.Rating())
}
