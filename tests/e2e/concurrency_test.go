//go:build integration

package e2e

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
)

// Two writers racing on the same version: exactly one wins.
func TestConcurrentUpdates_OptimisticLock(t *testing.T) {
	s := setupTest(t)

	item := s.create(t, NewMenuItemBuilder())
	path := "/api/v1/menu-items/" + item.ID

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	errs := make([]error, 2)
	for i, name := range []string{"Flat White No. 1", "Flat White No. 2"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			statuses[i], errs[i] = s.send(http.MethodPatch, path, map[string]interface{}{
				"version": item.Version,
				"name":    name,
			}, nil)
		}(i, name)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, statuses)

	var got contracts.MenuItemDTO
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, nil, &got))
	assert.Equal(t, item.Version+1, got.Version)
}

// Concurrent ratings are all reflected in the summary.
func TestConcurrentRatings_NoLostUpdates(t *testing.T) {
	s := setupTest(t)

	item := s.create(t, NewMenuItemBuilder())
	path := "/api/v1/menu-items/" + item.ID

	const n = 6
	var wg sync.WaitGroup
	statuses := make([]int, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i], errs[i] = s.send(http.MethodPost, path+"/ratings", map[string]interface{}{
				"rating":      4,
				"reviewer_id": fmt.Sprintf("guest-%d", i),
			}, nil)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, http.StatusCreated, statuses[i], "rating %d", i)
	}

	var got contracts.MenuItemDTO
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, nil, &got))
	assert.Equal(t, contracts.RatingDTO{Average: 4, Count: n}, got.Rating)
}

// A reviewer who rates twice is one data point; the later rating wins.
func TestRepeatRating_SameReviewer(t *testing.T) {
	s := setupTest(t)

	item := s.create(t, NewMenuItemBuilder())
	path := "/api/v1/menu-items/" + item.ID

	for _, rating := range []int{5, 1} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, path+"/ratings", map[string]interface{}{
			"rating":      rating,
			"reviewer_id": "u-7",
		}, nil))
	}

	var got contracts.MenuItemDTO
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, nil, &got))
	assert.Equal(t, contracts.RatingDTO{Average: 1, Count: 1}, got.Rating)
}
