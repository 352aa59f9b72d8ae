package update_menu_item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
)

type fixture struct {
	repo   *catalogtest.MenuItemRepo
	outbox *catalogtest.OutboxRepo
	cache  *catalogtest.StatisticsCache
	comm   *catalogtest.Committer
	uc     *Interactor
}

func setup(t *testing.T) *fixture {
	f := &fixture{
		repo:   catalogtest.NewMenuItemRepo(catalogtest.NewItem(t, "item-1", nil)),
		outbox: &catalogtest.OutboxRepo{},
		cache:  &catalogtest.StatisticsCache{},
		comm:   &catalogtest.Committer{},
	}
	f.uc = NewInteractor(f.repo, f.outbox, f.cache, f.comm,
		clock.NewMockClock(catalogtest.Now), catalogtest.DiscardLogger())
	return f
}

func ptr[T any](v T) *T { return &v }

func TestUpdateMenuItem_PartialUpdate(t *testing.T) {
	f := setup(t)

	version, err := f.uc.Execute(context.Background(), &Request{
		MenuItemID: "item-1",
		Name:       ptr("Oat Flat White"),
		Allergens:  ptr([]string{}),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	require.Len(t, f.repo.Updated, 1)
	item := f.repo.Updated[0]
	assert.Equal(t, "Oat Flat White", item.Name())
	assert.Empty(t, item.Allergens())
	assert.Equal(t, "Double ristretto with steamed milk", item.Description())

	assert.Equal(t, []string{domain.EventMenuItemUpdated}, f.outbox.EventTypes())
	assert.Len(t, f.comm.Plans, 1)
	assert.Empty(t, f.comm.Guards, "no version supplied, no version check")
	assert.Zero(t, f.cache.Invalidations)
}

func TestUpdateMenuItem_AvailabilityInvalidatesStatistics(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{MenuItemID: "item-1", IsAvailable: ptr(false)})
	require.NoError(t, err)

	assert.Equal(t, []string{domain.EventMenuItemUpdated, domain.EventAvailabilityChanged}, f.outbox.EventTypes())
	assert.Equal(t, 1, f.cache.Invalidations)
}

func TestUpdateMenuItem_NoChanges(t *testing.T) {
	f := setup(t)

	version, err := f.uc.Execute(context.Background(), &Request{MenuItemID: "item-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.Empty(t, f.comm.Plans)
}

func TestUpdateMenuItem_ExpectedVersion(t *testing.T) {
	t.Run("matching version uses the version check", func(t *testing.T) {
		f := setup(t)

		_, err := f.uc.Execute(context.Background(), &Request{
			MenuItemID:      "item-1",
			ExpectedVersion: ptr(int64(1)),
			IsFeatured:      ptr(true),
		})
		require.NoError(t, err)
		require.Len(t, f.comm.Guards, 1)
		assert.Equal(t, int64(1), f.comm.Guards[0].ExpectedVersion)
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		f := setup(t)

		_, err := f.uc.Execute(context.Background(), &Request{
			MenuItemID:      "item-1",
			ExpectedVersion: ptr(int64(7)),
			IsFeatured:      ptr(true),
		})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
		assert.Empty(t, f.comm.Plans)
	})
}

func TestUpdateMenuItem_InvalidUpdateIsAtomic(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		MenuItemID:      "item-1",
		Name:            ptr("Renamed"),
		PreparationTime: ptr(int64(-5)),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.repo.Updated)
	assert.Empty(t, f.outbox.Events)
}

func TestUpdateMenuItem_UnknownEnum(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{MenuItemID: "item-1", Category: ptr("cocktails")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateMenuItem_NotFound(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{MenuItemID: "missing", Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
