package create_menu_item

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
)

type fixture struct {
	repo    *catalogtest.MenuItemRepo
	outbox  *catalogtest.OutboxRepo
	history *catalogtest.PriceHistoryRepo
	cache   *catalogtest.StatisticsCache
	comm    *catalogtest.Committer
	uc      *Interactor
}

func setup() *fixture {
	f := &fixture{
		repo:    catalogtest.NewMenuItemRepo(),
		outbox:  &catalogtest.OutboxRepo{},
		history: &catalogtest.PriceHistoryRepo{},
		cache:   &catalogtest.StatisticsCache{},
		comm:    &catalogtest.Committer{},
	}
	f.uc = NewInteractor(f.repo, f.outbox, f.history, f.cache, f.comm,
		clock.NewMockClock(catalogtest.Now), catalogtest.DiscardLogger())
	f.uc.newID = func() string { return "item-new" }
	return f
}

func validRequest() *Request {
	return &Request{
		Name:        "Chai Latte",
		Description: "Spiced black tea with milk",
		Price:       domain.MustMoney(425, 100),
		Category:    "tea",
		DietaryTags: []string{"vegetarian"},
		Allergens:   []string{"dairy"},
		Tags:        []string{"spiced"},
		CreatedBy:   "admin-1",
	}
}

func TestCreateMenuItem_Success(t *testing.T) {
	f := setup()

	id, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "item-new", id)

	require.Len(t, f.repo.Inserted, 1)
	item := f.repo.Inserted[0]
	assert.Equal(t, domain.CategoryTea, item.Category())
	assert.True(t, item.IsAvailable())
	assert.True(t, item.HasUnlimitedStock())
	assert.Equal(t, domain.DifficultyEasy, item.Difficulty())
	assert.True(t, item.OriginalPrice().Equals(domain.MustMoney(425, 100)))
	assert.Equal(t, catalogtest.Now, item.CreatedAt())

	require.Len(t, f.history.Changes, 1)
	assert.Nil(t, f.history.Changes[0].OldPrice)
	assert.Equal(t, "4.25", f.history.Changes[0].NewPrice.String())

	assert.Equal(t, []string{domain.EventMenuItemCreated}, f.outbox.EventTypes())
	require.Len(t, f.comm.Plans, 1)
	assert.Equal(t, 3, f.comm.Plans[0].Count())
	assert.Equal(t, 1, f.cache.Invalidations)
}

func TestCreateMenuItem_ExplicitOriginalPrice(t *testing.T) {
	f := setup()
	req := validRequest()
	req.OriginalPrice = domain.MustMoney(500, 100)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "5.00", f.repo.Inserted[0].OriginalPrice().String())
}

func TestCreateMenuItem_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		field  string
	}{
		{"unknown category", func(r *Request) { r.Category = "cocktails" }, domain.FieldCategory},
		{"unknown allergen", func(r *Request) { r.Allergens = []string{"celery"} }, domain.FieldAllergens},
		{"unknown dietary tag", func(r *Request) { r.DietaryTags = []string{"paleo"} }, domain.FieldDietaryTags},
		{"bad difficulty", func(r *Request) { r.Difficulty = "extreme" }, domain.FieldDifficulty},
		{"missing price", func(r *Request) { r.Price = nil }, domain.FieldPrice},
		{"negative price", func(r *Request) { r.Price = domain.MustMoney(-1, 1) }, domain.FieldPrice},
		{"empty name", func(r *Request) { r.Name = "  " }, domain.FieldName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, f.comm.Plans)
			assert.Zero(t, f.cache.Invalidations)
		})
	}
}

func TestCreateMenuItem_CommitFailure(t *testing.T) {
	f := setup()
	f.comm.Err = domain.NewStoreUnavailableError("commit", errors.New("spanner down"))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Zero(t, f.cache.Invalidations)
}

func TestCreateMenuItem_CacheFailureDoesNotFailWrite(t *testing.T) {
	f := setup()
	f.cache.Err = errors.New("redis down")

	id, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
