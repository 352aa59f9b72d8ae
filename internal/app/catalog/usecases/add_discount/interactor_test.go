package add_discount

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
)

func setup(t *testing.T) (*Interactor, *catalogtest.MenuItemRepo, *catalogtest.OutboxRepo, *catalogtest.Committer) {
	repo := catalogtest.NewMenuItemRepo(catalogtest.NewItem(t, "item-1", nil))
	outbox := &catalogtest.OutboxRepo{}
	comm := &catalogtest.Committer{}
	uc := NewInteractor(repo, outbox, comm, clock.NewMockClock(catalogtest.Now), catalogtest.DiscardLogger())
	return uc, repo, outbox, comm
}

func TestAddDiscount_Success(t *testing.T) {
	uc, repo, outbox, comm := setup(t)
	ends := catalogtest.Now.Add(24 * time.Hour)

	pos, err := uc.Execute(context.Background(), &Request{
		MenuItemID: "item-1",
		Kind:       "percentage",
		Value:      decimal.NewFromInt(20),
		EndsAt:     &ends,
		Active:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	require.Len(t, repo.Updated, 1)
	quote := repo.Updated[0].Quote(catalogtest.Now)
	assert.Equal(t, "3.60", quote.EffectivePrice.String())
	assert.Equal(t, int64(20), quote.DiscountPercentage)

	assert.Equal(t, []string{domain.EventDiscountAdded}, outbox.EventTypes())
	assert.Len(t, comm.Guards, 1)
}

func TestAddDiscount_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"unknown kind", &Request{MenuItemID: "item-1", Kind: "bogo", Value: decimal.NewFromInt(1)}},
		{"percentage over 100", &Request{MenuItemID: "item-1", Kind: "percentage", Value: decimal.NewFromInt(120)}},
		{"negative value", &Request{MenuItemID: "item-1", Kind: "fixed", Value: decimal.NewFromInt(-1)}},
		{"end before start", &Request{
			MenuItemID: "item-1", Kind: "fixed", Value: decimal.NewFromInt(1),
			StartsAt: timePtr(catalogtest.Now), EndsAt: timePtr(catalogtest.Now.Add(-time.Hour)),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _, comm := setup(t)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, repo.Updated)
			assert.Empty(t, comm.Plans)
		})
	}
}

func TestAddDiscount_NotFound(t *testing.T) {
	uc, _, _, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{MenuItemID: "missing", Kind: "fixed", Value: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func timePtr(t time.Time) *time.Time { return &t }
