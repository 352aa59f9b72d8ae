package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/category_statistics"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/get_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_featured"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/quote_price"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/search_menu_items"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/create_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/record_order"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/record_rating"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/remove_discount"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/update_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/update_price"
)

type mockCreator struct{ mock.Mock }

func (m *mockCreator) Execute(ctx context.Context, req *create_menu_item.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockUpdater struct{ mock.Mock }

func (m *mockUpdater) Execute(ctx context.Context, req *update_menu_item.Request) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

type mockPriceUpdater struct{ mock.Mock }

func (m *mockPriceUpdater) Execute(ctx context.Context, req *update_price.Request) error {
	return m.Called(ctx, req).Error(0)
}

type mockDiscountRemover struct{ mock.Mock }

func (m *mockDiscountRemover) Execute(ctx context.Context, req *remove_discount.Request) error {
	return m.Called(ctx, req).Error(0)
}

type mockRatingRecorder struct{ mock.Mock }

func (m *mockRatingRecorder) Execute(ctx context.Context, req *record_rating.Request) (domain.RatingSummary, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.RatingSummary), args.Error(1)
}

type mockOrderRecorder struct{ mock.Mock }

func (m *mockOrderRecorder) Execute(ctx context.Context, req *record_order.Request) (*record_order.Response, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*record_order.Response)
	return res, args.Error(1)
}

type mockGetter struct{ mock.Mock }

func (m *mockGetter) Execute(ctx context.Context, req *get_menu_item.Request) (*contracts.MenuItemDTO, error) {
	args := m.Called(ctx, req)
	dto, _ := args.Get(0).(*contracts.MenuItemDTO)
	return dto, args.Error(1)
}

type mockSearcher struct{ mock.Mock }

func (m *mockSearcher) Execute(ctx context.Context, req *search_menu_items.Request) (*contracts.SearchResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*contracts.SearchResult)
	return res, args.Error(1)
}

type mockFeatured struct{ mock.Mock }

func (m *mockFeatured) Execute(ctx context.Context, req *list_featured.Request) ([]*contracts.MenuItemDTO, error) {
	args := m.Called(ctx, req)
	items, _ := args.Get(0).([]*contracts.MenuItemDTO)
	return items, args.Error(1)
}

type mockQuoter struct{ mock.Mock }

func (m *mockQuoter) Execute(ctx context.Context, req *quote_price.Request) (domain.PriceQuote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.PriceQuote), args.Error(1)
}

type mockStatistics struct{ mock.Mock }

func (m *mockStatistics) Execute(ctx context.Context) (*category_statistics.Response, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*category_statistics.Response)
	return res, args.Error(1)
}

type mockEventLister struct{ mock.Mock }

func (m *mockEventLister) Execute(ctx context.Context, req *list_events.Request) (*list_events.Response, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*list_events.Response)
	return res, args.Error(1)
}
