package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/category_statistics"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/get_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_featured"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_new"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_popular"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/price_history"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/quote_price"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/search_menu_items"
	"github.com/light-bringer/menucat-service/internal/app/catalog/search"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/add_discount"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/create_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/record_order"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/record_rating"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/remove_discount"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/update_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/update_price"
)

// Commands.
type (
	MenuItemCreator interface {
		Execute(ctx context.Context, req *create_menu_item.Request) (string, error)
	}
	MenuItemUpdater interface {
		Execute(ctx context.Context, req *update_menu_item.Request) (int64, error)
	}
	PriceUpdater interface {
		Execute(ctx context.Context, req *update_price.Request) error
	}
	DiscountAdder interface {
		Execute(ctx context.Context, req *add_discount.Request) (int, error)
	}
	DiscountRemover interface {
		Execute(ctx context.Context, req *remove_discount.Request) error
	}
	RatingRecorder interface {
		Execute(ctx context.Context, req *record_rating.Request) (domain.RatingSummary, error)
	}
	OrderRecorder interface {
		Execute(ctx context.Context, req *record_order.Request) (*record_order.Response, error)
	}
)

// Queries.
type (
	MenuItemGetter interface {
		Execute(ctx context.Context, req *get_menu_item.Request) (*contracts.MenuItemDTO, error)
	}
	MenuSearcher interface {
		Execute(ctx context.Context, req *search_menu_items.Request) (*contracts.SearchResult, error)
	}
	FeaturedLister interface {
		Execute(ctx context.Context, req *list_featured.Request) ([]*contracts.MenuItemDTO, error)
	}
	PopularLister interface {
		Execute(ctx context.Context, req *list_popular.Request) ([]*contracts.MenuItemDTO, error)
	}
	NewArrivalsLister interface {
		Execute(ctx context.Context, req *list_new.Request) ([]*contracts.MenuItemDTO, error)
	}
	PriceQuoter interface {
		Execute(ctx context.Context, req *quote_price.Request) (domain.PriceQuote, error)
	}
	PriceHistoryLister interface {
		Execute(ctx context.Context, req *price_history.Request) ([]contracts.PriceChange, error)
	}
	StatisticsReader interface {
		Execute(ctx context.Context) (*category_statistics.Response, error)
	}
)

// MenuServices groups the catalog operations exposed over HTTP.
type MenuServices struct {
	Create         MenuItemCreator
	Update         MenuItemUpdater
	UpdatePrice    PriceUpdater
	AddDiscount    DiscountAdder
	RemoveDiscount DiscountRemover
	RecordRating   RatingRecorder
	RecordOrder    OrderRecorder

	Get          MenuItemGetter
	Search       MenuSearcher
	Featured     FeaturedLister
	Popular      PopularLister
	New          NewArrivalsLister
	Quote        PriceQuoter
	PriceHistory PriceHistoryLister
	Statistics   StatisticsReader
}

// MenuHandler serves the /api/v1/menu-items and /api/v1/categories routes.
type MenuHandler struct {
	svc    MenuServices
	logger *slog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(svc MenuServices, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{svc: svc, logger: logger}
}

// Register adds the menu routes to mux.
func (h *MenuHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/menu-items", h.search)
	mux.HandleFunc("POST /api/v1/menu-items", h.create)
	mux.HandleFunc("GET /api/v1/menu-items/featured", h.featured)
	mux.HandleFunc("GET /api/v1/menu-items/popular", h.popular)
	mux.HandleFunc("GET /api/v1/menu-items/new", h.newArrivals)
	mux.HandleFunc("GET /api/v1/menu-items/{id}", h.get)
	mux.HandleFunc("PATCH /api/v1/menu-items/{id}", h.update)
	mux.HandleFunc("GET /api/v1/menu-items/{id}/price", h.quote)
	mux.HandleFunc("PUT /api/v1/menu-items/{id}/price", h.updatePrice)
	mux.HandleFunc("GET /api/v1/menu-items/{id}/price-history", h.priceHistory)
	mux.HandleFunc("POST /api/v1/menu-items/{id}/discounts", h.addDiscount)
	mux.HandleFunc("DELETE /api/v1/menu-items/{id}/discounts/{index}", h.removeDiscount)
	mux.HandleFunc("POST /api/v1/menu-items/{id}/ratings", h.recordRating)
	mux.HandleFunc("POST /api/v1/menu-items/{id}/orders", h.recordOrder)
	mux.HandleFunc("GET /api/v1/categories/statistics", h.statistics)
}

func (h *MenuHandler) search(w http.ResponseWriter, r *http.Request) {
	opts, err := searchOptions(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.svc.Search.Execute(r.Context(), &search_menu_items.Request{
		Text:    r.URL.Query().Get(search.FieldQuery),
		Options: opts,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResponse(res))
}

func searchOptions(r *http.Request) (search.Options, error) {
	q := r.URL.Query()
	opts := search.Options{
		Category:    q.Get("category"),
		DietaryTags: queryList(r, "dietary_tags"),
		Allergens:   queryList(r, "allergens"),
		Sort:        q.Get(search.FieldSort),
	}

	var err error
	if opts.MinPrice, err = queryMoney(r, search.FieldMinPrice); err != nil {
		return opts, err
	}
	if opts.MaxPrice, err = queryMoney(r, search.FieldMaxPrice); err != nil {
		return opts, err
	}
	if opts.Page, err = queryInt(r, search.FieldPage); err != nil {
		return opts, err
	}
	if opts.PageSize, err = queryInt(r, search.FieldPageSize); err != nil {
		return opts, err
	}
	return opts, nil
}

func (h *MenuHandler) create(w http.ResponseWriter, r *http.Request) {
	var body createMenuItemBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req, err := body.toRequest()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, err := h.svc.Create.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.svc.Get.Execute(r.Context(), &get_menu_item.Request{MenuItemID: id})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/v1/menu-items/"+id)
	writeJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) featured(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items, err := h.svc.Featured.Execute(r.Context(), &list_featured.Request{Limit: limit})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items))
}

func (h *MenuHandler) popular(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items, err := h.svc.Popular.Execute(r.Context(), &list_popular.Request{Limit: limit})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items))
}

func (h *MenuHandler) newArrivals(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items, err := h.svc.New.Execute(r.Context(), &list_new.Request{Limit: limit})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items))
}

func (h *MenuHandler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get.Execute(r.Context(), &get_menu_item.Request{MenuItemID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body updateMenuItemBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if _, err := h.svc.Update.Execute(r.Context(), body.toRequest(id)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respondWithItem(w, r, id)
}

func (h *MenuHandler) quote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var at time.Time
	if raw := r.URL.Query().Get("at"); raw != "" {
		var err error
		if at, err = time.Parse(time.RFC3339, raw); err != nil {
			writeError(w, r, h.logger, domain.NewValidationError("at", "must be an RFC 3339 timestamp"))
			return
		}
	}

	q, err := h.svc.Quote.Execute(r.Context(), &quote_price.Request{MenuItemID: id, At: at})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newPriceQuoteResponse(id, q))
}

func (h *MenuHandler) updatePrice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body updatePriceBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err := h.svc.UpdatePrice.Execute(r.Context(), &update_price.Request{
		MenuItemID:    id,
		NewPrice:      optionalMoney(body.Price),
		ChangedBy:     body.ChangedBy,
		ChangedReason: body.Reason,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respondWithItem(w, r, id)
}

func (h *MenuHandler) priceHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	changes, err := h.svc.PriceHistory.Execute(r.Context(), &price_history.Request{MenuItemID: id, Limit: limit})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newPriceHistoryResponse(id, changes))
}

func (h *MenuHandler) addDiscount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body discountInput
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	_, err := h.svc.AddDiscount.Execute(r.Context(), &add_discount.Request{
		MenuItemID: id,
		Kind:       body.Kind,
		Value:      body.Value,
		StartsAt:   body.StartsAt,
		EndsAt:     body.EndsAt,
		Active:     body.isActive(),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respondWithItem(w, r, id)
}

func (h *MenuHandler) removeDiscount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidationError("index", "must be an integer"))
		return
	}

	if err := h.svc.RemoveDiscount.Execute(r.Context(), &remove_discount.Request{MenuItemID: id, Index: index}); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respondWithItem(w, r, id)
}

func (h *MenuHandler) recordRating(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body ratingBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	summary, err := h.svc.RecordRating.Execute(r.Context(), &record_rating.Request{
		MenuItemID: id,
		ReviewerID: body.ReviewerID,
		Rating:     body.Rating,
		Comment:    body.Comment,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.RatingDTO{Average: summary.Average, Count: summary.Count})
}

func (h *MenuHandler) recordOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body orderBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.svc.RecordOrder.Execute(r.Context(), &record_order.Request{MenuItemID: id, Quantity: body.Quantity})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"order_count": res.OrderCount,
		"stock":       res.Stock,
	})
}

func (h *MenuHandler) statistics(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Statistics.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp := statisticsResponse{
		Categories: make([]categoryStatistic, 0, len(res.Categories)),
		TotalItems: res.Total,
		Cached:     res.Cached,
	}
	for _, c := range res.Categories {
		resp.Categories = append(resp.Categories, categoryStatistic{
			Category:       string(c.Category),
			Count:          c.Count,
			AveragePrice:   c.AveragePrice,
			AvailableCount: c.AvailableCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// respondWithItem answers a successful write with the item's current state.
func (h *MenuHandler) respondWithItem(w http.ResponseWriter, r *http.Request, id string) {
	item, err := h.svc.Get.Execute(r.Context(), &get_menu_item.Request{MenuItemID: id})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
