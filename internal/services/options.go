package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/go-redis/redis/v8"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/category_statistics"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/get_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_featured"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_new"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_popular"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/price_history"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/quote_price"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/search_menu_items"
	"github.com/light-bringer/menucat-service/internal/app/catalog/repo"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/add_discount"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/create_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/record_order"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/record_rating"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/remove_discount"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/update_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/update_price"
	"github.com/light-bringer/menucat-service/internal/config"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
	httptransport "github.com/light-bringer/menucat-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client // nil when the statistics cache is disabled

	*Catalog
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Initialize the statistics cache
	redisClient, statsCache := newStatisticsCache(ctx, cfg, logger)

	// 3. Wire the catalog
	catalog := NewCatalog(Dependencies{
		Spanner:    spannerClient,
		StatsCache: statsCache,
		Clock:      clock.NewRealClock(),
		Logger:     logger,
	})

	return &ServiceOptions{
		SpannerClient: spannerClient,
		RedisClient:   redisClient,
		Catalog:       catalog,
	}, nil
}

// Dependencies are the infrastructure handles the catalog is built on.
type Dependencies struct {
	Spanner    *spanner.Client
	StatsCache contracts.StatisticsCache // nil disables caching
	Clock      clock.Clock
	Logger     *slog.Logger
}

// Catalog is the wired application layer.
type Catalog struct {
	CreateMenuItem *create_menu_item.Interactor
	Menu           httptransport.MenuServices
	Events         *list_events.Query
	HTTPHandler    http.Handler
}

// NewCatalog builds repositories, use cases, queries and the HTTP handler.
func NewCatalog(deps Dependencies) *Catalog {
	clk, logger := deps.Clock, deps.Logger
	statsCache := deps.StatsCache
	if statsCache == nil {
		statsCache = contracts.NoopStatisticsCache{}
	}
	comm := committer.NewCommitter(deps.Spanner, committer.WithErrorMapper(repo.ClassifyError))

	// Repositories
	menuItemRepo := repo.NewMenuItemRepo(deps.Spanner)
	outboxRepo := repo.NewOutboxRepo()
	priceHistoryRepo := repo.NewPriceHistoryRepo(deps.Spanner)
	ratingRepo := repo.NewRatingRepo(comm, menuItemRepo, outboxRepo, clk)
	readModel := repo.NewReadModel(deps.Spanner, clk)
	eventsReadModel := repo.NewEventsReadModel(deps.Spanner)

	// Command use cases (write operations)
	createMenuItem := create_menu_item.NewInteractor(menuItemRepo, outboxRepo, priceHistoryRepo, statsCache, comm, clk, logger)

	menu := httptransport.MenuServices{
		Create:         createMenuItem,
		Update:         update_menu_item.NewInteractor(menuItemRepo, outboxRepo, statsCache, comm, clk, logger),
		UpdatePrice:    update_price.NewInteractor(menuItemRepo, outboxRepo, priceHistoryRepo, statsCache, comm, clk, logger),
		AddDiscount:    add_discount.NewInteractor(menuItemRepo, outboxRepo, comm, clk, logger),
		RemoveDiscount: remove_discount.NewInteractor(menuItemRepo, outboxRepo, comm, clk, logger),
		RecordRating:   record_rating.NewInteractor(ratingRepo, logger),
		RecordOrder:    record_order.NewInteractor(menuItemRepo, outboxRepo, comm, clk, logger),

		// Query use cases (read operations)
		Get:          get_menu_item.NewQuery(readModel),
		Search:       search_menu_items.NewQuery(readModel),
		Featured:     list_featured.NewQuery(readModel),
		Popular:      list_popular.NewQuery(readModel),
		New:          list_new.NewQuery(readModel, clk),
		Quote:        quote_price.NewQuery(menuItemRepo, domain.DefaultPricingCalculator(), clk),
		PriceHistory: price_history.NewQuery(priceHistoryRepo, menuItemRepo),
		Statistics:   category_statistics.NewQuery(readModel, statsCache, logger),
	}
	events := list_events.NewQuery(eventsReadModel)

	handler := httptransport.NewRouter(
		httptransport.NewMenuHandler(menu, logger),
		httptransport.NewEventsHandler(events, logger),
		logger,
	)

	return &Catalog{
		CreateMenuItem: createMenuItem,
		Menu:           menu,
		Events:         events,
		HTTPHandler:    handler,
	}
}

// newStatisticsCache connects to Redis when configured. An unreachable Redis
// is not fatal: the cache degrades to misses and reads go to Spanner.
func newStatisticsCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, contracts.StatisticsCache) {
	if !cfg.CacheEnabled() {
		logger.Info("statistics cache disabled")
		return nil, contracts.NoopStatisticsCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, statistics will be read from spanner until it recovers",
			"addr", cfg.RedisAddr,
			"error", err,
		)
	}
	return client, repo.NewStatisticsCache(client, repo.WithTTL(cfg.StatsCacheTTL))
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
