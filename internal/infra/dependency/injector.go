// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/application/usecase/category"
	"github.com/finance-tracker/recurring/internal/application/usecase/conversation"
	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
	"github.com/finance-tracker/recurring/internal/application/usecase/transaction"
	"github.com/finance-tracker/recurring/internal/application/usecase/trend"
	"github.com/finance-tracker/recurring/internal/infra/server/router"
	"github.com/finance-tracker/recurring/internal/integration/adapters"
	"github.com/finance-tracker/recurring/internal/integration/cache"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/recurring/internal/integration/metrics"
	"github.com/finance-tracker/recurring/internal/integration/persistence"
	"github.com/finance-tracker/recurring/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Worker      *scheduler.Worker
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case chat entry is not mounted.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	clock adapter.Clock,
) (*Injector, error) {
	collectors, err := metrics.New(registry)
	if err != nil {
		return nil, err
	}

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	definitionRepo := persistence.NewRecurringDefinitionRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	approveTransactionUseCase := transaction.NewApproveTransactionUseCase(transactionRepo)
	rejectTransactionUseCase := transaction.NewRejectTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create recurring use cases
	processDueUseCase := recurring.NewProcessDueUseCase(
		definitionRepo,
		transactionRepo,
		collectors,
		recurring.ParseAnchorMode(cfg.Scheduler.AnchorMode),
	)

	// Create trend use cases
	spendingTrendUseCase := trend.NewGetSpendingTrendUseCase(transactionRepo, categoryRepo, clock)
	categoryTrendUseCase := trend.NewGetCategorySpendingTrendUseCase(transactionRepo, categoryRepo, clock)

	// Create controllers
	controllers := router.Controllers{
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			deleteCategoryUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			approveTransactionUseCase,
			rejectTransactionUseCase,
			deleteTransactionUseCase,
		),
		Recurring: controller.NewRecurringController(
			recurring.NewListDefinitionsUseCase(definitionRepo),
			recurring.NewGetDefinitionUseCase(definitionRepo),
			recurring.NewCreateDefinitionUseCase(definitionRepo, categoryRepo, clock),
			recurring.NewUpdateDefinitionUseCase(definitionRepo, categoryRepo, clock),
			recurring.NewDeleteDefinitionUseCase(definitionRepo),
			processDueUseCase,
			clock,
		),
		Trend: controller.NewTrendController(spendingTrendUseCase, categoryTrendUseCase),
	}

	var cacheHealthChecker func() bool
	if redisClient != nil {
		sessionStore := cache.NewSessionStore(redisClient, cfg.Conversation.SessionTTL)
		handleMessageUseCase := conversation.NewHandleMessageUseCase(sessionStore, categoryRepo, createTransactionUseCase, clock)
		controllers.Conversation = controller.NewConversationController(handleMessageUseCase)
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}

	controllers.Health = controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		controllers,
		authMiddleware,
		rateLimiter,
		collectors.Middleware(),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		cfg.Scheduler.CronSecret,
	)

	worker := scheduler.NewWorker(processDueUseCase, clock, scheduler.WorkerConfig{
		PollInterval: cfg.Scheduler.PollInterval,
	})

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Worker:      worker,
		RateLimiter: rateLimiter,
	}, nil
}
