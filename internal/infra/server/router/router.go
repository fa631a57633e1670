// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	categoryController     *controller.CategoryController
	transactionController  *controller.TransactionController
	recurringController    *controller.RecurringController
	trendController        *controller.TrendController
	conversationController *controller.ConversationController
	authMiddleware         *middleware.AuthMiddleware
	rateLimiter            *middleware.RateLimiter
	metricsMiddleware      gin.HandlerFunc
	metricsHandler         http.Handler
	cronSecret             string
}

// Controllers groups the HTTP handlers mounted by the router.
// A nil controller leaves its routes unregistered.
type Controllers struct {
	Health       *controller.HealthController
	Category     *controller.CategoryController
	Transaction  *controller.TransactionController
	Recurring    *controller.RecurringController
	Trend        *controller.TrendController
	Conversation *controller.ConversationController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	metricsMiddleware gin.HandlerFunc,
	metricsHandler http.Handler,
	cronSecret string,
) *Router {
	return &Router{
		healthController:       controllers.Health,
		categoryController:     controllers.Category,
		transactionController:  controllers.Transaction,
		recurringController:    controllers.Recurring,
		trendController:        controllers.Trend,
		conversationController: controllers.Conversation,
		authMiddleware:         authMiddleware,
		rateLimiter:            rateLimiter,
		metricsMiddleware:      metricsMiddleware,
		metricsHandler:         metricsHandler,
		cronSecret:             cronSecret,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(cfg config.ServerConfig) *gin.Engine {
	// Set Gin mode based on environment
	switch cfg.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.HandleMethodNotAllowed = true
	r.engine.Use(gin.Recovery())
	r.engine.Use(requestid.New())
	r.engine.Use(middleware.RequestLogger())
	if r.metricsMiddleware != nil {
		r.engine.Use(r.metricsMiddleware)
	}

	if len(cfg.CORSAllowOrigins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	if cfg.EnablePprof {
		pprof.Register(r.engine)
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	if r.healthController != nil {
		r.engine.GET("/health", r.healthController.Check)
	}
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	// Scheduler trigger for external cron jobs, guarded by the shared secret instead of a user token
	if r.recurringController != nil {
		trigger := []gin.HandlerFunc{middleware.RequireCronSecret(r.cronSecret)}
		if r.rateLimiter != nil {
			trigger = append(trigger, r.rateLimiter.Middleware())
		}
		trigger = append(trigger, r.recurringController.ProcessDue)
		v1.POST("/recurring-transactions/process-due", trigger...)
	}

	if r.authMiddleware == nil {
		return
	}

	authenticated := v1.Group("")
	authenticated.Use(r.authMiddleware.Authenticate())

	if r.categoryController != nil {
		categories := authenticated.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.DELETE("/:id", r.categoryController.Delete)
		}
	}

	if r.transactionController != nil {
		transactions := authenticated.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.POST("/:id/approve", r.transactionController.Approve)
			transactions.POST("/:id/reject", r.transactionController.Reject)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}
	}

	if r.recurringController != nil {
		recurringRoutes := authenticated.Group("/recurring-transactions")
		{
			recurringRoutes.GET("", r.recurringController.List)
			recurringRoutes.POST("", r.recurringController.Create)
			recurringRoutes.GET("/:id", r.recurringController.Get)
			recurringRoutes.PATCH("/:id", r.recurringController.Update)
			recurringRoutes.DELETE("/:id", r.recurringController.Delete)
		}
	}

	if r.trendController != nil {
		trends := authenticated.Group("/trends")
		{
			trends.GET("/spending", r.trendController.Spending)
			trends.GET("/categories", r.trendController.Categories)
		}
	}

	if r.conversationController != nil {
		conversation := authenticated.Group("/conversation")
		if r.rateLimiter != nil {
			conversation.Use(r.rateLimiter.Middleware())
		}
		conversation.POST("/messages", r.conversationController.Message)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
