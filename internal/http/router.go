package http

import (
	"time"

	"github.com/adpilot/backend/internal/config"
	"github.com/adpilot/backend/internal/http/handlers"
	"github.com/adpilot/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	accountHandler *handlers.AccountHandler,
	wizardHandler *handlers.WizardHandler,
	locationHandler *handlers.LocationHandler,
	previewHandler *handlers.PreviewHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/objectives", metaHandler.GetObjectives)
	api.Get("/meta/lead-types", metaHandler.GetLeadTypes)
	api.Get("/meta/call-to-actions", metaHandler.GetCallToActions)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Ad account
	protected.Post("/account", accountHandler.ConnectAccount)
	protected.Get("/account", accountHandler.GetAccount)
	protected.Delete("/account", accountHandler.DisconnectAccount)
	protected.Get("/account/sync", accountHandler.GetSyncStatus)
	protected.Get("/account/pixels", wizardHandler.ListPixels)
	protected.Get("/account/lead-forms", wizardHandler.ListLeadForms)

	// Wizard drafts
	protected.Post("/drafts", wizardHandler.CreateDraft)
	protected.Get("/drafts", wizardHandler.ListDrafts)
	protected.Get("/drafts/:id", wizardHandler.GetDraft)
	protected.Patch("/drafts/:id", wizardHandler.UpdateDraft)
	protected.Post("/drafts/:id/navigate", wizardHandler.NavigateDraft)
	protected.Post("/drafts/:id/submit", wizardHandler.SubmitDraft)
	protected.Delete("/drafts/:id", wizardHandler.AbandonDraft)

	// Location search (REST; the WS variant debounces)
	protected.Get("/locations/search", locationHandler.SearchLocations)

	// Link preview for the review step
	protected.Get("/preview", previewHandler.GetPreview)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
