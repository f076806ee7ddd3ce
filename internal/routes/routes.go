// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"propmarket/internal/handlers"
	"propmarket/internal/middleware"
	"propmarket/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// moneyLimiter throttles routes that move funds, keyed by user.
func moneyLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id, ok := c.Locals("userID").(string); ok && id != "" {
				return id
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
				"code":  "RATE_LIMITED",
			})
		},
	})
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies, svcs *Services) {
	sqlDB, err := deps.DB.DB()
	if err != nil {
		panic("database handle unavailable: " + err.Error())
	}
	var cacheChecker handlers.CacheChecker
	if deps.Cache != nil {
		cacheChecker = deps.Cache
	}
	healthHandler := handlers.NewHealthHandler(sqlDB, cacheChecker, deps.Logger)

	walletHandler := handlers.NewWalletHandler(svcs.Wallet, deps.Logger)
	withdrawalHandler := handlers.NewWithdrawalHandler(svcs.Withdrawal, deps.Logger)
	membershipHandler := handlers.NewMembershipHandler(svcs.Membership, deps.Logger)
	propertyHandler := handlers.NewPropertyHandler(svcs.Property, deps.Logger)
	marketplaceHandler := handlers.NewMarketplaceHandler(svcs.Marketplace, deps.Logger)
	rpcHandler := handlers.NewRPCHandler(svcs.Wallet, svcs.Withdrawal, svcs.Marketplace, deps.Logger)

	// Public endpoints (no auth required)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(deps.Config.JWTSecret, svcs.Profiles, deps.Logger)
	api := app.Group("/api", authMiddleware.Handler)

	setupWalletRoutes(api, walletHandler, withdrawalHandler)
	api.Get("/membership", membershipHandler.GetStatus)
	setupPropertyRoutes(api, propertyHandler)
	setupMarketplaceRoutes(api, marketplaceHandler)
	api.Post("/rpc/:name", moneyLimiter(30), rpcHandler.Invoke)
	setupAdminRoutes(api, withdrawalHandler, healthHandler)
}

func setupWalletRoutes(router fiber.Router, h *handlers.WalletHandler, wh *handlers.WithdrawalHandler) {
	read := middleware.HasPermission(models.PermissionWalletRead)
	write := middleware.HasPermission(models.PermissionWalletWrite)

	wallet := router.Group("/wallet")
	wallet.Get("/", read, h.GetWallet)
	wallet.Get("/summary", read, h.GetSummary)
	wallet.Get("/transactions", read, h.GetTransactions)
	wallet.Post("/deposit", write, moneyLimiter(10), h.Deposit)
	wallet.Post("/topup", write, moneyLimiter(10), h.TopUp)
	wallet.Post("/withdrawals", write, moneyLimiter(5), wh.RequestWithdrawal)
	wallet.Get("/withdrawals", read, wh.ListMyWithdrawals)
}

func setupPropertyRoutes(router fiber.Router, h *handlers.PropertyHandler) {
	properties := router.Group("/properties")
	properties.Get("/", h.ListMine)
	properties.Get("/:id", h.Get)
	properties.Patch("/:id", h.Update)
}

func setupMarketplaceRoutes(router fiber.Router, h *handlers.MarketplaceHandler) {
	read := middleware.HasPermission(models.PermissionMarketplaceRead)
	write := middleware.HasPermission(models.PermissionMarketplaceWrite)

	market := router.Group("/marketplace")
	market.Get("/listings", read, h.GetListings)
	market.Get("/listings/:id", read, h.GetListing)
	market.Post("/listings", write, h.ListProperty)
	market.Delete("/listings/:id", write, h.RemoveProperty)
	market.Post("/listings/:id/purchase", write, moneyLimiter(10), h.Purchase)

	market.Get("/transactions", read, h.GetTransactions)
	market.Get("/transactions/:id", read, h.GetTransaction)
	market.Get("/transactions/:id/messages", read, h.GetMessages)
	market.Post("/transactions/:id/messages", write, h.SendMessage)
	market.Patch("/messages/:id/read", write, h.MarkMessageRead)
}

func setupAdminRoutes(router fiber.Router, wh *handlers.WithdrawalHandler, health *handlers.HealthHandler) {
	admin := router.Group("/admin", middleware.AdminAuthMiddleware)

	withdrawals := admin.Group("/withdrawals")
	withdrawals.Get("/", middleware.HasPermission(models.PermissionReadAdmin), wh.ListWithdrawals)
	withdrawals.Post("/:id/approve", middleware.HasPermission(models.PermissionApproveWithdrawal), wh.Approve)
	withdrawals.Post("/:id/reject", middleware.HasPermission(models.PermissionApproveWithdrawal), wh.Reject)

	admin.Get("/cache/stats", health.CacheStats)
}
