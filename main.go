package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"finance-tracker-go-be/analytics"
	"finance-tracker-go-be/config"
	"finance-tracker-go-be/database"
	"finance-tracker-go-be/handlers"
)

func main() {
	config.Load()

	// Connect to Database
	database.ConnectDB()
	handlers.InitAnalytics(analytics.NewService(database.DB))

	// Initialize Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Registration happens before an identity exists, so it sits outside
	// the RequireUser group.
	api.Post("/users", handlers.RegisterUser)

	authed := api.Group("", handlers.RequireUser)
	authed.Get("/users/me", handlers.CurrentUser)

	wallets := authed.Group("/wallets")
	wallets.Get("/", handlers.ListWallets)
	wallets.Post("/", handlers.CreateWallet)
	wallets.Get("/:id", handlers.GetWallet)
	wallets.Patch("/:id", handlers.UpdateWallet)
	wallets.Delete("/:id", handlers.DeleteWallet)

	categories := authed.Group("/categories")
	categories.Get("/", handlers.ListCategories)
	categories.Post("/", handlers.CreateCategory)
	categories.Get("/:id", handlers.GetCategory)
	categories.Patch("/:id", handlers.UpdateCategory)
	categories.Delete("/:id", handlers.DeleteCategory)

	transactions := authed.Group("/transactions")
	transactions.Get("/", handlers.ListTransactions)
	transactions.Post("/", handlers.CreateTransaction)
	transactions.Get("/:id", handlers.GetTransaction)
	transactions.Patch("/:id", handlers.UpdateTransaction)
	transactions.Delete("/:id", handlers.DeleteTransaction)

	analyticsRoutes := authed.Group("/analytics")
	analyticsRoutes.Get("/summary", handlers.OverallSummary)
	analyticsRoutes.Get("/wallets/overview", handlers.WalletsOverview)
	analyticsRoutes.Get("/wallets/:walletId/summary", handlers.WalletSummary)
	analyticsRoutes.Get("/period", handlers.PeriodAnalytics)
	analyticsRoutes.Get("/trend", handlers.TrendAnalytics)
	analyticsRoutes.Get("/categories", handlers.CategoryBreakdown)
	analyticsRoutes.Get("/categories/top", handlers.TopSpendingCategory)
	analyticsRoutes.Post("/compare", handlers.ComparePeriods)
	analyticsRoutes.Get("/insights", handlers.SpendingInsights)

	// Start Server
	log.Fatal(app.Listen(":" + config.Port()))
}
