// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting

package routes

import (
	"strings"

	"netlink-server/internal/config"
	"netlink-server/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func SetupRoutes(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(requestid.New())

	allowOrigins := strings.TrimSpace(cfg.CorsAllowOrigins)
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000,http://localhost:3001"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
	}))
	app.Use(logger.New(logger.Config{
		TimeFormat: "15:04:05",
	}))

	app.Get("/healthz", handlers.Healthz)

	api := app.Group("/api")
	api.Post("/reports", handlers.PostReport)
	api.Get("/reports", handlers.GetReports)
	api.Get("/reports/count", handlers.GetReportCount)
	api.Get("/reports/count-by-network", handlers.GetCountByNetwork)
	api.Get("/map/locations", handlers.GetMapLocations)

	// Legacy write endpoint, kept for older clients.
	app.Post("/report", handlers.PostReportLegacy)
}
