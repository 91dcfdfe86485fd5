// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting

package main

import (
	"log"

	"netlink-server/internal/config"
	"netlink-server/internal/database"
	"netlink-server/internal/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	database.Connect(cfg)

	app := fiber.New()
	routes.SetupRoutes(app, cfg)

	log.Printf("Netlink server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
