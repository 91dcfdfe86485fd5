// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting - Field Agent

package main

import (
	"context"
	"log"
	"strconv"

	"netlink-server/internal/client"
	"netlink-server/internal/config"
	"netlink-server/internal/connectivity"
	"netlink-server/internal/events"
	"netlink-server/internal/geo"
	"netlink-server/internal/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	broker := events.NewBroker()
	submitClient := client.NewClient(cfg.ServerBaseURL, cfg.SubmitTimeout, broker)

	queueDB, err := queue.Open(cfg.QueuePath)
	if err != nil {
		log.Fatalf("Could not open offline queue: %v", err)
	}
	syncQueue := queue.New(queueDB, submitClient)

	watcher := connectivity.New(submitClient, cfg.ProbeInterval, broker)
	watcher.OnOnline = func(ctx context.Context) {
		summary, err := syncQueue.Drain(ctx)
		if err != nil {
			log.Printf("[Agent] Drain error: %v", err)
		}
		if summary.Total > 0 {
			broker.Publish(events.TypeSyncComplete, summary)
		}
	}
	watcher.Start()

	a := &agent{
		cfg:      cfg,
		client:   submitClient,
		queue:    syncQueue,
		watcher:  watcher,
		broker:   broker,
		location: locationProvider(cfg),
	}
	a.startPolling(context.Background())

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{TimeFormat: "15:04:05"}))

	app.Post("/submit", a.handleSubmit)
	app.Get("/status", a.handleStatus)
	app.Get("/dashboard", a.handleDashboard)
	app.Get("/events", broker.ServeHTTP)

	log.Printf("Netlink agent starting on port %s (server: %s)", cfg.AgentPort, cfg.ServerBaseURL)
	if err := app.Listen(":" + cfg.AgentPort); err != nil {
		log.Fatalf("Agent failed: %v", err)
	}
}

// locationProvider builds a fixed-position provider when the agent is
// configured with coordinates; otherwise the agent has no location
// source and consented reports go out without a position.
func locationProvider(cfg *config.Config) geo.Provider {
	if cfg.AgentLatitude == "" || cfg.AgentLongitude == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(cfg.AgentLatitude, 64)
	lng, errLng := strconv.ParseFloat(cfg.AgentLongitude, 64)
	if errLat != nil || errLng != nil {
		log.Printf("[Agent] Ignoring invalid AGENT_LAT/AGENT_LONG: %q %q", cfg.AgentLatitude, cfg.AgentLongitude)
		return nil
	}
	return geo.StaticProvider{Coordinates: geo.Coordinates{Latitude: lat, Longitude: lng}}
}
