package main

import (
	"context"
	"log"
	"sync/atomic"

	"netlink-server/internal/client"
	"netlink-server/internal/config"
	"netlink-server/internal/connectivity"
	"netlink-server/internal/events"
	"netlink-server/internal/geo"
	"netlink-server/internal/models"
	"netlink-server/internal/queue"
	"netlink-server/internal/reactive"
	"netlink-server/internal/report"

	"github.com/gofiber/fiber/v2"
)

type agent struct {
	cfg      *config.Config
	client   *client.Client
	queue    *queue.Queue
	watcher  *connectivity.Watcher
	broker   *events.Broker
	location geo.Provider

	// latest poll results for the local dashboard
	stats     atomic.Value // reactive.StatsSnapshot
	locations atomic.Value // reactive.MapSnapshot
}

// startPolling subscribes the dashboard caches to the reactive polling
// streams. A failed tick is logged and the previous snapshot stays
// visible, which is the accepted staleness model.
func (a *agent) startPolling(ctx context.Context) {
	reactive.StatsStream(ctx, a.client, a.cfg.StatsPollInterval).Subscribe(
		func(v interface{}) {
			if snap, ok := v.(reactive.StatsSnapshot); ok {
				a.stats.Store(snap)
			}
		},
		func(err error) {
			log.Printf("[Agent] Stats poll failed: %v", err)
		},
		nil,
	)

	reactive.LocationsStream(ctx, a.client, a.cfg.MapPollInterval, a.cfg.MapLimit).Subscribe(
		func(v interface{}) {
			if snap, ok := v.(reactive.MapSnapshot); ok {
				a.locations.Store(snap)
			}
		},
		func(err error) {
			log.Printf("[Agent] Map poll failed: %v", err)
		},
		nil,
	)
}

// handleSubmit accepts a report from the local UI. The report is
// normalized first: an invalid phone fails fast and is never queued.
// When offline, valid reports join the durable queue; when online they
// go straight to the server.
func (a *agent) handleSubmit(c *fiber.Ctx) error {
	var req models.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Status:  "error",
			Message: "Invalid JSON body",
		})
	}

	// Fill a position when the reporter consented but none was captured.
	if req.LocationAllowed && (req.Latitude == nil || req.Longitude == nil) {
		if coords, ok := geo.Resolve(c.Context(), a.location); ok {
			req.Latitude = &coords.Latitude
			req.Longitude = &coords.Longitude
		}
	}

	if _, err := report.Normalize(&req); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
	}

	if !a.watcher.Online() {
		return a.enqueue(c, &req)
	}

	reportID, err := a.client.Submit(c.Context(), &req)
	if err != nil {
		// The probe can lag reality: a request that found the network
		// gone while we still believed ourselves online is queued, not
		// surfaced as a hard failure.
		if client.IsUnreachable(err) {
			return a.enqueue(c, &req)
		}
		status := fiber.StatusBadGateway
		if client.IsValidationRejected(err) {
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
	}

	return c.JSON(models.SubmitResponse{
		Status:   "success",
		Message:  "Report submitted successfully",
		ReportID: reportID,
	})
}

func (a *agent) enqueue(c *fiber.Ctx, req *models.SubmitRequest) error {
	req.IsOffline = true
	entry, err := a.queue.Enqueue(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Status:  "error",
			Message: "Failed to save report locally",
		})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":  "queued",
		"message": "You are offline. Report saved locally and will be sent when your connection is restored.",
		"localId": entry.LocalID,
	})
}

func (a *agent) handleStatus(c *fiber.Ctx) error {
	pending, err := a.queue.Pending()
	if err != nil {
		log.Printf("[Agent] Queue count error: %v", err)
	}
	return c.JSON(fiber.Map{
		"online":  a.watcher.Online(),
		"pending": pending,
	})
}

func (a *agent) handleDashboard(c *fiber.Ctx) error {
	out := fiber.Map{}
	if snap, ok := a.stats.Load().(reactive.StatsSnapshot); ok {
		out["stats"] = snap
	}
	if snap, ok := a.locations.Load().(reactive.MapSnapshot); ok {
		out["map"] = snap
	}
	return c.JSON(out)
}
