package handlers

import (
	"log"

	"netlink-server/internal/database"
	"netlink-server/internal/models"
	"netlink-server/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GetReportCount handles GET /api/reports/count.
func GetReportCount(c *fiber.Ctx) error {
	total, err := store.New(database.DB).CountAll()
	if err != nil {
		log.Printf("[Stats] Count error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get report count",
		})
	}
	return c.JSON(models.CountResponse{Total: total})
}

// GetCountByNetwork handles GET /api/reports/count-by-network.
func GetCountByNetwork(c *fiber.Ctx) error {
	counts, err := store.New(database.DB).CountByNetwork()
	if err != nil {
		log.Printf("[Stats] Network count error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get network counts",
		})
	}
	return c.JSON(models.NetworkCountResponse{
		MTN:    counts["mtn"],
		Orange: counts["orange"],
		Camtel: counts["camtel"],
	})
}

// GetMapLocations handles GET /api/map/locations.
func GetMapLocations(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", store.DefaultLocationLimit)
	locations, err := store.New(database.DB).RecentLocations(limit)
	if err != nil {
		log.Printf("[Stats] Map locations error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch locations",
		})
	}
	return c.JSON(locations)
}

// GetReports handles GET /api/reports.
func GetReports(c *fiber.Ctx) error {
	reports, err := store.New(database.DB).ListReports()
	if err != nil {
		log.Printf("[Stats] List reports error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reports",
		})
	}
	return c.JSON(reports)
}

// Healthz is the probe target for connectivity watchers.
func Healthz(c *fiber.Ctx) error {
	return c.SendString("ok")
}
