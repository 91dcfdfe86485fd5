package handlers

import (
	"errors"
	"log"

	"netlink-server/internal/database"
	"netlink-server/internal/models"
	"netlink-server/internal/report"
	"netlink-server/internal/store"

	"github.com/gofiber/fiber/v2"
)

// PostReport handles POST /api/reports, the full write endpoint.
func PostReport(c *fiber.Ctx) error {
	var req models.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Status:  "error",
			Message: "Invalid JSON body",
		})
	}

	normalized, err := report.Normalize(&req)
	if err != nil {
		return validationFailed(c, err)
	}

	reportID, err := store.New(database.DB).Persist(normalized)
	if err != nil {
		var ve *report.ValidationError
		if errors.As(err, &ve) {
			return validationFailed(c, ve)
		}
		log.Printf("[Reports] Report submission error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Status:  "error",
			Message: "Failed to save report",
		})
	}

	return c.JSON(models.SubmitResponse{
		Status:   "success",
		Message:  "Report submitted successfully",
		ReportID: reportID,
	})
}

// PostReportLegacy handles POST /report, the reduced legacy endpoint.
// It accepts both field-naming schemes (phone/locationAllowed and
// phoneNumber/locationConsent) and applies the same validation contract
// as the full endpoint.
func PostReportLegacy(c *fiber.Ctx) error {
	var legacy models.LegacySubmitRequest
	if err := c.BodyParser(&legacy); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Status:  "error",
			Message: "Invalid JSON body",
		})
	}

	phone := legacy.Phone
	if phone == "" {
		phone = legacy.PhoneNumber
	}
	locationAllowed := false
	if legacy.LocationAllowed != nil {
		locationAllowed = *legacy.LocationAllowed
	} else if legacy.LocationConsent != nil {
		locationAllowed = *legacy.LocationConsent
	}

	req := models.SubmitRequest{
		NetworkType:     legacy.NetworkType,
		Phone:           phone,
		Issue:           legacy.Issue,
		Description:     legacy.Description,
		LocationAllowed: locationAllowed,
	}

	normalized, err := report.Normalize(&req)
	if err != nil {
		return validationFailed(c, err)
	}

	if _, err := store.New(database.DB).Persist(normalized); err != nil {
		var ve *report.ValidationError
		if errors.As(err, &ve) {
			return validationFailed(c, ve)
		}
		log.Printf("[Reports] Legacy report error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Status:  "error",
			Message: "Failed to save report",
		})
	}

	return c.JSON(models.SubmitResponse{
		Status:  "success",
		Message: "Success! Your report has been sent.",
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
		Status:  "error",
		Message: err.Error(),
	})
}
