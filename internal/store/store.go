// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting

package store

import (
	"fmt"
	"log"
	"time"

	"netlink-server/internal/models"
	"netlink-server/internal/operator"
	"netlink-server/internal/report"

	"gorm.io/gorm"
)

// Store is the persistence gateway: it owns the one write path for
// reports and the aggregation reads the dashboard and map consume.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// PersistenceError is a storage-layer failure after validation passed.
// The multi-record write has been rolled back in full before it is
// returned; the caller may retry the whole operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ReadError is an aggregation query failure. Readers surface it as-is
// rather than fabricating data.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Persist writes a normalized report as one all-or-nothing unit across
// general_reports, network_details, device_logs and location_history.
// The phone is re-validated against the declared operator regardless of
// what the client already checked, and radius/magnitude are recomputed
// from the issue scale; a client-supplied radius is never trusted.
// Returns the assigned report id.
func (s *Store) Persist(r *models.Report) (uint, error) {
	if !operator.Validate(r.NetworkType, r.Phone) {
		return 0, &report.ValidationError{NetworkType: string(r.NetworkType)}
	}

	magnitude := report.Magnitude(r.IssueScale)
	radius := report.Radius(r.IssueScale)
	now := time.Now().UTC()

	tx := s.DB.Begin()
	if tx.Error != nil {
		return 0, &PersistenceError{Op: "begin", Err: tx.Error}
	}

	general := models.GeneralReport{
		NetworkType:     string(r.NetworkType),
		Phone:           r.Phone,
		Issue:           r.Issue,
		Description:     r.Description,
		LocationAllowed: r.LocationAllowed,
		IssueScale:      r.IssueScale,
		IsOffline:       r.IsOffline,
		CreatedAt:       now,
	}
	if err := tx.Create(&general).Error; err != nil {
		tx.Rollback()
		return 0, &PersistenceError{Op: "general_reports", Err: err}
	}

	detail := models.NetworkDetail{
		ReportID:       general.ID,
		SignalStrength: r.SignalStrength,
		ConnectionType: r.ConnectionType,
		IssueSeverity:  r.IssueSeverity,
		BandwidthMbps:  r.BandwidthMbps,
		LatencyMs:      r.LatencyMs,
		CreatedAt:      now,
	}
	if err := tx.Create(&detail).Error; err != nil {
		tx.Rollback()
		return 0, &PersistenceError{Op: "network_details", Err: err}
	}

	device := models.DeviceLog{
		ReportID:    general.ID,
		DeviceModel: r.DeviceModel,
		OsType:      r.OsType,
		OsVersion:   r.OsVersion,
		AppVersion:  r.AppVersion,
		CreatedAt:   now,
	}
	if r.HasCoordinates() {
		device.LocationLat = r.Latitude
		device.LocationLong = r.Longitude
	}
	if err := tx.Create(&device).Error; err != nil {
		tx.Rollback()
		return 0, &PersistenceError{Op: "device_logs", Err: err}
	}

	if r.HasCoordinates() {
		location := models.LocationHistory{
			ReportID:        general.ID,
			Latitude:        *r.Latitude,
			Longitude:       *r.Longitude,
			AddressLandmark: r.AddressLandmark,
			RadiusMeters:    radius,
			IssueMagnitude:  magnitude,
			CreatedAt:       now,
		}
		if err := tx.Create(&location).Error; err != nil {
			tx.Rollback()
			return 0, &PersistenceError{Op: "location_history", Err: err}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, &PersistenceError{Op: "commit", Err: err}
	}

	log.Printf("[Store] Report #%d persisted: %s %s (scale=%s radius=%dm)",
		general.ID, general.NetworkType, general.Issue, general.IssueScale, radius)

	return general.ID, nil
}
