// Package report normalizes raw submissions into canonical records.
package report

import (
	"fmt"
	"strings"

	"netlink-server/internal/models"
	"netlink-server/internal/operator"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultIssueScale      = "Street"
	DefaultIssueSeverity   = "Warning"
	DefaultAddressLandmark = "Unknown Location"

	// RadiusMetersPerMagnitude sizes the map-display radius.
	RadiusMetersPerMagnitude = 50
)

// magnitudes maps the qualitative issue scale to its numeric magnitude.
var magnitudes = map[string]int{
	"Street":       1,
	"Neighborhood": 5,
	"City":         10,
	"Citywide":     20,
}

// ValidationError means the phone did not match the numbering plan of
// the declared operator. User-correctable; surfaced verbatim.
type ValidationError struct {
	NetworkType string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation Failed: The phone number does not match a valid %s format.", e.NetworkType)
}

var validate = validator.New()

// Magnitude returns the numeric magnitude for an issue scale, falling
// back to the Street default for unknown values.
func Magnitude(issueScale string) int {
	if m, ok := magnitudes[issueScale]; ok {
		return m
	}
	return magnitudes[DefaultIssueScale]
}

// Radius derives the map radius in meters from an issue scale.
func Radius(issueScale string) int {
	return Magnitude(issueScale) * RadiusMetersPerMagnitude
}

// Normalize validates raw input and assembles a canonical Report:
// phone trimmed and checked against the declared operator's plan,
// defaults applied, magnitude and radius computed. It performs no I/O.
func Normalize(raw *models.SubmitRequest) (*models.Report, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("invalid report payload: %w", err)
	}

	phone := strings.TrimSpace(raw.Phone)
	network := operator.Network(raw.NetworkType)
	if !operator.Validate(network, phone) {
		return nil, &ValidationError{NetworkType: raw.NetworkType}
	}

	scale := raw.IssueScale
	if scale == "" {
		scale = DefaultIssueScale
	}
	severity := raw.IssueSeverity
	if severity == "" {
		severity = DefaultIssueSeverity
	}
	landmark := strings.TrimSpace(raw.AddressLandmark)
	if landmark == "" {
		landmark = DefaultAddressLandmark
	}

	r := &models.Report{
		NetworkType:     network,
		Phone:           phone,
		Issue:           raw.Issue,
		Description:     raw.Description,
		LocationAllowed: raw.LocationAllowed,
		IssueScale:      scale,
		Magnitude:       Magnitude(scale),
		RadiusMeters:    Radius(scale),
		AddressLandmark: landmark,
		DeviceModel:     raw.DeviceModel,
		OsType:          raw.OsType,
		OsVersion:       raw.OsVersion,
		AppVersion:      raw.AppVersion,
		SignalStrength:  raw.SignalStrength,
		ConnectionType:  raw.ConnectionType,
		IssueSeverity:   severity,
		BandwidthMbps:   raw.BandwidthMbps,
		LatencyMs:       raw.LatencyMs,
		IsOffline:       raw.IsOffline,
	}

	// Coordinates are kept only with consent; a consent flag without a
	// captured position is still a valid report.
	if raw.LocationAllowed && raw.Latitude != nil && raw.Longitude != nil {
		lat, lng := *raw.Latitude, *raw.Longitude
		r.Latitude = &lat
		r.Longitude = &lng
	}

	return r, nil
}
