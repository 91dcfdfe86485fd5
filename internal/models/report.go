package models

import "netlink-server/internal/operator"

// Report is the canonical normalized record produced by the report
// normalizer: defaults applied, phone trimmed and validated, magnitude
// and radius derived. It carries no identifier; the persistence gateway
// assigns id and createdAt at commit time.
type Report struct {
	NetworkType     operator.Network
	Phone           string
	Issue           string
	Description     string
	LocationAllowed bool
	IssueScale      string
	Magnitude       int
	RadiusMeters    int

	// nil unless the reporter consented and coordinates were captured
	Latitude        *float64
	Longitude       *float64
	AddressLandmark string

	DeviceModel string
	OsType      string
	OsVersion   string
	AppVersion  string

	SignalStrength *int
	ConnectionType string
	IssueSeverity  string
	BandwidthMbps  *float64
	LatencyMs      *int
	IsOffline      bool
}

// HasCoordinates reports whether the report carries a usable position.
func (r *Report) HasCoordinates() bool {
	return r.LocationAllowed && r.Latitude != nil && r.Longitude != nil
}
