package models

import "time"

// GeneralReport is the primary record of a submitted incident. Related
// telemetry lives in network_details, device_logs and location_history,
// joined by ReportID and written in the same transaction.
type GeneralReport struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	NetworkType     string    `gorm:"size:20;index;not null" json:"networkType"`
	Phone           string    `gorm:"size:20;not null" json:"phone"`
	Issue           string    `gorm:"size:100;not null" json:"issue"`
	Description     string    `gorm:"type:text" json:"description"`
	LocationAllowed bool      `gorm:"default:false" json:"locationAllowed"`
	IssueScale      string    `gorm:"size:50" json:"issueScale"`
	IsOffline       bool      `gorm:"default:false" json:"isOffline"`
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`
}

func (GeneralReport) TableName() string {
	return "general_reports"
}

// NetworkDetail holds the network telemetry subgroup for one report.
// Numeric fields are pointers: absent telemetry stays NULL, never zero.
type NetworkDetail struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReportID       uint      `gorm:"index;not null" json:"report_id"`
	SignalStrength *int      `json:"signal_strength"`
	ConnectionType string    `gorm:"size:50" json:"connection_type"`
	IssueSeverity  string    `gorm:"size:20" json:"issue_severity"`
	BandwidthMbps  *float64  `json:"bandwidth_mbps"`
	LatencyMs      *int      `json:"latency_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

func (NetworkDetail) TableName() string {
	return "network_details"
}

// DeviceLog holds the reporting device's identification fields.
type DeviceLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ReportID     uint      `gorm:"index;not null" json:"report_id"`
	DeviceModel  string    `gorm:"size:100" json:"device_model"`
	OsType       string    `gorm:"size:50" json:"os_type"`
	OsVersion    string    `gorm:"size:50" json:"os_version"`
	AppVersion   string    `gorm:"size:20" json:"app_version"`
	LocationLat  *float64  `json:"location_lat"`
	LocationLong *float64  `json:"location_long"`
	CreatedAt    time.Time `json:"created_at"`
}

func (DeviceLog) TableName() string {
	return "device_logs"
}

// LocationHistory is written only when the reporter consented to location
// capture and coordinates were available. RadiusMeters and IssueMagnitude
// are derived from the issue scale, never taken from the client.
type LocationHistory struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ReportID        uint      `gorm:"index;not null" json:"report_id"`
	Latitude        float64   `gorm:"index:idx_geo;not null" json:"latitude"`
	Longitude       float64   `gorm:"index:idx_geo;not null" json:"longitude"`
	AddressLandmark string    `gorm:"size:255" json:"address_landmark"`
	RadiusMeters    int       `json:"radius_meters"`
	IssueMagnitude  int       `json:"issue_magnitude"`
	CreatedAt       time.Time `json:"created_at"`
}

func (LocationHistory) TableName() string {
	return "location_history"
}
