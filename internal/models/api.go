package models

// SubmitRequest is the JSON body of POST /api/reports. Validation tags
// cover shape and enums; the numbering-plan check for Phone happens in
// the report normalizer against the declared NetworkType.
type SubmitRequest struct {
	NetworkType     string   `json:"networkType" validate:"required"`
	Phone           string   `json:"phone" validate:"required"`
	Issue           string   `json:"issue" validate:"required,oneof=slow-speed no-connection call-drops data-issues poor-coverage"`
	Description     string   `json:"description" validate:"max=300"`
	LocationAllowed bool     `json:"locationAllowed"`
	IssueScale      string   `json:"issueScale" validate:"omitempty,oneof=Street Neighborhood City Citywide"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	AddressLandmark string   `json:"addressLandmark"`

	// Device telemetry (all optional)
	DeviceModel string `json:"deviceModel"`
	OsType      string `json:"osType"`
	OsVersion   string `json:"osVersion"`
	AppVersion  string `json:"appVersion"`

	// Network telemetry (all optional)
	SignalStrength *int     `json:"signalStrength"`
	ConnectionType string   `json:"connectionType"`
	IssueSeverity  string   `json:"issueSeverity" validate:"omitempty,oneof=Info Warning Critical"`
	BandwidthMbps  *float64 `json:"bandwidthMbps"`
	LatencyMs      *int     `json:"latencyMs"`
	IsOffline      bool     `json:"isOffline"`
}

// LegacySubmitRequest is the reduced body of POST /report. The older
// clients used phoneNumber/locationConsent; both spellings are accepted.
type LegacySubmitRequest struct {
	NetworkType     string `json:"networkType"`
	Phone           string `json:"phone"`
	PhoneNumber     string `json:"phoneNumber"`
	Issue           string `json:"issue"`
	Description     string `json:"description"`
	LocationAllowed *bool  `json:"locationAllowed"`
	LocationConsent *bool  `json:"locationConsent"`
}

// SubmitResponse is returned by the write endpoints on success.
type SubmitResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ReportID uint   `json:"reportId,omitempty"`
}

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CountResponse is the body of GET /api/reports/count.
type CountResponse struct {
	Total int64 `json:"total"`
}

// NetworkCountResponse is the body of GET /api/reports/count-by-network.
// Keys are fixed lowercase regardless of storage casing.
type NetworkCountResponse struct {
	MTN    int64 `json:"mtn"`
	Orange int64 `json:"orange"`
	Camtel int64 `json:"camtel"`
}

// LocationRecord is one map point from GET /api/map/locations,
// newest first. Field names follow the map widget's contract.
type LocationRecord struct {
	ID              uint    `json:"id"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	AddressLandmark string  `json:"address_landmark"`
	RadiusMeters    int     `json:"radius_meters"`
	IssueMagnitude  int     `json:"issue_magnitude"`
	IssueSeverity   string  `json:"issue_severity"`
	NetworkType     string  `json:"network_type"`
}

// ConnectivityError is the payload of the connectivity-error signal
// raised by the submission client boundary.
type ConnectivityError struct {
	Message    string `json:"message"`
	HTTPStatus int    `json:"httpStatus"`
}
