package store

import (
	"strings"

	"netlink-server/internal/models"
)

// DefaultLocationLimit bounds RecentLocations when the caller passes
// no explicit limit.
const DefaultLocationLimit = 100

// CountAll returns the total number of persisted reports. An empty
// store yields zero, not an error.
func (s *Store) CountAll() (int64, error) {
	var total int64
	if err := s.DB.Model(&models.GeneralReport{}).Count(&total).Error; err != nil {
		return 0, &ReadError{Op: "count", Err: err}
	}
	return total, nil
}

// CountByNetwork returns per-operator report counts keyed by the fixed
// lowercase set mtn/orange/camtel. Operators absent from storage count
// as zero; rows with unknown operator names are ignored.
func (s *Store) CountByNetwork() (map[string]int64, error) {
	counts := map[string]int64{"mtn": 0, "orange": 0, "camtel": 0}

	rows, err := s.DB.Model(&models.GeneralReport{}).
		Select("network_type, count(*)").
		Group("network_type").
		Rows()
	if err != nil {
		return nil, &ReadError{Op: "count-by-network", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var network string
		var count int64
		if err := rows.Scan(&network, &count); err != nil {
			return nil, &ReadError{Op: "count-by-network", Err: err}
		}
		key := strings.ToLower(network)
		if _, ok := counts[key]; ok {
			counts[key] += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &ReadError{Op: "count-by-network", Err: err}
	}

	return counts, nil
}

// RecentLocations returns up to limit geo-tagged report points, newest
// first, joined with severity and operator for the map widget.
func (s *Store) RecentLocations(limit int) ([]models.LocationRecord, error) {
	if limit <= 0 {
		limit = DefaultLocationLimit
	}

	records := make([]models.LocationRecord, 0, limit)
	err := s.DB.Table("location_history").
		Select("location_history.report_id AS id, location_history.latitude, location_history.longitude, " +
			"location_history.address_landmark, location_history.radius_meters, location_history.issue_magnitude, " +
			"network_details.issue_severity, general_reports.network_type").
		Joins("JOIN general_reports ON general_reports.id = location_history.report_id").
		Joins("LEFT JOIN network_details ON network_details.report_id = location_history.report_id").
		Order("location_history.id DESC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, &ReadError{Op: "locations", Err: err}
	}

	return records, nil
}

// ListReports returns all reports, newest first.
func (s *Store) ListReports() ([]models.GeneralReport, error) {
	reports := make([]models.GeneralReport, 0)
	if err := s.DB.Order("created_at DESC, id DESC").Find(&reports).Error; err != nil {
		return nil, &ReadError{Op: "list", Err: err}
	}
	return reports, nil
}
