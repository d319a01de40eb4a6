package entities

import "time"

// Meter is the identity record for a field device. Meters are created by
// provisioning or startup seeding, never by the ingestion path. IsActive
// carries no column default on purpose: gorm omits zero-value fields that
// have one, which would silently flip an explicitly-false value to true.
// Both creation paths set it explicitly.
type Meter struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

// MeterOverview is one row of the meter listing: a meter left-joined with its
// status. LastUpdate is nil for meters that have never reported.
type MeterOverview struct {
	MeterID    string  `json:"meter_id"`
	Online     bool    `json:"online"`
	LastUpdate *string `json:"last_update"`
}
