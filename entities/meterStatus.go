package entities

import "time"

// MeterStatus tracks the most recent successful ingestion per meter. It is the
// only mutable table: one row per meter, upserted on every write. Online is
// latched true once any reading lands; nothing ever sets it back to false.
type MeterStatus struct {
	MeterID    string    `gorm:"primaryKey" json:"meter_id"`
	Online     bool      `json:"online"`
	LastUpdate string    `json:"last_update"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MeterStatus) TableName() string { return "meter_status" }
