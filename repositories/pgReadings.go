package repositories

import (
	"energy-monitor/db"
	"energy-monitor/entities"

	"gorm.io/gorm"
)

type readingPgRepository struct {
	db db.Database
}

func NewReadingPgRepository(database db.Database) ReadingRepository {
	return &readingPgRepository{db: database}
}

func (r *readingPgRepository) CreateWithStatus(reading *entities.MeterReading, status *entities.MeterStatus) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reading).Error; err != nil {
			return err
		}
		return upsertStatus(tx, status)
	})
}

// RecentByMeterID returns readings for one meter with timestamp >= since,
// newest first, capped at limit. Canonical timestamps compare correctly as
// strings.
func (r *readingPgRepository) RecentByMeterID(meterID string, since string, limit int) ([]entities.MeterReading, error) {
	var readings []entities.MeterReading
	err := r.db.GetDB().
		Where("meter_id = ? AND timestamp >= ?", meterID, since).
		Order("timestamp DESC").
		Limit(limit).
		Find(&readings).Error
	return readings, err
}
