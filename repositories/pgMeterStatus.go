package repositories

import (
	"energy-monitor/db"
	"energy-monitor/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type statusPgRepository struct {
	db db.Database
}

func NewStatusPgRepository(database db.Database) StatusRepository {
	return &statusPgRepository{db: database}
}

func (r *statusPgRepository) GetByMeterID(meterID string) (*entities.MeterStatus, error) {
	var status entities.MeterStatus
	err := r.db.GetDB().Where("meter_id = ?", meterID).First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusPgRepository) Upsert(status *entities.MeterStatus) error {
	return upsertStatus(r.db.GetDB(), status)
}

// upsertStatus performs INSERT ... ON CONFLICT (meter_id) DO UPDATE so each
// meter keeps exactly one status row. Last write wins on concurrent updates.
func upsertStatus(tx *gorm.DB, status *entities.MeterStatus) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"online", "last_update"}),
	}).Create(status).Error
}
