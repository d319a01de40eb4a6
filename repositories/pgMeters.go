package repositories

import (
	"energy-monitor/db"
	"energy-monitor/entities"
)

type meterPgRepository struct {
	db db.Database
}

func NewMeterPgRepository(database db.Database) MeterRepository {
	return &meterPgRepository{db: database}
}

func (r *meterPgRepository) Create(meter *entities.Meter) error {
	return r.db.GetDB().Create(meter).Error
}

func (r *meterPgRepository) GetByID(id string) (*entities.Meter, error) {
	var meter entities.Meter
	err := r.db.GetDB().Where("id = ?", id).First(&meter).Error
	if err != nil {
		return nil, err
	}
	return &meter, nil
}

// ListActiveWithStatus returns every active meter joined with its status row.
// Meters that never reported come back online=false with a nil last_update.
func (r *meterPgRepository) ListActiveWithStatus() ([]entities.MeterOverview, error) {
	var overviews []entities.MeterOverview
	err := r.db.GetDB().
		Table("meters").
		Select("meters.id AS meter_id, COALESCE(meter_status.online, ?) AS online, meter_status.last_update AS last_update", false).
		Joins("LEFT JOIN meter_status ON meter_status.meter_id = meters.id").
		Where("meters.is_active = ?", true).
		Scan(&overviews).Error
	return overviews, err
}
