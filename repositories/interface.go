package repositories

import "energy-monitor/entities"

type MeterRepository interface {
	Create(meter *entities.Meter) error
	GetByID(id string) (*entities.Meter, error)
	ListActiveWithStatus() ([]entities.MeterOverview, error)
}

type ReadingRepository interface {
	// CreateWithStatus inserts a reading and upserts the meter status in one
	// transaction.
	CreateWithStatus(reading *entities.MeterReading, status *entities.MeterStatus) error
	RecentByMeterID(meterID string, since string, limit int) ([]entities.MeterReading, error)
}

type StatusRepository interface {
	GetByMeterID(meterID string) (*entities.MeterStatus, error)
	Upsert(status *entities.MeterStatus) error
}
