package usecases

import (
	"energy-monitor/entities"
	"energy-monitor/repositories"
	"energy-monitor/tools/timeparser"
	"errors"
	"fmt"
	"time"
)

// ReadingsLimit caps how many readings one query returns.
const ReadingsLimit = 100

// DefaultLookbackHours is the readings window used when the caller gives none.
const DefaultLookbackHours = 24

type MeterUseCase struct {
	MeterRepo   repositories.MeterRepository
	ReadingRepo repositories.ReadingRepository
	StatusRepo  repositories.StatusRepository
}

func NewMeterUseCase(meterRepo repositories.MeterRepository, readingRepo repositories.ReadingRepository, statusRepo repositories.StatusRepository) *MeterUseCase {
	return &MeterUseCase{
		MeterRepo:   meterRepo,
		ReadingRepo: readingRepo,
		StatusRepo:  statusRepo,
	}
}

// CreateMeter provisions a new meter. Ingestion never creates meters; this is
// the only write path into the meters table besides startup seeding.
func (uc *MeterUseCase) CreateMeter(meter *entities.Meter) error {
	if meter.ID == "" {
		return errors.New("meter id is required")
	}
	if _, err := uc.MeterRepo.GetByID(meter.ID); err == nil {
		return fmt.Errorf("meter %s already exists", meter.ID)
	}
	meter.IsActive = true
	return uc.MeterRepo.Create(meter)
}

// IngestReading validates and stores one sample. The device timestamp is
// normalized to a canonical UTC string; the status row gets the server
// wall-clock time instead, since device clocks drift. Both writes share one
// transaction.
func (uc *MeterUseCase) IngestReading(payload *entities.MeterPayload) (*entities.MeterReading, error) {
	if payload.MeterID == "" {
		return nil, errors.New("meter_id is required")
	}
	if payload.Timestamp == "" {
		return nil, errors.New("timestamp is required")
	}

	sampleTime, err := timeparser.ParseDeviceTimestamp(payload.Timestamp)
	if err != nil {
		return nil, err
	}

	reading := payload.Flatten(timeparser.ToSQL(sampleTime))
	status := &entities.MeterStatus{
		MeterID:    payload.MeterID,
		Online:     true,
		LastUpdate: timeparser.NowSQL(),
	}

	if err := uc.ReadingRepo.CreateWithStatus(reading, status); err != nil {
		return nil, err
	}
	return reading, nil
}

// ListMeters returns every active meter with its online state.
func (uc *MeterUseCase) ListMeters() ([]entities.MeterOverview, error) {
	overviews, err := uc.MeterRepo.ListActiveWithStatus()
	if err != nil {
		return nil, err
	}
	if overviews == nil {
		overviews = []entities.MeterOverview{}
	}
	return overviews, nil
}

// RecentReadings returns up to ReadingsLimit readings for a meter within the
// last hours hours, newest first, reshaped into the nested response form.
// hours is deliberately unvalidated: zero or negative values just produce a
// cutoff at or past "now" and an empty result. An unknown meter is not
// distinguished from a meter with no recent readings.
func (uc *MeterUseCase) RecentReadings(meterID string, hours int) ([]entities.ReadingView, error) {
	if meterID == "" {
		return nil, errors.New("meter_id is required")
	}

	since := timeparser.ToSQL(time.Now().UTC().Add(-time.Duration(hours) * time.Hour))
	readings, err := uc.ReadingRepo.RecentByMeterID(meterID, since, ReadingsLimit)
	if err != nil {
		return nil, err
	}

	views := make([]entities.ReadingView, 0, len(readings))
	for i := range readings {
		views = append(views, readings[i].Nested())
	}
	return views, nil
}
