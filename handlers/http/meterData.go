package httpHandler

import (
	"encoding/json"
	"energy-monitor/entities"
	"energy-monitor/usecases"
	"energy-monitor/ws"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MeterDataHandler owns the ingestion endpoint. The websocket hub is optional;
// when present every stored reading is pushed to connected dashboards.
type MeterDataHandler struct {
	useCase *usecases.MeterUseCase
	hub     *ws.Manager
	log     *zap.Logger
}

func NewMeterDataHandler(useCase *usecases.MeterUseCase, hub *ws.Manager, logger *zap.Logger) *MeterDataHandler {
	return &MeterDataHandler{
		useCase: useCase,
		hub:     hub,
		log:     logger,
	}
}

// ReceiveMeterData handles POST /api/meter-data.
//
// The endpoint always answers HTTP 200 with a status envelope; parse, shape
// and store failures are reported as {"status":"error"} rather than transport
// errors, so constrained device firmware only has to read one response shape.
func (h *MeterDataHandler) ReceiveMeterData(c *gin.Context) {
	var payload entities.MeterPayload

	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "invalid request body: " + err.Error(),
		})
		return
	}

	h.log.Info("received meter data",
		zap.String("meter_id", payload.MeterID),
		zap.String("location", payload.Location),
		zap.String("timestamp", payload.Timestamp),
		zap.Any("voltages", payload.Voltages),
		zap.Any("currents", payload.Currents),
		zap.Any("power", payload.Power),
		zap.Any("power_factors", payload.PowerFactors),
		zap.Float64p("frequency", payload.Frequency),
	)

	reading, err := h.useCase.IngestReading(&payload)
	if err != nil {
		h.log.Error("error saving data", zap.String("meter_id", payload.MeterID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	h.broadcastReading(reading)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Data saved successfully",
	})
}

// broadcastReading pushes the stored sample to dashboard subscribers.
// Best-effort: the reading is already durable, a failed push is only logged.
func (h *MeterDataHandler) broadcastReading(reading *entities.MeterReading) {
	if h.hub == nil {
		return
	}

	event := map[string]interface{}{
		"type":     "meter_reading",
		"meter_id": reading.MeterID,
		"reading":  reading.Nested(),
	}
	b, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to encode reading event", zap.Error(err))
		return
	}
	h.hub.Broadcast(b)
}
