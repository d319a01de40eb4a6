package httpHandler

import (
	"energy-monitor/entities"
	"energy-monitor/usecases"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MeterHandler struct {
	useCase *usecases.MeterUseCase
	log     *zap.Logger
}

func NewMeterHandler(useCase *usecases.MeterUseCase, logger *zap.Logger) *MeterHandler {
	return &MeterHandler{
		useCase: useCase,
		log:     logger,
	}
}

// CreateMeter handles POST /api/meters
func (h *MeterHandler) CreateMeter(c *gin.Context) {
	var meter entities.Meter

	if err := c.ShouldBindJSON(&meter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.useCase.CreateMeter(&meter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Meter created successfully",
		"data":    meter,
	})
}

// GetMeters handles GET /api/meters
func (h *MeterHandler) GetMeters(c *gin.Context) {
	meters, err := h.useCase.ListMeters()
	if err != nil {
		h.log.Error("meter listing failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meters": meters,
	})
}

// GetMeterReadings handles GET /api/meter/:meter_id/readings?hours=N
func (h *MeterHandler) GetMeterReadings(c *gin.Context) {
	meterID := c.Param("meter_id")

	// hours must be an integer when given; sign and range stay unvalidated
	hours := usecases.DefaultLookbackHours
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("invalid hours parameter %q", raw),
			})
			return
		}
		hours = parsed
	}

	readings, err := h.useCase.RecentReadings(meterID, hours)
	if err != nil {
		h.log.Error("readings query failed", zap.String("meter_id", meterID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meter_id": meterID,
		"readings": readings,
	})
}
