package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
)

// GetMeterReadings lists water meter readings, newest first.
func (h *Handler) GetMeterReadings(c *gin.Context) {
	readings, err := h.db.GetMeterReadings(database.ReadingFilters{
		UnitID:   c.Query("unit_id"),
		Unbilled: c.Query("unbilled") == "true",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"readings": readings,
		"count":    len(readings),
	})
}

type createReadingRequest struct {
	UnitID         string  `json:"unit_id" binding:"required"`
	CurrentReading float64 `json:"current_reading" binding:"required"`
	ReadingDate    string  `json:"reading_date"`
	Notes          string  `json:"notes"`
}

// CreateMeterReading records a reading. The previous value comes from the
// unit's latest row; a reading below it is rejected.
func (h *Handler) CreateMeterReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.GetUnitByID(req.UnitID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit not found"})
		return
	}

	readingDate := time.Now()
	if req.ReadingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReadingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reading_date: expected YYYY-MM-DD"})
			return
		}
		readingDate = parsed
	}

	reading := &models.MeterReading{
		UnitID:         req.UnitID,
		CurrentReading: req.CurrentReading,
		ReadingDate:    readingDate,
		RecordedBy:     c.GetString(contextUserKey),
		Notes:          req.Notes,
	}

	if err := h.db.CreateMeterReading(reading); err != nil {
		if errors.Is(err, database.ErrReadingBelowPrevious) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reading": reading})
}
