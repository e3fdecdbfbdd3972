package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
	"rentflow-portal/internal/search"
)

// GetUnits lists units. Status and property filters run in the query;
// the free-text term is matched against unit number, property and tenant
// after the display fields are filled in.
func (h *Handler) GetUnits(c *gin.Context) {
	if status := c.Query("status"); status != "" && !models.ValidUnitStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit status: " + status})
		return
	}

	units, err := h.db.GetUnits(database.UnitFilters{
		Status:     c.Query("status"),
		PropertyID: c.Query("property_id"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if term := c.Query("search"); term != "" {
		filtered := make([]models.Unit, 0, len(units))
		for _, u := range units {
			if search.MatchText(term, u.UnitNumber, u.PropertyName, u.CurrentTenantName) {
				filtered = append(filtered, u)
			}
		}
		units = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"units": units,
		"count": len(units),
	})
}

// GetUnit returns a single unit with display fields and last meter reading.
func (h *Handler) GetUnit(c *gin.Context) {
	unit, err := h.db.GetUnitByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit})
}

type createUnitRequest struct {
	PropertyID    string   `json:"property_id" binding:"required"`
	UnitNumber    string   `json:"unit_number" binding:"required"`
	Floor         *int     `json:"floor"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	SizeSqm       *float64 `json:"size_sqm"`
	RentAmount    float64  `json:"rent_amount" binding:"required"`
	DepositAmount float64  `json:"deposit_amount"`
	Status        string   `json:"status"`
	MeterNumber   string   `json:"meter_number"`
}

// CreateUnit registers a unit under an existing property.
func (h *Handler) CreateUnit(c *gin.Context) {
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != "" && !models.ValidUnitStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit status: " + req.Status})
		return
	}
	if req.RentAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rent_amount must be positive"})
		return
	}
	if _, err := h.db.GetPropertyByID(req.PropertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property not found"})
		return
	}

	unit := &models.Unit{
		PropertyID:    req.PropertyID,
		UnitNumber:    req.UnitNumber,
		Floor:         req.Floor,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SizeSqm:       req.SizeSqm,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		Status:        models.UnitStatus(req.Status),
		MeterNumber:   req.MeterNumber,
	}

	if err := h.db.CreateUnit(unit); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"unit": unit})
}
