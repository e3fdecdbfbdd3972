package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/billing"
	"rentflow-portal/internal/models"
	"rentflow-portal/internal/search"
)

// GetProperties lists properties with derived unit counts. An optional
// search term matches name, address or city.
func (h *Handler) GetProperties(c *gin.Context) {
	properties, err := h.db.GetProperties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if term := c.Query("search"); term != "" {
		filtered := make([]models.Property, 0, len(properties))
		for _, p := range properties {
			if search.MatchText(term, p.Name, p.Address, p.City) {
				filtered = append(filtered, p)
			}
		}
		properties = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// GetProperty returns one property with its occupancy and revenue figures.
func (h *Handler) GetProperty(c *gin.Context) {
	prop, err := h.db.GetPropertyByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	expected, err := h.db.MonthlyExpectedRevenue(prop.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property":         prop,
		"occupancy_rate":   billing.OccupancyRate(prop.OccupiedUnits, prop.TotalUnits),
		"expected_revenue": expected,
	})
}

type createPropertyRequest struct {
	Name            string  `json:"name" binding:"required"`
	Address         string  `json:"address" binding:"required"`
	City            string  `json:"city"`
	County          string  `json:"county"`
	Description     string  `json:"description"`
	PropertyType    string  `json:"property_type"`
	WaterRate       float64 `json:"water_rate"`
	PenaltyRate     float64 `json:"penalty_rate"`
	PenaltyType     string  `json:"penalty_type"`
	BillingDay      int     `json:"billing_day"`
	GracePeriodDays int     `json:"grace_period_days"`
}

// CreateProperty registers a new property.
func (h *Handler) CreateProperty(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	penaltyType := models.PenaltyType(req.PenaltyType)
	if req.PenaltyType == "" {
		penaltyType = models.PenaltyTypePercentage
	}
	if penaltyType != models.PenaltyTypePercentage && penaltyType != models.PenaltyTypeFixed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "penalty_type must be percentage or fixed"})
		return
	}
	// Zero means not set; the store defaults it to the 1st.
	if req.BillingDay < 0 || req.BillingDay > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "billing_day must be between 0 and 31"})
		return
	}

	prop := &models.Property{
		OwnerID:         c.GetString(contextUserKey),
		Name:            req.Name,
		Address:         req.Address,
		City:            req.City,
		County:          req.County,
		Description:     req.Description,
		PropertyType:    req.PropertyType,
		WaterRate:       req.WaterRate,
		PenaltyRate:     req.PenaltyRate,
		PenaltyType:     penaltyType,
		BillingDay:      req.BillingDay,
		GracePeriodDays: req.GracePeriodDays,
	}

	if err := h.db.CreateProperty(prop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": prop})
}
