package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
)

// GetLeases lists leases, optionally narrowed by tenant, unit or status.
func (h *Handler) GetLeases(c *gin.Context) {
	leases, err := h.db.GetLeases(database.LeaseFilters{
		TenantID: c.Query("tenant_id"),
		UnitID:   c.Query("unit_id"),
		Status:   c.Query("status"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leases": leases,
		"count":  len(leases),
	})
}

type createLeaseRequest struct {
	TenantID      string  `json:"tenant_id" binding:"required"`
	UnitID        string  `json:"unit_id" binding:"required"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date"`
	RentAmount    float64 `json:"rent_amount" binding:"required"`
	DepositAmount float64 `json:"deposit_amount"`
	Status        string  `json:"status"`
	Terms         string  `json:"terms"`
}

// CreateLease signs a tenant onto a unit. An active lease moves the unit to
// occupied and links the tenant.
func (h *Handler) CreateLease(c *gin.Context) {
	var req createLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date: expected YYYY-MM-DD"})
		return
	}
	var end *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date: expected YYYY-MM-DD"})
			return
		}
		if parsed.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date is before start_date"})
			return
		}
		end = &parsed
	}

	if _, err := h.db.GetTenantByID(req.TenantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not found"})
		return
	}
	unit, err := h.db.GetUnitByID(req.UnitID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit not found"})
		return
	}

	status := models.LeaseStatus(req.Status)
	if req.Status == "" {
		status = models.LeaseStatusActive
	}
	if status == models.LeaseStatusActive && unit.Status == models.UnitStatusOccupied {
		c.JSON(http.StatusConflict, gin.H{"error": "unit already has an active tenant"})
		return
	}

	lease := &models.Lease{
		TenantID:      req.TenantID,
		UnitID:        req.UnitID,
		PropertyID:    unit.PropertyID,
		StartDate:     start,
		EndDate:       end,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		Status:        status,
		Terms:         req.Terms,
	}

	if err := h.db.CreateLease(lease); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lease": lease})
}
