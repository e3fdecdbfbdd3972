package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/format"
	"rentflow-portal/internal/models"
	"rentflow-portal/internal/search"
	"rentflow-portal/internal/validate"
)

// GetTenants lists tenants with derived balances. The free-text term is
// matched against name, phone and unit number.
func (h *Handler) GetTenants(c *gin.Context) {
	if status := c.Query("status"); status != "" && !models.ValidTenantStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tenant status: " + status})
		return
	}

	tenants, err := h.db.GetTenants(database.TenantFilters{Status: c.Query("status")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if term := c.Query("search"); term != "" {
		filtered := make([]models.Tenant, 0, len(tenants))
		for _, t := range tenants {
			if search.MatchText(term, t.FullName, t.Phone, t.CurrentUnitNumber) {
				filtered = append(filtered, t)
			}
		}
		tenants = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"tenants": tenants,
		"count":   len(tenants),
	})
}

// GetTenant returns one tenant with balance and assignment details.
func (h *Handler) GetTenant(c *gin.Context) {
	tenant, err := h.db.GetTenantByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant": tenant})
}

// GetTenantPayments returns the tenant's payment history, newest first.
func (h *Handler) GetTenantPayments(c *gin.Context) {
	tenantID := c.Param("id")
	if _, err := h.db.GetTenantByID(tenantID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}

	payments, err := h.db.GetTenantPayments(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

type createTenantRequest struct {
	FullName              string `json:"full_name" binding:"required"`
	Phone                 string `json:"phone" binding:"required"`
	Email                 string `json:"email"`
	IDNumber              string `json:"id_number"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	Status                string `json:"status"`
	Notes                 string `json:"notes"`
}

// CreateTenant registers a tenant. Phone numbers are normalized to the
// 254XXXXXXXXX form before storage.
func (h *Handler) CreateTenant(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fieldErrors := gin.H{}
	if !validate.KenyanPhone(req.Phone) {
		fieldErrors["phone"] = "not a valid Kenyan mobile number"
	}
	if req.Email != "" && !validate.Email(req.Email) {
		fieldErrors["email"] = "not a valid email address"
	}
	if req.IDNumber != "" && !validate.KenyanID(req.IDNumber) {
		fieldErrors["id_number"] = "national ID must have 7 or 8 digits"
	}
	if req.Status != "" && !models.ValidTenantStatus(req.Status) {
		fieldErrors["status"] = "unknown tenant status: " + req.Status
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	tenant := &models.Tenant{
		FullName:              req.FullName,
		Phone:                 format.NormalizePhone(req.Phone),
		Email:                 req.Email,
		IDNumber:              req.IDNumber,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: format.NormalizePhone(req.EmergencyContactPhone),
		Status:                models.TenantStatus(req.Status),
		Notes:                 req.Notes,
	}

	if err := h.db.CreateTenant(tenant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tenant": tenant})
}
