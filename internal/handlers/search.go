package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
	"rentflow-portal/internal/search"
)

// Search runs a cross-entity query over units and tenants. It uses the
// search engine when one is configured and falls back to scanning the
// database otherwise.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}

	if h.search != nil {
		result, err := h.search.Search(query, int64(limit))
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"query":   query,
				"units":   result.Units,
				"tenants": result.Tenants,
				"source":  "meilisearch",
			})
			return
		}
		log.Printf("Search: Engine query failed, falling back to database: %v", err)
	}

	units, tenants, err := h.searchDatabase(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"units":   units,
		"tenants": tenants,
		"source":  "database",
	})
}

func (h *Handler) searchDatabase(query string, limit int) ([]models.Unit, []models.Tenant, error) {
	allUnits, err := h.db.GetUnits(database.UnitFilters{})
	if err != nil {
		return nil, nil, err
	}
	units := make([]models.Unit, 0, limit)
	for _, u := range allUnits {
		if len(units) >= limit {
			break
		}
		if search.MatchText(query, u.UnitNumber, u.PropertyName, u.CurrentTenantName, u.MeterNumber) {
			units = append(units, u)
		}
	}

	allTenants, err := h.db.GetTenants(database.TenantFilters{})
	if err != nil {
		return nil, nil, err
	}
	tenants := make([]models.Tenant, 0, limit)
	for _, t := range allTenants {
		if len(tenants) >= limit {
			break
		}
		if search.MatchText(query, t.FullName, t.Phone, t.Email, t.CurrentUnitNumber) {
			tenants = append(tenants, t)
		}
	}

	return units, tenants, nil
}
