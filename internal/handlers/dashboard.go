package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/format"
	"rentflow-portal/internal/models"
	"rentflow-portal/internal/search"
)

// GetDashboardStats returns the portfolio summary for the dashboard cards.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.db.GetDashboardStats(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type activityItem struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Detail      string    `json:"detail"`
	Amount      float64   `json:"amount,omitempty"`
	When        time.Time `json:"when"`
	RelativeAge string    `json:"relative_age"`
}

// GetRecentActivity merges recent payments and tenant signups into one feed,
// newest first, with a human readable age on each entry.
func (h *Handler) GetRecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 {
		limit = 10
	}

	payments, err := h.db.GetPayments(database.PaymentFilters{
		Status: string(models.PaymentStatusCompleted),
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tenants, err := h.db.GetTenants(database.TenantFilters{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	var items []activityItem
	for _, p := range payments {
		items = append(items, activityItem{
			Type:        "payment",
			Title:       "Payment from " + p.TenantName,
			Detail:      format.Currency(p.Amount) + " via " + format.StatusLabel(string(p.PaymentMethod)),
			Amount:      p.Amount,
			When:        p.PaymentDate,
			RelativeAge: format.RelativeTime(p.PaymentDate, now),
		})
	}
	for _, t := range tenants {
		items = append(items, activityItem{
			Type:        "tenant",
			Title:       "New tenant " + t.FullName,
			Detail:      "Unit " + t.CurrentUnitNumber,
			When:        t.CreatedAt,
			RelativeAge: format.RelativeTime(t.CreatedAt, now),
		})
	}

	items = search.SortBy(items, func(a activityItem) int64 { return a.When.UnixNano() }, search.Desc)
	if len(items) > limit {
		items = items[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": items,
		"count":    len(items),
	})
}
