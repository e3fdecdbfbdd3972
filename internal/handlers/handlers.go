// Package handlers wires the HTTP API: auth, entity CRUD, dashboard,
// reports, search and settings.
package handlers

import (
	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/config"
	"rentflow-portal/internal/database"
	"rentflow-portal/internal/scheduler"
	"rentflow-portal/internal/search"
)

// Handler carries the shared dependencies of all route handlers.
type Handler struct {
	db        *database.DB
	config    *config.Config
	search    *search.Client
	scheduler *scheduler.Scheduler
}

// NewHandler creates a handler. The search client and scheduler may be nil
// when those subsystems are disabled.
func NewHandler(db *database.DB, cfg *config.Config, sc *search.Client, sched *scheduler.Scheduler) *Handler {
	return &Handler{
		db:        db,
		config:    cfg,
		search:    sc,
		scheduler: sched,
	}
}

// RegisterRoutes attaches all API routes to the router. Everything except
// the health check and login requires a valid token.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)
	r.POST("/api/auth/login", h.Login)

	api := r.Group("/api")
	api.Use(h.AuthRequired())
	{
		api.GET("/auth/me", h.Me)

		api.GET("/properties", h.GetProperties)
		api.GET("/properties/:id", h.GetProperty)
		api.POST("/properties", h.CreateProperty)

		api.GET("/units", h.GetUnits)
		api.GET("/units/:id", h.GetUnit)
		api.POST("/units", h.CreateUnit)

		api.GET("/tenants", h.GetTenants)
		api.GET("/tenants/:id", h.GetTenant)
		api.GET("/tenants/:id/payments", h.GetTenantPayments)
		api.POST("/tenants", h.CreateTenant)

		api.GET("/leases", h.GetLeases)
		api.POST("/leases", h.CreateLease)

		api.GET("/payments", h.GetPayments)
		api.GET("/payments/:id", h.GetPayment)
		api.POST("/payments", h.CreatePayment)

		api.GET("/meter-readings", h.GetMeterReadings)
		api.POST("/meter-readings", h.CreateMeterReading)

		api.GET("/dashboard/stats", h.GetDashboardStats)
		api.GET("/dashboard/activity", h.GetRecentActivity)

		api.GET("/reports/monthly", h.GetMonthlyReport)

		api.GET("/search", h.Search)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings/theme", h.UpdateTheme)

		api.POST("/billing/run", h.TriggerBillingRun)
	}
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
