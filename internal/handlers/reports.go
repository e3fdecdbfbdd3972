package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/reports"
)

// GetMonthlyReport builds the monthly report and streams it as a download.
// format=json (default) or format=xlsx.
func (h *Handler) GetMonthlyReport(c *gin.Context) {
	now := time.Now()

	report, err := reports.Build(h.db, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		data, err := report.JSON()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", reports.Filename(now, "json")))
		c.Data(http.StatusOK, "application/json", data)

	case "xlsx":
		buf, err := report.Excel()
		if err != nil {
			log.Printf("Reports: Failed to render workbook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", reports.Filename(now, "xlsx")))
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or xlsx"})
	}
}

// TriggerBillingRun manually kicks off the daily billing job.
func (h *Handler) TriggerBillingRun(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "billing scheduler not available"})
		return
	}

	log.Println("Billing: Manual run requested")
	if err := h.scheduler.RunNow(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "billing run completed"})
}
