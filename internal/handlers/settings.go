package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the caller's preferences plus the read-only paybill
// details shown on the settings screen.
func (h *Handler) GetSettings(c *gin.Context) {
	user, err := h.db.GetUserByID(c.GetString(contextUserKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
		return
	}

	theme := user.Theme
	if theme == "" {
		theme = "system"
	}

	c.JSON(http.StatusOK, gin.H{
		"theme": theme,
		"mpesa": gin.H{
			"paybill_number":   h.config.Mpesa.PaybillNumber,
			"confirmation_url": h.config.Mpesa.ConfirmationURL,
		},
	})
}

type updateThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// UpdateTheme persists the caller's light/dark preference.
func (h *Handler) UpdateTheme(c *gin.Context) {
	var req updateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme is required"})
		return
	}

	if req.Theme != "light" && req.Theme != "dark" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light or dark"})
		return
	}

	userID := c.GetString(contextUserKey)
	if err := h.db.UpdateUserTheme(userID, req.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
