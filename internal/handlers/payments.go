package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
	"rentflow-portal/internal/search"
)

// GetPayments lists payments newest first. Supports status, since (a
// YYYY-MM-DD lower bound), limit and a free-text term matched against
// tenant, unit and receipt number.
func (h *Handler) GetPayments(c *gin.Context) {
	if status := c.Query("status"); status != "" && !models.ValidPaymentStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment status: " + status})
		return
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since: expected YYYY-MM-DD"})
			return
		}
		since = &parsed
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	payments, err := h.db.GetPayments(database.PaymentFilters{
		Status: c.Query("status"),
		Since:  since,
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if term := c.Query("search"); term != "" {
		filtered := make([]models.Payment, 0, len(payments))
		for _, p := range payments {
			if search.MatchText(term, p.TenantName, p.UnitNumber, p.MpesaReceiptNumber, p.TransactionID) {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

// GetPayment returns a single payment.
func (h *Handler) GetPayment(c *gin.Context) {
	payment, err := h.db.GetPaymentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

type createPaymentRequest struct {
	TenantID           string  `json:"tenant_id" binding:"required"`
	InvoiceID          *string `json:"invoice_id"`
	Amount             float64 `json:"amount" binding:"required"`
	PaymentMethod      string  `json:"payment_method" binding:"required"`
	PaymentStatus      string  `json:"payment_status"`
	TransactionID      string  `json:"transaction_id"`
	MpesaReceiptNumber string  `json:"mpesa_receipt_number"`
	PaymentDate        string  `json:"payment_date"`
	Description        string  `json:"description"`
}

// CreatePayment records a payment. Completed payments against an invoice
// also settle the invoice inside the same transaction.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fieldErrors := gin.H{}
	if req.Amount <= 0 {
		fieldErrors["amount"] = "amount must be positive"
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		fieldErrors["payment_method"] = "unknown payment method: " + req.PaymentMethod
	}
	if req.PaymentStatus != "" && !models.ValidPaymentStatus(req.PaymentStatus) {
		fieldErrors["payment_status"] = "unknown payment status: " + req.PaymentStatus
	}
	if req.PaymentMethod == string(models.PaymentMethodMpesa) && req.MpesaReceiptNumber == "" {
		fieldErrors["mpesa_receipt_number"] = "required for mpesa payments"
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			fieldErrors["payment_date"] = "expected YYYY-MM-DD"
		} else {
			paymentDate = parsed
		}
	}

	tenant, err := h.db.GetTenantByID(req.TenantID)
	if err != nil {
		fieldErrors["tenant_id"] = "tenant not found"
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	status := models.PaymentStatus(req.PaymentStatus)
	if req.PaymentStatus == "" {
		status = models.PaymentStatusCompleted
	}

	var propertyID string
	if tenant.CurrentUnitID != nil {
		if unit, err := h.db.GetUnitByID(*tenant.CurrentUnitID); err == nil {
			propertyID = unit.PropertyID
		}
	}

	payment := &models.Payment{
		TenantID:           req.TenantID,
		InvoiceID:          req.InvoiceID,
		UnitID:             tenant.CurrentUnitID,
		PropertyID:         propertyID,
		Amount:             req.Amount,
		PaymentMethod:      models.PaymentMethod(req.PaymentMethod),
		PaymentStatus:      status,
		TransactionID:      req.TransactionID,
		MpesaReceiptNumber: req.MpesaReceiptNumber,
		PaymentDate:        paymentDate,
		Description:        req.Description,
		RecordedBy:         c.GetString(contextUserKey),
	}

	if err := h.db.CreatePayment(payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}
