package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentflow-portal/internal/models"
)

// PaymentFilters narrow the payment listing.
type PaymentFilters struct {
	Status string
	Since  *time.Time
	Limit  int
}

// GetPayments retrieves payments newest first with display fields populated.
func (d *DB) GetPayments(filters PaymentFilters) ([]models.Payment, error) {
	query := d.db.Model(&models.Payment{}).Order("payment_date DESC")
	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("payment_status = ?", filters.Status)
	}
	if filters.Since != nil {
		query = query.Where("payment_date >= ?", *filters.Since)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}

	for i := range payments {
		d.populatePaymentDisplay(&payments[i])
	}
	return payments, nil
}

func (d *DB) populatePaymentDisplay(p *models.Payment) {
	var tenant models.Tenant
	if err := d.db.Select("full_name, phone").Where("id = ?", p.TenantID).First(&tenant).Error; err == nil {
		p.TenantName = tenant.FullName
		p.TenantPhone = tenant.Phone
	}

	if p.UnitID != nil {
		var unit models.Unit
		if err := d.db.Select("unit_number").Where("id = ?", *p.UnitID).First(&unit).Error; err == nil {
			p.UnitNumber = unit.UnitNumber
		}
	}

	if p.PropertyID != "" {
		var property models.Property
		if err := d.db.Select("name").Where("id = ?", p.PropertyID).First(&property).Error; err == nil {
			p.PropertyName = property.Name
		}
	}
}

// CreatePayment records a payment. A completed payment against an invoice
// also bumps the invoice's amount_paid and recomputes its status, in one
// transaction.
func (d *DB) CreatePayment(p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentStatusPending
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if p.InvoiceID == nil || !p.IsCompleted() {
			return nil
		}

		var invoice models.Invoice
		if err := tx.Where("id = ?", *p.InvoiceID).First(&invoice).Error; err != nil {
			return err
		}

		invoice.AmountPaid += p.Amount
		switch {
		case invoice.AmountPaid >= invoice.TotalAmount:
			invoice.Status = models.InvoiceStatusPaid
		case invoice.AmountPaid > 0:
			invoice.Status = models.InvoiceStatusPartial
		}
		return tx.Save(&invoice).Error
	})
}

// GetPaymentByID retrieves a single payment with display fields.
func (d *DB) GetPaymentByID(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := d.db.Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	d.populatePaymentDisplay(&payment)
	return &payment, nil
}

// CollectedBetween sums completed payments in [start, end).
func (d *DB) CollectedBetween(start, end time.Time) (float64, error) {
	var total float64
	err := d.db.Model(&models.Payment{}).
		Where("payment_status = ? AND payment_date >= ? AND payment_date < ?",
			models.PaymentStatusCompleted, start, end).
		Select("coalesce(sum(amount), 0)").
		Scan(&total).Error
	return total, err
}
