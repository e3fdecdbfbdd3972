package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentflow-portal/internal/models"
)

// CreateInvoice inserts an invoice together with its line items.
func (d *DB) CreateInvoice(inv *models.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.NewString()
		}
		inv.Items[i].InvoiceID = inv.ID
	}
	return d.db.Create(inv).Error
}

// IssueInvoice inserts an invoice and flags the meter readings it bills, in
// one transaction, so a reading is never left billable once invoiced.
func (d *DB) IssueInvoice(inv *models.Invoice, readingIDs []string) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.NewString()
		}
		inv.Items[i].InvoiceID = inv.ID
	}
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		if len(readingIDs) == 0 {
			return nil
		}
		return tx.Model(&models.MeterReading{}).
			Where("id IN ?", readingIDs).
			Update("is_billed", true).Error
	})
}

// GetInvoiceByID retrieves an invoice with its items and display fields.
func (d *DB) GetInvoiceByID(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := d.db.Preload("Items").Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	d.populateInvoiceDisplay(&invoice)
	return &invoice, nil
}

func (d *DB) populateInvoiceDisplay(inv *models.Invoice) {
	var tenant models.Tenant
	if err := d.db.Select("full_name").Where("id = ?", inv.TenantID).First(&tenant).Error; err == nil {
		inv.TenantName = tenant.FullName
	}
	var unit models.Unit
	if err := d.db.Select("unit_number").Where("id = ?", inv.UnitID).First(&unit).Error; err == nil {
		inv.UnitNumber = unit.UnitNumber
	}
	var property models.Property
	if err := d.db.Select("name").Where("id = ?", inv.PropertyID).First(&property).Error; err == nil {
		inv.PropertyName = property.Name
	}
}

// GetOutstandingInvoices lists invoices still expecting payment, oldest due
// first.
func (d *DB) GetOutstandingInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := d.db.Where("status IN ?", []models.InvoiceStatus{
		models.InvoiceStatusSent, models.InvoiceStatusPartial, models.InvoiceStatusOverdue,
	}).Order("due_date ASC").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		d.populateInvoiceDisplay(&invoices[i])
	}
	return invoices, nil
}

// HasInvoiceForPeriod reports whether the tenant already has an invoice
// covering the period starting at periodStart for the given unit.
func (d *DB) HasInvoiceForPeriod(tenantID, unitID string, periodStart time.Time) (bool, error) {
	var count int64
	err := d.db.Model(&models.Invoice{}).
		Where("tenant_id = ? AND unit_id = ? AND period_start = ? AND status <> ?",
			tenantID, unitID, periodStart, models.InvoiceStatusCancelled).
		Count(&count).Error
	return count > 0, err
}

// MarkInvoiceOverdue transitions an invoice to overdue and records the
// applied penalty, in one transaction. A zero penalty records no row.
func (d *DB) MarkInvoiceOverdue(invoiceID string, penalty *models.Penalty) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Invoice{}).
			Where("id = ?", invoiceID).
			Update("status", models.InvoiceStatusOverdue).Error; err != nil {
			return err
		}
		if penalty == nil || penalty.Amount <= 0 {
			return nil
		}
		if penalty.ID == "" {
			penalty.ID = uuid.NewString()
		}
		return tx.Create(penalty).Error
	})
}

// HasPenaltyForInvoice reports whether a non-waived penalty already exists
// for the invoice, so the scheduler never double-charges.
func (d *DB) HasPenaltyForInvoice(invoiceID string) (bool, error) {
	var count int64
	err := d.db.Model(&models.Penalty{}).
		Where("invoice_id = ? AND is_waived = ?", invoiceID, false).
		Count(&count).Error
	return count > 0, err
}

// OverdueSummary totals outstanding overdue balances and counts the
// affected invoices.
func (d *DB) OverdueSummary() (amount float64, count int64, err error) {
	err = d.db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusOverdue).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}
	err = d.db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusOverdue).
		Select("coalesce(sum(total_amount - amount_paid), 0)").
		Scan(&amount).Error
	return amount, count, err
}
