package database

import (
	"github.com/google/uuid"

	"rentflow-portal/internal/models"
)

// TenantFilters narrow the tenant listing.
type TenantFilters struct {
	Status string
}

// GetTenants retrieves tenants with display fields and derived balances.
func (d *DB) GetTenants(filters TenantFilters) ([]models.Tenant, error) {
	query := d.db.Model(&models.Tenant{}).Order("full_name ASC")
	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("status = ?", filters.Status)
	}

	var tenants []models.Tenant
	if err := query.Find(&tenants).Error; err != nil {
		return nil, err
	}

	for i := range tenants {
		d.populateTenantDisplay(&tenants[i])
	}
	return tenants, nil
}

// GetTenantByID retrieves a single tenant with derived fields populated.
func (d *DB) GetTenantByID(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := d.db.Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, err
	}
	d.populateTenantDisplay(&tenant)
	return &tenant, nil
}

func (d *DB) populateTenantDisplay(t *models.Tenant) {
	if t.CurrentUnitID != nil {
		var unit models.Unit
		if err := d.db.Select("unit_number, property_id").Where("id = ?", *t.CurrentUnitID).First(&unit).Error; err == nil {
			t.CurrentUnitNumber = unit.UnitNumber
			var property models.Property
			if err := d.db.Select("name").Where("id = ?", unit.PropertyID).First(&property).Error; err == nil {
				t.CurrentPropertyName = property.Name
			}
		}
	}

	balance, paid, err := d.TenantBalance(t.ID)
	if err == nil {
		t.Balance = balance
		t.TotalPaid = paid
	}
}

// TenantBalance recomputes a tenant's outstanding balance and lifetime paid
// total from invoice and payment rows. Stored aggregates are never trusted.
func (d *DB) TenantBalance(tenantID string) (balance, totalPaid float64, err error) {
	var invoiced float64
	err = d.db.Model(&models.Invoice{}).
		Where("tenant_id = ? AND status NOT IN ?", tenantID,
			[]models.InvoiceStatus{models.InvoiceStatusDraft, models.InvoiceStatusCancelled}).
		Select("coalesce(sum(total_amount), 0)").
		Scan(&invoiced).Error
	if err != nil {
		return 0, 0, err
	}

	err = d.db.Model(&models.Payment{}).
		Where("tenant_id = ? AND payment_status = ?", tenantID, models.PaymentStatusCompleted).
		Select("coalesce(sum(amount), 0)").
		Scan(&totalPaid).Error
	if err != nil {
		return 0, 0, err
	}

	return invoiced - totalPaid, totalPaid, nil
}

// CreateTenant inserts a new tenant, assigning an ID when absent.
func (d *DB) CreateTenant(t *models.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.TenantStatusPending
	}
	return d.db.Create(t).Error
}

// GetTenantPayments lists a tenant's payment history, newest first.
func (d *DB) GetTenantPayments(tenantID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := d.db.Where("tenant_id = ?", tenantID).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	for i := range payments {
		d.populatePaymentDisplay(&payments[i])
	}
	return payments, nil
}
