package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentflow-portal/internal/models"
)

// LeaseFilters narrow the lease listing.
type LeaseFilters struct {
	TenantID string
	UnitID   string
	Status   string
}

// GetLeases retrieves leases newest first.
func (d *DB) GetLeases(filters LeaseFilters) ([]models.Lease, error) {
	query := d.db.Model(&models.Lease{}).Order("start_date DESC")
	if filters.TenantID != "" {
		query = query.Where("tenant_id = ?", filters.TenantID)
	}
	if filters.UnitID != "" {
		query = query.Where("unit_id = ?", filters.UnitID)
	}
	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("status = ?", filters.Status)
	}

	var leases []models.Lease
	if err := query.Find(&leases).Error; err != nil {
		return nil, err
	}
	return leases, nil
}

// CreateLease inserts a lease and, when it is active, assigns the tenant to
// the unit and marks the unit occupied, in one transaction.
func (d *DB) CreateLease(l *models.Lease) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = models.LeaseStatusPending
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}

		if l.Status != models.LeaseStatusActive {
			return nil
		}
		if err := tx.Model(&models.Unit{}).Where("id = ?", l.UnitID).
			Updates(map[string]interface{}{
				"status":            models.UnitStatusOccupied,
				"current_tenant_id": l.TenantID,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Tenant{}).Where("id = ?", l.TenantID).
			Updates(map[string]interface{}{
				"status":          models.TenantStatusActive,
				"current_unit_id": l.UnitID,
			}).Error
	})
}
