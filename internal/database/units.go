package database

import (
	"github.com/google/uuid"

	"rentflow-portal/internal/models"
)

// UnitFilters narrow the unit listing. Free-text search happens after the
// fetch so it shares the same matcher as every other screen.
type UnitFilters struct {
	Status     string
	PropertyID string
}

// GetUnits retrieves units with display fields and the latest meter value
// populated.
func (d *DB) GetUnits(filters UnitFilters) ([]models.Unit, error) {
	query := d.db.Model(&models.Unit{}).Order("unit_number ASC")
	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PropertyID != "" {
		query = query.Where("property_id = ?", filters.PropertyID)
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}

	for i := range units {
		d.populateUnitDisplay(&units[i])
	}
	return units, nil
}

// GetUnitByID retrieves a single unit with display fields populated.
func (d *DB) GetUnitByID(id string) (*models.Unit, error) {
	var unit models.Unit
	if err := d.db.Where("id = ?", id).First(&unit).Error; err != nil {
		return nil, err
	}
	d.populateUnitDisplay(&unit)
	return &unit, nil
}

func (d *DB) populateUnitDisplay(u *models.Unit) {
	var property models.Property
	if err := d.db.Select("name").Where("id = ?", u.PropertyID).First(&property).Error; err == nil {
		u.PropertyName = property.Name
	}

	if u.CurrentTenantID != nil {
		var tenant models.Tenant
		if err := d.db.Select("full_name").Where("id = ?", *u.CurrentTenantID).First(&tenant).Error; err == nil {
			u.CurrentTenantName = tenant.FullName
		}
	}

	var reading models.MeterReading
	err := d.db.Where("unit_id = ?", u.ID).Order("reading_date DESC").First(&reading).Error
	if err == nil {
		u.LastMeterReading = reading.CurrentReading
	}
}

// CreateUnit inserts a new unit, assigning an ID when absent.
func (d *DB) CreateUnit(u *models.Unit) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = models.UnitStatusVacant
	}
	return d.db.Create(u).Error
}

// CountUnitsByStatus returns the number of units per status.
func (d *DB) CountUnitsByStatus() (map[models.UnitStatus]int64, error) {
	type row struct {
		Status models.UnitStatus
		Count  int64
	}
	var rows []row
	err := d.db.Model(&models.Unit{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.UnitStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
