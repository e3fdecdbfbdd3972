package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentflow-portal/internal/models"
)

// ErrReadingBelowPrevious rejects a meter reading lower than the last one
// recorded for the unit, since consumption is derived from the pair.
var ErrReadingBelowPrevious = errors.New("current reading is below the previous reading")

// ReadingFilters narrow the meter reading listing.
type ReadingFilters struct {
	UnitID   string
	Unbilled bool
}

// GetMeterReadings retrieves readings newest first with display fields.
func (d *DB) GetMeterReadings(filters ReadingFilters) ([]models.MeterReading, error) {
	query := d.db.Model(&models.MeterReading{}).Order("reading_date DESC")
	if filters.UnitID != "" {
		query = query.Where("unit_id = ?", filters.UnitID)
	}
	if filters.Unbilled {
		query = query.Where("is_billed = ?", false)
	}

	var readings []models.MeterReading
	if err := query.Find(&readings).Error; err != nil {
		return nil, err
	}

	for i := range readings {
		d.populateReadingDisplay(&readings[i])
	}
	return readings, nil
}

func (d *DB) populateReadingDisplay(r *models.MeterReading) {
	var unit models.Unit
	if err := d.db.Select("unit_number, property_id").Where("id = ?", r.UnitID).First(&unit).Error; err == nil {
		r.UnitNumber = unit.UnitNumber
		var property models.Property
		if err := d.db.Select("name").Where("id = ?", unit.PropertyID).First(&property).Error; err == nil {
			r.PropertyName = property.Name
		}
	}

	if r.TenantID != nil {
		var tenant models.Tenant
		if err := d.db.Select("full_name").Where("id = ?", *r.TenantID).First(&tenant).Error; err == nil {
			r.TenantName = tenant.FullName
		}
	}

	if r.RecordedBy != "" {
		var user models.User
		if err := d.db.Select("full_name").Where("id = ?", r.RecordedBy).First(&user).Error; err == nil {
			r.RecorderName = user.FullName
		}
	}
}

// CreateMeterReading records a new reading. The previous reading is taken
// from the unit's latest row, so callers only supply the current value.
func (d *DB) CreateMeterReading(r *models.MeterReading) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.ReadingDate.IsZero() {
		r.ReadingDate = time.Now()
	}

	var last models.MeterReading
	err := d.db.Where("unit_id = ?", r.UnitID).Order("reading_date DESC").First(&last).Error
	switch {
	case err == nil:
		r.PreviousReading = last.CurrentReading
	case errors.Is(err, gorm.ErrRecordNotFound):
		r.PreviousReading = 0
	default:
		return err
	}

	if r.CurrentReading < r.PreviousReading {
		return ErrReadingBelowPrevious
	}

	if err := d.db.Create(r).Error; err != nil {
		return err
	}
	r.Consumption = r.CurrentReading - r.PreviousReading
	return nil
}
